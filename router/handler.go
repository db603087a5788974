package router

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roysitumorang/kilau/config"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/migration"
	branchQuery "github.com/roysitumorang/kilau/modules/branch/query"
	branchUseCase "github.com/roysitumorang/kilau/modules/branch/usecase"
	sequenceQuery "github.com/roysitumorang/kilau/modules/sequence/query"
	sequenceUseCase "github.com/roysitumorang/kilau/modules/sequence/usecase"
	sequenceSettingQuery "github.com/roysitumorang/kilau/modules/sequence_setting/query"
	sequenceSettingUseCase "github.com/roysitumorang/kilau/modules/sequence_setting/usecase"
	serviceNsq "github.com/roysitumorang/kilau/services/nsq"
	"go.uber.org/zap"
)

type (
	Service struct {
		DbRead,
		DbWrite *pgxpool.Pool
		Migration              *migration.Migration
		NsqProducer            *serviceNsq.Producer
		NsqConsumer            *serviceNsq.Consumer
		BranchUseCase          branchUseCase.BranchUseCase
		SequenceUseCase        sequenceUseCase.SequenceUseCase
		SequenceSettingUseCase sequenceSettingUseCase.SequenceSettingUseCase
	}
)

type dbOpener func(ctx context.Context) (*pgxpool.Pool, error)

// MakeHandler wires pools, queries and use cases. Migration-only callers
// pass withNsq false so no broker is needed.
func MakeHandler(ctx context.Context, withNsq bool) (*Service, error) {
	return makeHandler(ctx, withNsq, config.GetDbReadOnly, config.GetDbWriteOnly)
}

// makeHandler releases whatever it opened when a later step fails.
func makeHandler(ctx context.Context, withNsq bool, openRead, openWrite dbOpener) (_ *Service, err error) {
	ctxt := "Router-MakeHandler"
	dbRead, err := openRead(ctx)
	if err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrGetDbReadOnly")
		return nil, err
	}
	dbWrite, err := openWrite(ctx)
	if err != nil {
		dbRead.Close()
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrGetDbWriteOnly")
		return nil, err
	}
	service := &Service{
		DbRead:    dbRead,
		DbWrite:   dbWrite,
		Migration: migration.New(dbWrite),
	}
	defer func() {
		if err != nil {
			service.Close()
		}
	}()
	var publisher serviceNsq.Publisher
	if withNsq {
		nsqConfig := serviceNsq.NewConfig()
		if service.NsqProducer, err = serviceNsq.NewProducer(ctx, helper.GetNsqAddress(), nsqConfig); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrNewProducer")
			return nil, err
		}
		if err = service.NsqProducer.Ping(ctx); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrPing")
			return nil, err
		}
		if service.NsqConsumer, err = serviceNsq.NewConsumer(ctx, helper.GetNsqAddress(), config.TopicBranch, config.NsqChannel, nsqConfig); err != nil {
			helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrNewConsumer")
			return nil, err
		}
		publisher = service.NsqProducer
	}
	branchQuery := branchQuery.New(dbRead, dbWrite)
	sequenceQuery := sequenceQuery.New(dbWrite)
	sequenceSettingQuery := sequenceSettingQuery.New(dbRead, dbWrite)
	service.BranchUseCase = branchUseCase.New(branchQuery, publisher)
	service.SequenceUseCase = sequenceUseCase.New(sequenceQuery)
	service.SequenceSettingUseCase = sequenceSettingUseCase.New(sequenceSettingQuery, branchQuery, publisher, service.NsqConsumer)
	return service, nil
}

// Close releases the broker connections and the pools.
func (q *Service) Close() {
	if q.NsqConsumer != nil {
		q.NsqConsumer.Stop()
	}
	if q.NsqProducer != nil {
		q.NsqProducer.Stop()
	}
	q.DbRead.Close()
	q.DbWrite.Close()
}
