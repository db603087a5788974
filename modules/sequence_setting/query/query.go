package query

import (
	"context"

	"github.com/jackc/pgx/v5"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
)

type (
	SequenceSettingQuery interface {
		WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
		FindSequenceSettings(ctx context.Context, filter *sequenceSettingModel.Filter) ([]*sequenceSettingModel.SequenceSetting, int64, int64, error)
		FindSequenceSettingsByKeys(ctx context.Context, keys []sequenceSettingModel.ScopedKey) ([]*sequenceSettingModel.SequenceSetting, error)
		FindOrphanSequenceSettings(ctx context.Context) ([]*sequenceSettingModel.SequenceSetting, error)
		CreateSequenceSettings(ctx context.Context, tx pgx.Tx, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error)
		UpdateSequenceSettings(ctx context.Context, tx pgx.Tx, requests []*sequenceSettingModel.SequenceSetting) error
		UpdateSequenceSettingStatus(ctx context.Context, tx pgx.Tx, sequenceSettingID string, statusID int8) (*sequenceSettingModel.SequenceSetting, error)
		DeleteSequenceSetting(ctx context.Context, tx pgx.Tx, sequenceSettingID string) (int64, error)
	}
)
