package query

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roysitumorang/kilau/helper"
	sequenceModel "github.com/roysitumorang/kilau/modules/sequence/model"
	"go.uber.org/zap"
)

type (
	sequenceQuery struct {
		dbWrite *pgxpool.Pool
	}
)

func New(
	dbWrite *pgxpool.Pool,
) SequenceQuery {
	return &sequenceQuery{
		dbWrite: dbWrite,
	}
}

// SaveSequence issues the next number of the named counter; a fresh counter
// starts at start.
func (q *sequenceQuery) SaveSequence(ctx context.Context, name string, start int64) (*sequenceModel.Sequence, error) {
	ctxt := "SequenceQuery-SaveSequence"
	sequenceID, sequenceSqID := helper.GenerateUniqueID()
	now := time.Now()
	var response sequenceModel.Sequence
	if err := q.dbWrite.QueryRow(
		ctx,
		`INSERT INTO sequences (
			_id
			, id
			, name
			, number
			, created_at
			, updated_at
		) VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (name) DO UPDATE SET
			number = sequences.number + 1
			, updated_at = EXCLUDED.updated_at
		RETURNING id
			, name
			, number
			, created_at
			, updated_at`,
		sequenceID,
		sequenceSqID,
		name,
		start,
		now,
	).Scan(
		&response.ID,
		&response.Name,
		&response.Number,
		&response.CreatedAt,
		&response.UpdatedAt,
	); err != nil {
		helper.Capture(ctx, zap.ErrorLevel, err, ctxt, "ErrScan")
		return nil, err
	}
	return &response, nil
}
