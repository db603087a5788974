package query

import (
	"context"

	sequenceModel "github.com/roysitumorang/kilau/modules/sequence/model"
)

type (
	SequenceQuery interface {
		SaveSequence(ctx context.Context, name string, start int64) (*sequenceModel.Sequence, error)
	}
)
