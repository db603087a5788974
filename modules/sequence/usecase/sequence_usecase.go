package usecase

import (
	"context"

	appErrors "github.com/roysitumorang/kilau/errors"
	"github.com/roysitumorang/kilau/helper"
	sequenceModel "github.com/roysitumorang/kilau/modules/sequence/model"
	sequenceQuery "github.com/roysitumorang/kilau/modules/sequence/query"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	"go.uber.org/zap"
)

type (
	sequenceUseCase struct {
		sequenceQuery sequenceQuery.SequenceQuery
	}
)

func New(
	sequenceQuery sequenceQuery.SequenceQuery,
) SequenceUseCase {
	return &sequenceUseCase{
		sequenceQuery: sequenceQuery,
	}
}

func (q *sequenceUseCase) IssueNumber(ctx context.Context, sequenceSetting *sequenceSettingModel.SequenceSetting) (*sequenceModel.IssuedNumber, error) {
	ctxt := "SequenceUseCase-IssueNumber"
	if !sequenceSetting.Active() {
		return nil, appErrors.ValidationFailed("sequence setting is inactive")
	}
	start := int64(1)
	if sequenceSetting.StartNumber != nil && *sequenceSetting.StartNumber > 0 {
		start = *sequenceSetting.StartNumber
	}
	sequence, err := q.sequenceQuery.SaveSequence(ctx, sequenceModel.CounterName(sequenceSetting.ID), start)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrSaveSequence")
		return nil, err
	}
	var prefix, suffix string
	if sequenceSetting.Prefix != nil {
		prefix = *sequenceSetting.Prefix
	}
	if sequenceSetting.Suffix != nil {
		suffix = *sequenceSetting.Suffix
	}
	return &sequenceModel.IssuedNumber{
		SettingID: sequenceSetting.ID,
		Number:    sequence.Number,
		Formatted: sequenceModel.FormatNumber(prefix, sequence.Number, suffix, sequenceModel.DefaultWidth),
	}, nil
}
