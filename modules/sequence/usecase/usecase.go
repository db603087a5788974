package usecase

import (
	"context"

	sequenceModel "github.com/roysitumorang/kilau/modules/sequence/model"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
)

type (
	SequenceUseCase interface {
		IssueNumber(ctx context.Context, sequenceSetting *sequenceSettingModel.SequenceSetting) (*sequenceModel.IssuedNumber, error)
	}
)
