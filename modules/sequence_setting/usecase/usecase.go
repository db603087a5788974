package usecase

import (
	"context"

	"github.com/roysitumorang/kilau/models"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
)

type (
	SequenceSettingUseCase interface {
		FindSequenceSettings(ctx context.Context, filter *sequenceSettingModel.Filter) ([]*sequenceSettingModel.SequenceSetting, *models.Pagination, error)
		FindSequenceSettingByID(ctx context.Context, sequenceSettingID string) (*sequenceSettingModel.SequenceSetting, error)
		FindSequenceSettingByBranchID(ctx context.Context, branchID string) (*sequenceSettingModel.SequenceSetting, error)
		CreateSequenceSetting(ctx context.Context, request *sequenceSettingModel.NewSequenceSetting) (*sequenceSettingModel.SequenceSetting, error)
		BulkCreateSequenceSettings(ctx context.Context, requests []*sequenceSettingModel.NewSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error)
		UpdateSequenceSetting(ctx context.Context, request *sequenceSettingModel.UpdateSequenceSetting) (*sequenceSettingModel.SequenceSetting, error)
		BulkUpdateSequenceSettings(ctx context.Context, requests []*sequenceSettingModel.UpdateSequenceSetting) ([]*sequenceSettingModel.SequenceSetting, error)
		ToggleStatus(ctx context.Context, sequenceSettingID string, request *sequenceSettingModel.StatusToggle) (*sequenceSettingModel.SequenceSetting, error)
		DeleteSequenceSetting(ctx context.Context, sequenceSettingID string) error
		AuditOrphans(ctx context.Context) ([]*sequenceSettingModel.SequenceSetting, error)
		ConsumeMessage(ctx context.Context) error
	}
)
