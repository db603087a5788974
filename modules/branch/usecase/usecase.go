package usecase

import (
	"context"

	"github.com/roysitumorang/kilau/models"
	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
)

type (
	BranchUseCase interface {
		FindBranches(ctx context.Context, filter *branchModel.Filter) ([]*branchModel.Branch, *models.Pagination, error)
		FindBranchByID(ctx context.Context, branchID string) (*branchModel.Branch, error)
		CreateBranch(ctx context.Context, request *branchModel.NewBranch) (*branchModel.Branch, error)
		UpdateBranch(ctx context.Context, branchID string, request *branchModel.UpdateBranch) (*branchModel.Branch, error)
		DeleteBranch(ctx context.Context, branchID string) error
	}
)
