package query

import (
	"context"

	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
)

type (
	BranchQuery interface {
		FindBranches(ctx context.Context, filter *branchModel.Filter) ([]*branchModel.Branch, int64, int64, error)
		FindActiveBranchIDs(ctx context.Context, branchIDs []string) ([]string, error)
		CreateBranch(ctx context.Context, request *branchModel.NewBranch) (*branchModel.Branch, error)
		UpdateBranch(ctx context.Context, request *branchModel.Branch) error
		DeleteBranch(ctx context.Context, branchID string) (int64, error)
	}
)
