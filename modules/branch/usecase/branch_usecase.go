package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/roysitumorang/kilau/config"
	appErrors "github.com/roysitumorang/kilau/errors"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/models"
	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
	branchQuery "github.com/roysitumorang/kilau/modules/branch/query"
	serviceNsq "github.com/roysitumorang/kilau/services/nsq"
	"go.uber.org/zap"
)

type (
	branchUseCase struct {
		branchQuery branchQuery.BranchQuery
		publisher   serviceNsq.Publisher
	}
)

func New(
	branchQuery branchQuery.BranchQuery,
	publisher serviceNsq.Publisher,
) BranchUseCase {
	return &branchUseCase{
		branchQuery: branchQuery,
		publisher:   publisher,
	}
}

func (q *branchUseCase) FindBranches(ctx context.Context, filter *branchModel.Filter) ([]*branchModel.Branch, *models.Pagination, error) {
	ctxt := "BranchUseCase-FindBranches"
	branches, total, pages, err := q.branchQuery.FindBranches(ctx, filter)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindBranches")
		return nil, nil, err
	}
	rows := make([]*branchModel.Branch, len(branches))
	copy(rows, branches)
	pagination, err := helper.SetPagination(total, pages, filter.Limit, filter.Page, filter.PaginationURL, filter.UrlValues)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrSetPagination")
		return nil, nil, err
	}
	return rows, pagination, nil
}

func (q *branchUseCase) FindBranchByID(ctx context.Context, branchID string) (*branchModel.Branch, error) {
	ctxt := "BranchUseCase-FindBranchByID"
	branches, _, _, err := q.branchQuery.FindBranches(ctx, branchModel.NewFilter(branchModel.WithBranchIDs(branchID)))
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindBranches")
		return nil, err
	}
	if len(branches) == 0 {
		return nil, appErrors.NotFound("branch not found")
	}
	return branches[0], nil
}

func (q *branchUseCase) CreateBranch(ctx context.Context, request *branchModel.NewBranch) (*branchModel.Branch, error) {
	ctxt := "BranchUseCase-CreateBranch"
	response, err := q.branchQuery.CreateBranch(ctx, request)
	if errors.Is(err, branchModel.ErrUniqueNumberViolation) {
		return nil, appErrors.DuplicateKey(err.Error())
	}
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrCreateBranch")
		return nil, err
	}
	q.publish(ctx, models.ActionCreate, response.ID)
	return response, nil
}

func (q *branchUseCase) UpdateBranch(ctx context.Context, branchID string, request *branchModel.UpdateBranch) (*branchModel.Branch, error) {
	ctxt := "BranchUseCase-UpdateBranch"
	branch, err := q.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	request.Apply(branch)
	err = q.branchQuery.UpdateBranch(ctx, branch)
	if errors.Is(err, branchModel.ErrUniqueNumberViolation) {
		return nil, appErrors.DuplicateKey(err.Error())
	}
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrUpdateBranch")
		return nil, err
	}
	q.publish(ctx, models.ActionUpdate, branch.ID)
	return branch, nil
}

func (q *branchUseCase) DeleteBranch(ctx context.Context, branchID string) error {
	ctxt := "BranchUseCase-DeleteBranch"
	rowsAffected, err := q.branchQuery.DeleteBranch(ctx, branchID)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrDeleteBranch")
		return err
	}
	if rowsAffected == 0 {
		return appErrors.NotFound("branch not found")
	}
	q.publish(ctx, models.ActionDelete, branchID)
	return nil
}

func (q *branchUseCase) publish(ctx context.Context, action, branchID string) {
	ctxt := "BranchUseCase-publish"
	if q.publisher == nil {
		return
	}
	eventID, err := uuid.NewV7()
	if err != nil {
		eventID = uuid.New()
	}
	if err = q.publisher.Publish(ctx, config.TopicBranch, models.Message{
		EventID:    eventID.String(),
		Action:     action,
		ID:         branchID,
		OccurredAt: time.Now(),
	}); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrPublish")
	}
}
