package presenter

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/modules/branch/sanitizer"
	branchUseCase "github.com/roysitumorang/kilau/modules/branch/usecase"
	"go.uber.org/zap"
)

type (
	branchHTTPHandler struct {
		branchUseCase branchUseCase.BranchUseCase
	}
)

func New(
	branchUseCase branchUseCase.BranchUseCase,
) *branchHTTPHandler {
	return &branchHTTPHandler{
		branchUseCase: branchUseCase,
	}
}

func (q *branchHTTPHandler) Mount(r fiber.Router) {
	r.Get("", q.FindBranches).
		Post("", q.CreateBranch).
		Get("/:id", q.FindBranchByID).
		Put("/:id", q.UpdateBranch).
		Delete("/:id", q.DeleteBranch)
}

// FindBranches godoc
//
//	@Summary	List branches
//	@Tags		branches
//	@Param		q		query		string	false	"keyword on name or number"
//	@Param		limit	query		int		false	"page size"
//	@Param		page	query		int		false	"page number"
//	@Success	200		{object}	helper.Response
//	@Router		/branches [get]
func (q *branchHTTPHandler) FindBranches(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "BranchPresenter-FindBranches"
	filter, err := sanitizer.FindBranches(ctx, c)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindBranches")
		return helper.NewResponse(fiber.StatusBadRequest).SetMessage(err.Error()).WriteResponse(c)
	}
	rows, pagination, err := q.branchUseCase.FindBranches(ctx, filter)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindBranches")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(map[string]any{
		"pagination": pagination,
		"rows":       rows,
	}).WriteResponse(c)
}

// CreateBranch godoc
//
//	@Summary	Create a branch
//	@Tags		branches
//	@Param		body	body		model.NewBranch	true	"branch"
//	@Success	201		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Router		/branches [post]
func (q *branchHTTPHandler) CreateBranch(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "BranchPresenter-CreateBranch"
	request, statusCode, err := sanitizer.ValidateNewBranch(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.branchUseCase.CreateBranch(ctx, request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrCreateBranch")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusCreated).SetData(response).WriteResponse(c)
}

// FindBranchByID godoc
//
//	@Summary	Find a branch
//	@Tags		branches
//	@Param		id	path		string	true	"branch id"
//	@Success	200	{object}	helper.Response
//	@Failure	404	{object}	helper.Response
//	@Router		/branches/{id} [get]
func (q *branchHTTPHandler) FindBranchByID(c *fiber.Ctx) error {
	ctx := c.UserContext()
	response, err := q.branchUseCase.FindBranchByID(ctx, c.Params("id"))
	if err != nil {
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// UpdateBranch godoc
//
//	@Summary	Update a branch
//	@Tags		branches
//	@Param		id		path		string				true	"branch id"
//	@Param		body	body		model.UpdateBranch	true	"fields to change"
//	@Success	200		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Failure	404		{object}	helper.Response
//	@Router		/branches/{id} [put]
func (q *branchHTTPHandler) UpdateBranch(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "BranchPresenter-UpdateBranch"
	request, statusCode, err := sanitizer.ValidateUpdateBranch(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.branchUseCase.UpdateBranch(ctx, c.Params("id"), request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrUpdateBranch")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// DeleteBranch godoc
//
//	@Summary	Soft delete a branch
//	@Tags		branches
//	@Param		id	path	string	true	"branch id"
//	@Success	204
//	@Failure	404	{object}	helper.Response
//	@Router		/branches/{id} [delete]
func (q *branchHTTPHandler) DeleteBranch(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "BranchPresenter-DeleteBranch"
	if err := q.branchUseCase.DeleteBranch(ctx, c.Params("id")); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrDeleteBranch")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusNoContent).WriteResponse(c)
}
