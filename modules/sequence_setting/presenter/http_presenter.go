package presenter

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roysitumorang/kilau/helper"
	sequenceUseCase "github.com/roysitumorang/kilau/modules/sequence/usecase"
	"github.com/roysitumorang/kilau/modules/sequence_setting/sanitizer"
	sequenceSettingUseCase "github.com/roysitumorang/kilau/modules/sequence_setting/usecase"
	"go.uber.org/zap"
)

type (
	sequenceSettingHTTPHandler struct {
		sequenceSettingUseCase sequenceSettingUseCase.SequenceSettingUseCase
		sequenceUseCase        sequenceUseCase.SequenceUseCase
	}
)

func New(
	sequenceSettingUseCase sequenceSettingUseCase.SequenceSettingUseCase,
	sequenceUseCase sequenceUseCase.SequenceUseCase,
) *sequenceSettingHTTPHandler {
	return &sequenceSettingHTTPHandler{
		sequenceSettingUseCase: sequenceSettingUseCase,
		sequenceUseCase:        sequenceUseCase,
	}
}

func (q *sequenceSettingHTTPHandler) Mount(r fiber.Router) {
	r.Get("", q.FindSequenceSettings).
		Post("", q.CreateSequenceSetting).
		Post("/bulk", q.BulkCreateSequenceSettings).
		Put("/bulk", q.BulkUpdateSequenceSettings).
		Get("/owner/:branch_id", q.FindSequenceSettingByBranchID).
		Get("/:id", q.FindSequenceSettingByID).
		Put("/:id", q.UpdateSequenceSetting).
		Patch("/:id/status", q.ToggleStatus).
		Post("/:id/next-number", q.IssueNumber).
		Delete("/:id", q.DeleteSequenceSetting)
}

// FindSequenceSettings godoc
//
//	@Summary	List sequence settings, newest first
//	@Tags		sequence-settings
//	@Param		search		query		string	false	"case-insensitive match on prefix, suffix, branch name or sequence label"
//	@Param		branch_id	query		string	false	"owning branch"
//	@Param		limit		query		int		false	"page size"
//	@Param		page		query		int		false	"page number"
//	@Success	200			{object}	helper.Response
//	@Router		/sequence-settings [get]
func (q *sequenceSettingHTTPHandler) FindSequenceSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-FindSequenceSettings"
	filter, err := sanitizer.FindSequenceSettings(ctx, c)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
		return helper.NewResponse(fiber.StatusBadRequest).SetMessage(err.Error()).WriteResponse(c)
	}
	rows, pagination, err := q.sequenceSettingUseCase.FindSequenceSettings(ctx, filter)
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrFindSequenceSettings")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(map[string]any{
		"pagination": pagination,
		"rows":       rows,
	}).WriteResponse(c)
}

// CreateSequenceSetting godoc
//
//	@Summary	Create a sequence setting
//	@Tags		sequence-settings
//	@Param		body	body		model.NewSequenceSetting	true	"sequence setting"
//	@Success	201		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Router		/sequence-settings [post]
func (q *sequenceSettingHTTPHandler) CreateSequenceSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-CreateSequenceSetting"
	request, statusCode, err := sanitizer.ValidateNewSequenceSetting(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.sequenceSettingUseCase.CreateSequenceSetting(ctx, request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrCreateSequenceSetting")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusCreated).SetData(response).WriteResponse(c)
}

// BulkCreateSequenceSettings godoc
//
//	@Summary	Create sequence settings, all or nothing
//	@Tags		sequence-settings
//	@Param		body	body		model.BulkNewSequenceSettings	true	"items"
//	@Success	201		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Router		/sequence-settings/bulk [post]
func (q *sequenceSettingHTTPHandler) BulkCreateSequenceSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-BulkCreateSequenceSettings"
	request, statusCode, err := sanitizer.ValidateBulkNewSequenceSettings(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.sequenceSettingUseCase.BulkCreateSequenceSettings(ctx, request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrBulkCreateSequenceSettings")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusCreated).
		SetMessage("sequence settings created").
		SetData(map[string]any{"items": response}).
		WriteResponse(c)
}

// BulkUpdateSequenceSettings godoc
//
//	@Summary	Update sequence settings, all or nothing
//	@Tags		sequence-settings
//	@Param		body	body		model.BulkUpdateSequenceSettings	true	"items, each with its id"
//	@Success	200		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Router		/sequence-settings/bulk [put]
func (q *sequenceSettingHTTPHandler) BulkUpdateSequenceSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-BulkUpdateSequenceSettings"
	request, statusCode, err := sanitizer.ValidateBulkUpdateSequenceSettings(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.sequenceSettingUseCase.BulkUpdateSequenceSettings(ctx, request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrBulkUpdateSequenceSettings")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).
		SetMessage("sequence settings updated").
		SetData(map[string]any{"items": response}).
		WriteResponse(c)
}

// FindSequenceSettingByBranchID godoc
//
//	@Summary	Find the sequence setting of a branch
//	@Tags		sequence-settings
//	@Param		branch_id	path		string	true	"branch id"
//	@Success	200			{object}	helper.Response
//	@Failure	404			{object}	helper.Response
//	@Router		/sequence-settings/owner/{branch_id} [get]
func (q *sequenceSettingHTTPHandler) FindSequenceSettingByBranchID(c *fiber.Ctx) error {
	ctx := c.UserContext()
	response, err := q.sequenceSettingUseCase.FindSequenceSettingByBranchID(ctx, c.Params("branch_id"))
	if err != nil {
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// FindSequenceSettingByID godoc
//
//	@Summary	Find a sequence setting
//	@Tags		sequence-settings
//	@Param		id	path		string	true	"sequence setting id"
//	@Success	200	{object}	helper.Response
//	@Failure	404	{object}	helper.Response
//	@Router		/sequence-settings/{id} [get]
func (q *sequenceSettingHTTPHandler) FindSequenceSettingByID(c *fiber.Ctx) error {
	ctx := c.UserContext()
	response, err := q.sequenceSettingUseCase.FindSequenceSettingByID(ctx, c.Params("id"))
	if err != nil {
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// UpdateSequenceSetting godoc
//
//	@Summary	Update the fields present in the body
//	@Tags		sequence-settings
//	@Param		id		path		string						true	"sequence setting id"
//	@Param		body	body		model.UpdateSequenceSetting	true	"fields to change"
//	@Success	200		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Failure	404		{object}	helper.Response
//	@Router		/sequence-settings/{id} [put]
func (q *sequenceSettingHTTPHandler) UpdateSequenceSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-UpdateSequenceSetting"
	request, statusCode, err := sanitizer.ValidateUpdateSequenceSetting(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.sequenceSettingUseCase.UpdateSequenceSetting(ctx, request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrUpdateSequenceSetting")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// ToggleStatus godoc
//
//	@Summary	Set or flip the status of a sequence setting
//	@Tags		sequence-settings
//	@Param		id		path		string				true	"sequence setting id"
//	@Param		body	body		model.StatusToggle	false	"status_id 0 or 1, omit to flip"
//	@Success	200		{object}	helper.Response
//	@Failure	400		{object}	helper.Response
//	@Failure	404		{object}	helper.Response
//	@Router		/sequence-settings/{id}/status [patch]
func (q *sequenceSettingHTTPHandler) ToggleStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-ToggleStatus"
	request, statusCode, err := sanitizer.ValidateStatusToggle(ctx, c)
	if err != nil {
		return helper.NewResponse(statusCode).SetMessage(err.Error()).WriteResponse(c)
	}
	response, err := q.sequenceSettingUseCase.ToggleStatus(ctx, c.Params("id"), request)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrToggleStatus")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// IssueNumber godoc
//
//	@Summary	Issue the next number of an active sequence setting
//	@Tags		sequence-settings
//	@Param		id	path		string	true	"sequence setting id"
//	@Success	200	{object}	helper.Response
//	@Failure	400	{object}	helper.Response
//	@Failure	404	{object}	helper.Response
//	@Router		/sequence-settings/{id}/next-number [post]
func (q *sequenceSettingHTTPHandler) IssueNumber(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-IssueNumber"
	sequenceSetting, err := q.sequenceSettingUseCase.FindSequenceSettingByID(ctx, c.Params("id"))
	if err != nil {
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	response, err := q.sequenceUseCase.IssueNumber(ctx, sequenceSetting)
	if err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrIssueNumber")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusOK).SetData(response).WriteResponse(c)
}

// DeleteSequenceSetting godoc
//
//	@Summary	Soft delete a sequence setting
//	@Tags		sequence-settings
//	@Param		id	path	string	true	"sequence setting id"
//	@Success	204
//	@Failure	404	{object}	helper.Response
//	@Router		/sequence-settings/{id} [delete]
func (q *sequenceSettingHTTPHandler) DeleteSequenceSetting(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ctxt := "SequenceSettingPresenter-DeleteSequenceSetting"
	if err := q.sequenceSettingUseCase.DeleteSequenceSetting(ctx, c.Params("id")); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrDeleteSequenceSetting")
		return helper.NewErrorResponse(err).WriteResponse(c)
	}
	return helper.NewResponse(fiber.StatusNoContent).WriteResponse(c)
}
