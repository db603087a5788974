package sanitizer

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/models"
	sequenceSettingModel "github.com/roysitumorang/kilau/modules/sequence_setting/model"
	"go.uber.org/zap"
)

var (
	ErrIDMismatch = errors.New("id: does not match the path")
	ErrNoItems    = errors.New("items: is required")
)

func FindSequenceSettings(ctx context.Context, c *fiber.Ctx) (*sequenceSettingModel.Filter, error) {
	ctxt := "SequenceSettingSanitizer-FindSequenceSettings"
	originalURL, err := url.ParseRequestURI(c.OriginalURL())
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrParseRequestURI")
		return nil, err
	}
	var builder strings.Builder
	_, _ = builder.WriteString(c.BaseURL())
	_, _ = builder.WriteString(originalURL.Path)
	urlValues := url.Values{}
	var options []sequenceSettingModel.FilterOption
	options = append(options, sequenceSettingModel.WithPaginationURL(builder.String()))
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		urlValues.Set("search", search)
		options = append(options, sequenceSettingModel.WithSearch(search))
	}
	if branchID := strings.TrimSpace(c.Query("branch_id")); branchID != "" {
		urlValues.Set("branch_id", branchID)
		options = append(options, sequenceSettingModel.WithBranchIDs(branchID))
	}
	if limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64); limit > 0 {
		if _, ok := models.MapLimits[limit]; ok {
			urlValues.Set("limit", strconv.FormatInt(limit, 10))
			options = append(options, sequenceSettingModel.WithLimit(limit))
		}
	}
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)
	page = max(page, 1)
	options = append(options, sequenceSettingModel.WithPage(page), sequenceSettingModel.WithUrlValues(urlValues))
	return sequenceSettingModel.NewFilter(options...), nil
}

func ValidateNewSequenceSetting(ctx context.Context, c *fiber.Ctx) (*sequenceSettingModel.NewSequenceSetting, int, error) {
	ctxt := "SequenceSettingSanitizer-ValidateNewSequenceSetting"
	var response sequenceSettingModel.NewSequenceSetting
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	return &response, fiber.StatusOK, nil
}

func ValidateBulkNewSequenceSettings(ctx context.Context, c *fiber.Ctx) ([]*sequenceSettingModel.NewSequenceSetting, int, error) {
	ctxt := "SequenceSettingSanitizer-ValidateBulkNewSequenceSettings"
	var response sequenceSettingModel.BulkNewSequenceSettings
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	if response.Items == nil {
		return nil, fiber.StatusBadRequest, ErrNoItems
	}
	return response.Items, fiber.StatusOK, nil
}

// ValidateUpdateSequenceSetting binds the path id; a body id, when sent, must agree with it.
func ValidateUpdateSequenceSetting(ctx context.Context, c *fiber.Ctx) (*sequenceSettingModel.UpdateSequenceSetting, int, error) {
	ctxt := "SequenceSettingSanitizer-ValidateUpdateSequenceSetting"
	var response sequenceSettingModel.UpdateSequenceSetting
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	sequenceSettingID := c.Params("id")
	if response.ID != "" && response.ID != sequenceSettingID {
		helper.Log(ctx, zap.WarnLevel, ErrIDMismatch.Error(), ctxt, "ErrIDMismatch")
		return nil, fiber.StatusBadRequest, ErrIDMismatch
	}
	response.ID = sequenceSettingID
	return &response, fiber.StatusOK, nil
}

func ValidateBulkUpdateSequenceSettings(ctx context.Context, c *fiber.Ctx) ([]*sequenceSettingModel.UpdateSequenceSetting, int, error) {
	ctxt := "SequenceSettingSanitizer-ValidateBulkUpdateSequenceSettings"
	var response sequenceSettingModel.BulkUpdateSequenceSettings
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	if response.Items == nil {
		return nil, fiber.StatusBadRequest, ErrNoItems
	}
	return response.Items, fiber.StatusOK, nil
}

// ValidateStatusToggle accepts an empty body, which flips the current status.
func ValidateStatusToggle(ctx context.Context, c *fiber.Ctx) (*sequenceSettingModel.StatusToggle, int, error) {
	ctxt := "SequenceSettingSanitizer-ValidateStatusToggle"
	var response sequenceSettingModel.StatusToggle
	if len(c.Body()) == 0 {
		return &response, fiber.StatusOK, nil
	}
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	return &response, fiber.StatusOK, nil
}
