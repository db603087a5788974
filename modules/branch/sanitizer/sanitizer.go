package sanitizer

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roysitumorang/kilau/helper"
	"github.com/roysitumorang/kilau/models"
	branchModel "github.com/roysitumorang/kilau/modules/branch/model"
	"go.uber.org/zap"
)

func FindBranches(ctx context.Context, c *fiber.Ctx) (*branchModel.Filter, error) {
	ctxt := "BranchSanitizer-FindBranches"
	originalURL, err := url.ParseRequestURI(c.OriginalURL())
	if err != nil {
		helper.Log(ctx, zap.ErrorLevel, err.Error(), ctxt, "ErrParseRequestURI")
		return nil, err
	}
	var builder strings.Builder
	_, _ = builder.WriteString(c.BaseURL())
	_, _ = builder.WriteString(originalURL.Path)
	urlValues := url.Values{}
	var options []branchModel.FilterOption
	options = append(options, branchModel.WithPaginationURL(builder.String()))
	if keyword := strings.TrimSpace(c.Query("q")); keyword != "" {
		urlValues.Set("q", keyword)
		options = append(options, branchModel.WithKeyword(keyword))
	}
	if limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64); limit > 0 {
		if _, ok := models.MapLimits[limit]; ok {
			urlValues.Set("limit", strconv.FormatInt(limit, 10))
			options = append(options, branchModel.WithLimit(limit))
		}
	}
	page, _ := strconv.ParseInt(c.Query("page"), 10, 64)
	page = max(page, 1)
	options = append(options, branchModel.WithPage(page), branchModel.WithUrlValues(urlValues))
	return branchModel.NewFilter(options...), nil
}

func ValidateNewBranch(ctx context.Context, c *fiber.Ctx) (*branchModel.NewBranch, int, error) {
	ctxt := "BranchSanitizer-ValidateNewBranch"
	var response branchModel.NewBranch
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	if err := response.Validate(); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrValidate")
		return nil, fiber.StatusBadRequest, err
	}
	return &response, fiber.StatusOK, nil
}

func ValidateUpdateBranch(ctx context.Context, c *fiber.Ctx) (*branchModel.UpdateBranch, int, error) {
	ctxt := "BranchSanitizer-ValidateUpdateBranch"
	var response branchModel.UpdateBranch
	if statusCode, err := helper.ParseBody(c, &response); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrParseBody")
		return nil, statusCode, err
	}
	if err := response.Validate(); err != nil {
		helper.Log(ctx, zap.WarnLevel, err.Error(), ctxt, "ErrValidate")
		return nil, fiber.StatusBadRequest, err
	}
	return &response, fiber.StatusOK, nil
}
