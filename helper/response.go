package helper

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/roysitumorang/kilau/config"
	appErrors "github.com/roysitumorang/kilau/errors"
	"go.uber.org/zap"
)

type (
	Response struct {
		RequestID  string      `json:"request_id" example:"6ba3451b-ac73-483e-8481-2ac53f5e75a2"`
		RequestURL string      `json:"request_url" example:"GET http://localhost:8080/ping"`
		StatusCode int         `json:"status_code" example:"200"`
		Status     string      `json:"status" example:"OK"`
		Message    string      `json:"message" example:""`
		Timestamp  time.Time   `json:"timestamp" example:"2026-10-18T12:22:47.608963985+07:00"`
		Latency    string      `json:"latency" example:"7.746177ms"`
		Data       interface{} `json:"data,omitempty"`
		Errors     []string    `json:"errors,omitempty"`
		App        string      `json:"app" example:"kilau"`
	}
)

func NewResponse(statusCode int) *Response {
	return &Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Timestamp:  time.Now(),
		App:        config.AppName,
	}
}

// NewErrorResponse maps err onto its status code; itemized details of a
// typed error go to the errors array. Untyped errors are logged and answered
// with a generic 500 so driver messages never reach the client.
func NewErrorResponse(err error) *Response {
	if e := appErrors.As(err); e != nil && e.Kind() != appErrors.KindInternal {
		return NewResponse(e.Code()).SetMessage(e.Message()).SetErrors(e.Details())
	}
	Log(context.Background(), zap.ErrorLevel, err.Error(), "Helper-NewErrorResponse", "ErrInternal")
	return NewResponse(http.StatusInternalServerError).SetMessage(http.StatusText(http.StatusInternalServerError))
}

func (r *Response) SetMessage(message string) *Response {
	r.Message = message
	return r
}

func (r *Response) SetData(data interface{}) *Response {
	r.Data = data
	return r
}

func (r *Response) SetErrors(errors []string) *Response {
	r.Errors = errors
	return r
}

func (r *Response) WriteResponse(c *fiber.Ctx) error {
	if r.StatusCode == fiber.StatusNoContent {
		return c.SendStatus(r.StatusCode)
	}
	var builder strings.Builder
	_, _ = builder.WriteString(c.Method())
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(c.BaseURL())
	_, _ = builder.WriteString(c.OriginalURL())
	r.RequestURL = builder.String()
	r.RequestID = ByteSlice2String(c.Response().Header.Peek(fiber.HeaderXRequestID))
	r.Latency = time.Since(c.Context().Time()).String()
	return c.Status(r.StatusCode).JSON(r)
}
