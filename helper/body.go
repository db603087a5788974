package helper

import (
	"bytes"
	"errors"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

var (
	ErrEmptyBody = errors.New("body: is required")
)

// ParseBody decodes a JSON request body into out, rejecting unknown fields
// and trailing data. The returned int is the HTTP status to answer with.
func ParseBody(c *fiber.Ctx, out any) (int, error) {
	if !c.Is("json") {
		return fiber.StatusUnsupportedMediaType, fiber.ErrUnsupportedMediaType
	}
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return fiber.StatusBadRequest, ErrEmptyBody
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fiber.StatusBadRequest, err
	}
	if decoder.More() {
		return fiber.StatusBadRequest, errors.New("body: unexpected trailing data")
	}
	return fiber.StatusOK, nil
}
