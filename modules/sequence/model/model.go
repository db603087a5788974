package model

import (
	"strconv"
	"strings"
	"time"
)

const (
	DefaultWidth = 6
)

type (
	Sequence struct {
		ID        string    `json:"-"`
		Name      string    `json:"-"`
		Number    int64     `json:"-"`
		CreatedAt time.Time `json:"-"`
		UpdatedAt time.Time `json:"-"`
	}

	IssuedNumber struct {
		SettingID string `json:"setting_id"`
		Number    int64  `json:"number"`
		Formatted string `json:"formatted"`
	}
)

// FormatNumber renders prefix, number left-padded with zeros to width, suffix.
func FormatNumber(prefix string, number int64, suffix string, width int) string {
	digits := strconv.FormatInt(number, 10)
	var builder strings.Builder
	_, _ = builder.WriteString(prefix)
	if n := width - len(digits); n > 0 {
		_, _ = builder.WriteString(strings.Repeat("0", n))
	}
	_, _ = builder.WriteString(digits)
	_, _ = builder.WriteString(suffix)
	return builder.String()
}

// CounterName is the sequences row backing a sequence setting.
func CounterName(sequenceSettingID string) string {
	return "sequence_setting:" + sequenceSettingID
}
