package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV000042/JKT", FormatNumber("INV", 42, "/JKT", DefaultWidth))
	assert.Equal(t, "1234567", FormatNumber("", 1234567, "", DefaultWidth))
	assert.Equal(t, "R-7", FormatNumber("R-", 7, "", 0))
}
