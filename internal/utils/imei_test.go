package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIMEI(t *testing.T) {
	// Standard test IMEI with a valid Luhn check digit.
	assert.NoError(t, ValidateIMEI("490154203237518"))

	// Same digits, wrong check digit.
	assert.Error(t, ValidateIMEI("490154203237519"))

	// 14-digit form (no check digit) is accepted as-is.
	assert.NoError(t, ValidateIMEI("49015420323751"))

	assert.Error(t, ValidateIMEI(""))
	assert.Error(t, ValidateIMEI("49015420323751A"))
	assert.Error(t, ValidateIMEI("12345"))
	assert.Error(t, ValidateIMEI("4901542032375181"))
}

func TestCleanIMEI(t *testing.T) {
	assert.Equal(t, "490154203237518", CleanIMEI(" 490154 203237 518 "))
	assert.Equal(t, "", CleanIMEI("   "))
}

func TestFormatIMEI(t *testing.T) {
	assert.Equal(t, "490154 203237 518", FormatIMEI("490154203237518"))
	// Anything that isn't 15 digits is returned cleaned but ungrouped.
	assert.Equal(t, "49015420323751", FormatIMEI("49015420323751"))
}
