package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLicensePlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc1234", "ABC-1234"},
		{"ABC-1234", "ABC-1234"},
		{"  abc 1234  ", "ABC-1234"},
		{"a!b@c#1$2%3^4", "ABC-1234"},
		{"abc12345678", "ABC-1234"},
		{"ab", "AB"},
		{"abc", "ABC"},
		{"abc1", "ABC-1"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLicensePlate(tt.in), "input %q", tt.in)
	}
}

func TestValidLicensePlate(t *testing.T) {
	assert.True(t, ValidLicensePlate("ABC-1234"))
	assert.True(t, ValidLicensePlate("ABC1D23"))
	assert.False(t, ValidLicensePlate("ABC-123"))
	assert.False(t, ValidLicensePlate(""))
}

func TestNormalizeChassis(t *testing.T) {
	assert.Equal(t, "9BWZZZ377VT004251", NormalizeChassis("  9bwzzz377vt004251  "))
	assert.Equal(t, "9BWZZZ377VT004251", NormalizeChassis("9BWZZZ377VT004251EXTRA"))
}

func TestValidChassis(t *testing.T) {
	assert.True(t, ValidChassis("9BWZZZ377VT004251"))
	assert.False(t, ValidChassis("9BWZZZ377"))
	assert.False(t, ValidChassis(""))
}

func TestNormalizeTaxNumber(t *testing.T) {
	assert.Equal(t, "12345678000195", NormalizeTaxNumber("12.345.678/0001-95"))
	assert.Equal(t, "12345678000195", NormalizeTaxNumber("12345678000195"))
	assert.Equal(t, "", NormalizeTaxNumber("no digits"))
}
