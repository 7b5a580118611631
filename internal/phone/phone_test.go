package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_EquivalentInputs(t *testing.T) {
	inputs := []string{
		"00971501234567",
		"971501234567",
		"0501234567",
		"501234567",
		"+971-501234567",
		"+971 50 123 4567",
		"(050) 123-4567",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			n := Parse(in)
			assert.True(t, n.Valid())
			assert.Equal(t, "501234567", n.Digits)
			assert.Equal(t, "+971-501234567", n.CRMFormat())
		})
	}
}

func TestParse_Formats(t *testing.T) {
	n := Parse("0501234567")

	assert.Equal(t, "+971-501234567", n.CRMFormat())
	assert.Equal(t, []string{"+971-501234567", "971501234567"}, n.SearchFormats())
	assert.Equal(t, "501234567", n.SinkFormat())
	assert.Equal(t, "+971-501234567", n.String())
}

func TestParse_ShortInputKept(t *testing.T) {
	n := Parse("12-34")

	assert.False(t, n.Valid())
	assert.Equal(t, "1234", n.Digits)
	assert.Equal(t, "+971-1234", n.CRMFormat())
}

func TestParse_Empty(t *testing.T) {
	n := Parse("  ")

	assert.False(t, n.Valid())
	assert.Empty(t, n.Digits)
}

func TestParse_UnicodeDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"full-width", "０５０１２３４５６７"},
		{"arabic-indic", "٠٥٠١٢٣٤٥٦٧"},
		{"extended arabic-indic", "۰۵۰۱۲۳۴۵۶۷"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "501234567", Parse(tt.in).Digits)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := Parse("+971 501 234 567")
	b := Parse("971501234567")

	assert.Equal(t, a, b)
	assert.Equal(t, a.SearchFormats(), b.SearchFormats())
	assert.Equal(t, a.SinkFormat(), b.SinkFormat())
}
