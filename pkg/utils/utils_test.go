package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 999", FormatRupiah(999))
	assert.Equal(t, "Rp 1.000", FormatRupiah(1000))
	assert.Equal(t, "Rp 12.345.678", FormatRupiah(12345678))
	assert.Equal(t, "-Rp 250.000", FormatRupiah(-250000))
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"":                          "",
		"2024-03-01":                "2024-03-01",
		"2024-02-29T17:00:00.000Z":  "2024-03-01",
		"2024-03-01T08:00:00+07:00": "2024-03-01",
		"5/3/2024":                  "2024-03-05",
		"not a date":                "not a date",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}

func TestToPointer(t *testing.T) {
	p := ToPointer(3)
	assert.Equal(t, 3, *p)
}
