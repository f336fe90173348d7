package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		expected string
	}{
		{"thousands separator", 97432.18, 2, "97,432.18"},
		{"pads fraction", 1234.5, 2, "1,234.50"},
		{"four decimals", 0.5, 4, "0.5000"},
		{"zero decimals", 97432.18, 0, "97,432"},
		{"millions", 1234567.891, 3, "1,234,567.891"},
		{"negative", -52.33, 2, "-52.33"},
		{"rounds half away from zero", 2.345, 2, "2.35"},
		{"small value", 2.34, 4, "2.3400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fixed(tt.value, tt.decimals))
		})
	}
}

func TestAbbreviatedCurrency(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{999, "$999.00"},
		{1500, "$1.50K"},
		{1000, "$1.00K"},
		{28453000000, "$28.45B"},
		{2_500_000_000, "$2.50B"},
		{1e9, "$1.00B"},
		{4_820_000_000, "$4.82B"},
		{1920000000000, "$1.92T"},
		{890000000, "$890.00M"},
		{0, "$0.00"},
		{1005, "$1.00K"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AbbreviatedCurrency(tt.value), "value %v", tt.value)
	}
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, "+5.60%", SignedPercent(5.6))
	assert.Equal(t, "-1.34%", SignedPercent(-1.34))
	assert.Equal(t, "+0.00%", SignedPercent(0))
	assert.Equal(t, "+6.85%", SignedPercent(6.85))
	assert.Equal(t, "-0.00%", SignedPercent(-0.001))
	assert.Equal(t, "+1.00%", SignedPercent(1.005), "rounds the binary value like toFixed")
	assert.Equal(t, "+0.00%", SignedPercent(math.Copysign(0, -1)))
}

func TestNonFiniteValues(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.Equal(t, Placeholder, Fixed(v, 2))
		assert.Equal(t, Placeholder, Price(v))
		assert.Equal(t, Placeholder, USD(v))
		assert.Equal(t, Placeholder, AbbreviatedCurrency(v))
		assert.Equal(t, Placeholder, SignedPercent(v))
		assert.Equal(t, Placeholder, SignedFixed(v, 2))
	}
}

func TestSignedFixed(t *testing.T) {
	assert.Equal(t, "+1,234.50", SignedFixed(1234.5, 2))
	assert.Equal(t, "-12.00", SignedFixed(-12, 2))
	assert.Equal(t, "+0.00", SignedFixed(0, 2))
}

func TestPriceAndUSD(t *testing.T) {
	assert.Equal(t, "2.3400", Price(2.34))
	assert.Equal(t, "234.82", Price(234.82))
	assert.Equal(t, "$97,432.18", USD(97432.18))
}
