package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatKnownCurrency(t *testing.T) {
	got := Format(decimal.NewFromInt(250), "INR")
	assert.Contains(t, got, "250.00")
	assert.NotContains(t, got, "INR 250.00")
}

func TestFormatUnknownCurrencyFallsBack(t *testing.T) {
	assert.Equal(t, "ZZZ 99.50", Format(decimal.NewFromFloat(99.5), "ZZZ"))
}
