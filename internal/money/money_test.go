package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFromCents(t *testing.T) {
	got := FromCents(150075)
	want := decimal.RequireFromString("1500.75")
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestCentsToAmount_Nil(t *testing.T) {
	if !CentsToAmount(nil).IsZero() {
		t.Errorf("Expected zero for nil cents")
	}
}

func TestCentsToAmount_Negative(t *testing.T) {
	cents := int64(-250)
	got := CentsToAmount(&cents)
	if !got.Equal(decimal.RequireFromString("-2.5")) {
		t.Errorf("Expected -2.5, got %s", got)
	}
}

func TestRound(t *testing.T) {
	got := Round(decimal.RequireFromString("10.005"))
	if !got.Equal(decimal.RequireFromString("10.01")) {
		t.Errorf("Expected 10.01, got %s", got)
	}
}
