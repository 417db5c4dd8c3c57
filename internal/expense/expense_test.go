package expense

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/minsukim/tripdeck/internal/models"
)

func TestTotalSkipsNonNumericAmounts(t *testing.T) {
	expenses := []models.Expense{
		{Item: "Ramen", Amount: "2400"},
		{Item: "Souvenirs", Amount: " 5800 "},
		{Item: "tbd", Amount: "unknown"},
		{Item: "blank", Amount: ""},
	}
	if got := Total(expenses); !got.Equal(decimal.NewFromInt(8200)) {
		t.Errorf("Total = %s, want 8200", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Expense{{Amount: "100"}, {Amount: "2.5"}})
	if s.Count != 2 || s.Total != "102.5" {
		t.Errorf("Summarize = %+v", s)
	}
}

func TestFixedRateConversion(t *testing.T) {
	krw := JPYToKRW(decimal.NewFromInt(1000))
	if !krw.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("1000 JPY = %s KRW, want 9000", krw)
	}
	jpy := KRWToJPY(decimal.NewFromInt(9000))
	if !jpy.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("9000 KRW = %s JPY, want 1000", jpy)
	}
}
