// Package expense interprets the string amounts of stored expense rows
// and provides the fixed-rate currency helper used by the dashboard.
package expense

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minsukim/tripdeck/internal/models"
)

// Rate is the fixed conversion rate used for rough trip budgeting:
// 100 JPY = 900 KRW.
var Rate = decimal.NewFromInt(9)

// Summary aggregates the expense list for display.
type Summary struct {
	Count int    `json:"count"`
	Total string `json:"total"`
}

// Total sums the amount column. Rows whose amount does not parse as a
// number are skipped rather than failing the whole summary.
func Total(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		amount, err := decimal.NewFromString(strings.TrimSpace(e.Amount))
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}

// Summarize builds a display summary of the expense list.
func Summarize(expenses []models.Expense) Summary {
	return Summary{
		Count: len(expenses),
		Total: Total(expenses).String(),
	}
}

// JPYToKRW converts yen to won at the fixed rate.
func JPYToKRW(jpy decimal.Decimal) decimal.Decimal {
	return jpy.Mul(Rate)
}

// KRWToJPY converts won to yen at the fixed rate.
func KRWToJPY(krw decimal.Decimal) decimal.Decimal {
	return krw.DivRound(Rate, 2)
}
