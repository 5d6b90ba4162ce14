package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Quote struct {
	ItemID       string
	Quality      Quality
	City         string
	SellPriceMin decimal.Decimal
	SellPriceMax decimal.Decimal
}

// Meaningful reports whether the quote reflects live sell orders. A zero
// minimum or a minimum equal to the maximum is treated as stale.
func (q Quote) Meaningful() bool {
	return !q.SellPriceMin.IsZero() && !q.SellPriceMin.Equal(q.SellPriceMax)
}

type PriceClient interface {
	FetchQuotes(ctx context.Context, itemIDs []string) ([]Quote, error)
}
