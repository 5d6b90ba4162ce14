package albion

import "github.com/shopspring/decimal"

type priceRow struct {
	ItemID       string          `json:"item_id"`
	City         string          `json:"city"`
	Quality      int             `json:"quality"`
	SellPriceMin decimal.Decimal `json:"sell_price_min"`
	SellPriceMax decimal.Decimal `json:"sell_price_max"`
	BuyPriceMin  decimal.Decimal `json:"buy_price_min"`
	BuyPriceMax  decimal.Decimal `json:"buy_price_max"`
}
