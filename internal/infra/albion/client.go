package albion

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PriceClient talks to the Albion Online Data Project stats API.
type PriceClient struct {
	client *resty.Client
	logger *zap.Logger
}

func NewPriceClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PriceClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())
	return &PriceClient{client: client, logger: logger}
}

// FetchQuotes requests every item in a single call. No request is made for
// an empty id set.
func (c *PriceClient) FetchQuotes(ctx context.Context, itemIDs []string) ([]domain.Quote, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	escaped := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		escaped = append(escaped, url.PathEscape(id))
	}

	var rows []priceRow
	start := time.Now()
	c.logger.Info("prices request start", zap.Int("item_count", len(itemIDs)))
	response, err := c.client.R().
		SetContext(ctx).
		SetRawPathParam("items", strings.Join(escaped, ",")).
		ForceContentType("application/json").
		SetResult(&rows).
		Get("/prices/{items}")
	if err != nil {
		c.logger.Error("prices request failed", zap.Int("item_count", len(itemIDs)), zap.Error(err))
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	c.logger.Info(
		"prices request complete",
		zap.Int("item_count", len(itemIDs)),
		zap.Int("status", response.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	if response.IsError() {
		return nil, fmt.Errorf("prices api error: status %d", response.StatusCode())
	}

	quotes := make([]domain.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, domain.Quote{
			ItemID:       row.ItemID,
			Quality:      domain.Quality(row.Quality),
			City:         row.City,
			SellPriceMin: row.SellPriceMin,
			SellPriceMax: row.SellPriceMax,
		})
	}
	return quotes, nil
}
