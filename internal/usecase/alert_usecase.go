package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NasaVasa/pricewatch/internal/catalog"
	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownItem      = errors.New("unknown item")
	ErrInvalidThreshold = errors.New("invalid threshold")
	ErrAlertNotFound    = errors.New("alert not found")
)

type ItemLookup interface {
	Lookup(itemID string) (catalog.Item, bool)
}

type AlertUsecase struct {
	alerts domain.AlertRepository
	items  ItemLookup
}

func NewAlertUsecase(alerts domain.AlertRepository, items ItemLookup) *AlertUsecase {
	return &AlertUsecase{alerts: alerts, items: items}
}

func (u *AlertUsecase) AddAlert(ctx context.Context, userID, itemID, quality, threshold, direction string) (*domain.Alert, error) {
	item, ok := u.items.Lookup(strings.TrimSpace(itemID))
	if !ok {
		return nil, ErrUnknownItem
	}

	parsedQuality, err := domain.ParseQuality(quality)
	if err != nil {
		return nil, err
	}

	parsedDirection, err := domain.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	decThreshold, err := decimal.NewFromString(strings.TrimSpace(threshold))
	if err != nil || !decThreshold.IsPositive() {
		return nil, ErrInvalidThreshold
	}

	alert := &domain.Alert{
		UserID:    userID,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Quality:   parsedQuality,
		Threshold: decThreshold,
		Direction: parsedDirection,
	}

	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("store alert: %w", err)
	}

	return alert, nil
}

func (u *AlertUsecase) ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	return u.alerts.ListByUser(ctx, userID)
}

// DeleteAlert removes one of the user's own alerts.
func (u *AlertUsecase) DeleteAlert(ctx context.Context, userID string, alertID uint) error {
	alerts, err := u.alerts.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	owned := false
	for _, alert := range alerts {
		if alert.ID == alertID {
			owned = true
			break
		}
	}
	if !owned {
		return ErrAlertNotFound
	}

	removed, err := u.alerts.Delete(ctx, alertID)
	if err != nil {
		return err
	}
	if removed == 0 {
		// consumed by a trigger in the meantime
		return ErrAlertNotFound
	}
	return nil
}
