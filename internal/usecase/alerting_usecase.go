package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrFetchFailed = errors.New("price fetch failed")

type Notifier interface {
	Notify(ctx context.Context, userID string, text string) error
}

type CycleReport struct {
	CycleID        string
	Items          int
	Quotes         int
	Evaluated      int
	Triggered      int
	Notified       int
	DeliveryFailed int
	DeleteFailed   int
}

// AlertChecker runs one fetch, evaluate and dispatch pass over all stored
// alerts.
type AlertChecker struct {
	alerts   domain.AlertRepository
	prices   domain.PriceClient
	notifier Notifier
	logger   *zap.Logger
}

func NewAlertChecker(alerts domain.AlertRepository, prices domain.PriceClient, notifier Notifier, logger *zap.Logger) *AlertChecker {
	return &AlertChecker{alerts: alerts, prices: prices, notifier: notifier, logger: logger}
}

type dispatchOutcome int

const (
	outcomeNotified dispatchOutcome = iota
	outcomeDeliveryFailed
	outcomeDeleteFailed
)

// RunCycle returns an error when the cycle had to be skipped. Per-alert
// delivery and deletion failures are logged and counted in the report.
func (c *AlertChecker) RunCycle(ctx context.Context) (CycleReport, error) {
	report := CycleReport{CycleID: uuid.NewString()}
	logger := c.logger.With(zap.String("cycle_id", report.CycleID))
	logger.Info("checking alerts")

	itemIDs, err := c.alerts.ListDistinctItemIDs(ctx)
	if err != nil {
		logger.Error("failed to list watched items", zap.Error(err))
		return report, fmt.Errorf("list watched items: %w", err)
	}
	report.Items = len(itemIDs)
	if len(itemIDs) == 0 {
		logger.Debug("no alerts to check")
		return report, nil
	}

	quotes, err := c.prices.FetchQuotes(ctx, itemIDs)
	if err != nil {
		logger.Warn("cycle skipped: price fetch failed", zap.Int("item_count", len(itemIDs)), zap.Error(err))
		return report, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	report.Quotes = len(quotes)

	alerts, err := c.alerts.ListAll(ctx)
	if err != nil {
		logger.Error("failed to list alerts", zap.Error(err))
		return report, fmt.Errorf("list alerts: %w", err)
	}

	triggers := make([]Trigger, 0)
	for _, alert := range alerts {
		report.Evaluated++
		trigger, ok := Evaluate(alert, quotes)
		if !ok {
			continue
		}
		triggers = append(triggers, trigger)
	}
	report.Triggered = len(triggers)

	outcomes := make([]dispatchOutcome, len(triggers))
	var wg sync.WaitGroup
	for i, trigger := range triggers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = c.dispatch(ctx, logger, trigger)
		}()
	}
	wg.Wait()

	for _, outcome := range outcomes {
		switch outcome {
		case outcomeNotified:
			report.Notified++
		case outcomeDeliveryFailed:
			report.DeliveryFailed++
		case outcomeDeleteFailed:
			report.Notified++
			report.DeleteFailed++
		}
	}

	logger.Info(
		"alert check complete",
		zap.Int("items", report.Items),
		zap.Int("quotes", report.Quotes),
		zap.Int("evaluated", report.Evaluated),
		zap.Int("triggered", report.Triggered),
		zap.Int("notified", report.Notified),
		zap.Int("delivery_failed", report.DeliveryFailed),
		zap.Int("delete_failed", report.DeleteFailed),
	)
	return report, nil
}

// dispatch notifies the owner and deletes the alert only once the message
// went through. A failed delivery keeps the alert for the next cycle.
func (c *AlertChecker) dispatch(ctx context.Context, logger *zap.Logger, trigger Trigger) dispatchOutcome {
	alert := trigger.Alert
	fields := []zap.Field{zap.Uint("alert_id", alert.ID), zap.String("user_id", alert.UserID)}

	if err := c.notifier.Notify(ctx, alert.UserID, FormatTriggerMessage(trigger)); err != nil {
		logger.Warn("failed to deliver alert", append(fields, zap.Error(err))...)
		return outcomeDeliveryFailed
	}

	if _, err := c.alerts.Delete(ctx, alert.ID); err != nil {
		logger.Error("alert delivered but not deleted", append(fields, zap.Error(err))...)
		return outcomeDeleteFailed
	}

	logger.Info("alert delivered", append(fields, zap.Int("cities", len(trigger.Cities)))...)
	return outcomeNotified
}
