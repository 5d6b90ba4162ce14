package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/NasaVasa/pricewatch/internal/catalog"
	"github.com/NasaVasa/pricewatch/internal/domain"
)

var errStorage = errors.New("disk full")

type fakeAlertRepo struct {
	mu        sync.Mutex
	nextID    uint
	alerts    []domain.Alert
	createErr error
	deleteErr error
	deleted   []uint
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	alert.ID = r.nextID
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *fakeAlertRepo) ListByUser(ctx context.Context, userID string) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Alert
	for _, alert := range r.alerts {
		if alert.UserID == userID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) ListAll(ctx context.Context) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Alert(nil), r.alerts...), nil
}

func (r *fakeAlertRepo) ListDistinctItemIDs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	var out []string
	for _, alert := range r.alerts {
		if _, ok := seen[alert.ItemID]; ok {
			continue
		}
		seen[alert.ItemID] = struct{}{}
		out = append(out, alert.ItemID)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeAlertRepo) Delete(ctx context.Context, alertID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	for i, alert := range r.alerts {
		if alert.ID == alertID {
			r.alerts = append(r.alerts[:i], r.alerts[i+1:]...)
			r.deleted = append(r.deleted, alertID)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAlertRepo) seed(alerts ...domain.Alert) {
	for i := range alerts {
		_ = r.Create(context.Background(), &alerts[i])
	}
}

type fakePriceClient struct {
	quotes []domain.Quote
	err    error
	calls  [][]string
}

func (c *fakePriceClient) FetchQuotes(ctx context.Context, itemIDs []string) ([]domain.Quote, error) {
	c.calls = append(c.calls, itemIDs)
	if c.err != nil {
		return nil, c.err
	}
	return c.quotes, nil
}

type sentMessage struct {
	UserID string
	Text   string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func (n *fakeNotifier) Notify(ctx context.Context, userID string, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.failFor[userID]; err != nil {
		return err
	}
	n.sent = append(n.sent, sentMessage{UserID: userID, Text: text})
	return nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: "T4_BAG", Name: "Adept's Bag 4"},
		{ID: "T5_CAPE@1", Name: "Expert's Cape 5.1"},
	})
}
