package domain

import "context"

// AlertRepository is the durable alert table. Implementations rely on the
// database for write serialization.
type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	ListByUser(ctx context.Context, userID string) ([]Alert, error)
	ListAll(ctx context.Context) ([]Alert, error)
	ListDistinctItemIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, alertID uint) (int64, error)
}
