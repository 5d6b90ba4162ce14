package db

import (
	"context"

	"github.com/NasaVasa/pricewatch/internal/domain"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListAll(ctx context.Context) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapAlertsToDomain(models), nil
}

func (r *AlertRepository) ListDistinctItemIDs(ctx context.Context) ([]string, error) {
	var itemIDs []string
	if err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Distinct().
		Order("item_id").
		Pluck("item_id", &itemIDs).Error; err != nil {
		return nil, err
	}
	return itemIDs, nil
}

// Delete removes the alert and reports how many rows went away. A missing
// id is not an error.
func (r *AlertRepository) Delete(ctx context.Context, alertID uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&alertModel{}, alertID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func mapAlertsToDomain(models []alertModel) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, domain.Alert{
			ID:        model.ID,
			UserID:    model.UserID,
			ItemID:    model.ItemID,
			ItemName:  model.ItemName,
			Quality:   domain.Quality(model.ItemQuality),
			Threshold: model.PriceThreshold,
			Direction: domain.Direction(model.Direction),
			CreatedAt: model.CreatedAt,
		})
	}
	return alerts
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:             alert.ID,
		UserID:         alert.UserID,
		ItemID:         alert.ItemID,
		ItemQuality:    int(alert.Quality),
		ItemName:       alert.ItemName,
		PriceThreshold: alert.Threshold,
		Direction:      string(alert.Direction),
		CreatedAt:      alert.CreatedAt,
	}
}
