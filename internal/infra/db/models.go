package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type alertModel struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         string          `gorm:"index;not null"`
	ItemID         string          `gorm:"index;not null"`
	ItemQuality    int             `gorm:"not null"`
	ItemName       string          `gorm:"not null"`
	PriceThreshold decimal.Decimal `gorm:"type:numeric;not null"`
	Direction      string          `gorm:"size:8;not null;check:,direction IN ('higher', 'lower')"`
	CreatedAt      time.Time
}

func (alertModel) TableName() string {
	return "alerts"
}
