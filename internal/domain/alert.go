package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidQuality   = errors.New("invalid quality")
)

type Direction string

const (
	DirectionHigher Direction = "higher"
	DirectionLower  Direction = "lower"
)

func ParseDirection(input string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "higher", "above", ">":
		return DirectionHigher, nil
	case "lower", "below", "<":
		return DirectionLower, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Quality is the item condition tier reported by the market, 1 (Normal)
// through 5 (Masterpiece).
type Quality int

const (
	QualityNormal Quality = iota + 1
	QualityGood
	QualityOutstanding
	QualityExcellent
	QualityMasterpiece
)

var qualityNames = map[Quality]string{
	QualityNormal:      "Normal",
	QualityGood:        "Good",
	QualityOutstanding: "Outstanding",
	QualityExcellent:   "Excellent",
	QualityMasterpiece: "Masterpiece",
}

func (q Quality) Valid() bool {
	_, ok := qualityNames[q]
	return ok
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "Unknown"
}

// ParseQuality accepts either the numeric tier or its name.
func ParseQuality(input string) (Quality, error) {
	trimmed := strings.TrimSpace(input)
	if value, err := strconv.Atoi(trimmed); err == nil {
		q := Quality(value)
		if !q.Valid() {
			return 0, ErrInvalidQuality
		}
		return q, nil
	}
	for q, name := range qualityNames {
		if strings.EqualFold(name, trimmed) {
			return q, nil
		}
	}
	return 0, ErrInvalidQuality
}

type Alert struct {
	ID        uint
	UserID    string
	ItemID    string
	ItemName  string
	Quality   Quality
	Threshold decimal.Decimal
	Direction Direction
	CreatedAt time.Time
}
