package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/shopspring/decimal"
)

type CityPrice struct {
	City  string
	Price decimal.Decimal
}

// Trigger is the outcome of a crossed threshold: the alert plus the lowest
// crossing sell price seen in each city, ordered by city name.
type Trigger struct {
	Alert  domain.Alert
	Cities []CityPrice
}

// Evaluate checks the alert against the quotes of one cycle. Quotes for
// other items or qualities and stale quotes are ignored.
func Evaluate(alert domain.Alert, quotes []domain.Quote) (Trigger, bool) {
	best := make(map[string]decimal.Decimal)
	for _, quote := range quotes {
		if quote.ItemID != alert.ItemID || quote.Quality != alert.Quality {
			continue
		}
		if !quote.Meaningful() {
			continue
		}
		if !crosses(alert, quote.SellPriceMin) {
			continue
		}
		if current, ok := best[quote.City]; !ok || quote.SellPriceMin.LessThan(current) {
			best[quote.City] = quote.SellPriceMin
		}
	}

	if len(best) == 0 {
		return Trigger{}, false
	}

	cities := make([]CityPrice, 0, len(best))
	for city, price := range best {
		cities = append(cities, CityPrice{City: city, Price: price})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].City < cities[j].City })

	return Trigger{Alert: alert, Cities: cities}, true
}

func crosses(alert domain.Alert, price decimal.Decimal) bool {
	switch alert.Direction {
	case domain.DirectionHigher:
		return alert.Threshold.LessThan(price)
	case domain.DirectionLower:
		return alert.Threshold.GreaterThan(price)
	default:
		return false
	}
}

func FormatTriggerMessage(trigger Trigger) string {
	alert := trigger.Alert
	var builder strings.Builder
	builder.WriteString("📢 Price Alert Triggered!\n")
	builder.WriteString(fmt.Sprintf("%s %s\n", alert.Quality, alert.ItemName))
	for _, city := range trigger.Cities {
		builder.WriteString(fmt.Sprintf("🏰 City: %s - 📊 Price: %s\n", city.City, city.Price.String()))
	}
	builder.WriteString(fmt.Sprintf("%s Your Alert: %s than %s", directionIcon(alert.Direction), alert.Direction, alert.Threshold.String()))
	return builder.String()
}

func directionIcon(direction domain.Direction) string {
	if direction == domain.DirectionLower {
		return "📉"
	}
	return "📈"
}
