package costofliving

import (
	"math"
	"sort"
	"strings"

	"country-explorer/internal/models"
)

// Canonical labels the aggregator filters on. The rent labels are the four
// apartment variants the source table reports.
var rentLabels = map[string]bool{
	"Apartment (1 bedroom) in City Centre":     true,
	"Apartment (1 bedroom) Outside of Centre":  true,
	"Apartment (3 bedrooms) in City Centre":    true,
	"Apartment (3 bedrooms) Outside of Centre": true,
}

const internetLabel = "Internet (60 Mbps or More, Unlimited Data, Cable/ADSL)"

const (
	maxSaneRent     = 10000
	maxSaneInternet = 200
)

// ComputeStatistics scans the full row set and derives the landing-page
// summary numbers.
//
// Rent takes the median per entity over the four apartment labels, then the
// mean of those medians, so every entity carries equal weight and a single
// entity's outliers can't skew the figure. Internet is a plain filtered
// mean. Coffee resolves its label dynamically (whatever cappuccino/coffee
// variant the table actually holds) and takes the median over rows with
// exactly that label.
func ComputeStatistics(rows []models.CostLineItem) models.GlobalStatistics {
	rentByEntity := make(map[string][]float64)
	var internetPrices []float64
	entities := make(map[string]bool)

	coffeeLabel := resolveCoffeeLabel(rows)
	var coffeePrices []float64

	for _, row := range rows {
		entities[row.Entity] = true

		switch {
		case rentLabels[row.Item]:
			if row.Price > 0 && row.Price <= maxSaneRent {
				rentByEntity[row.Entity] = append(rentByEntity[row.Entity], row.Price)
			}
		case row.Item == internetLabel:
			if row.Price > 0 && row.Price <= maxSaneInternet {
				internetPrices = append(internetPrices, row.Price)
			}
		}

		if coffeeLabel != "" && row.Item == coffeeLabel {
			coffeePrices = append(coffeePrices, row.Price)
		}
	}

	medians := make([]float64, 0, len(rentByEntity))
	for _, prices := range rentByEntity {
		medians = append(medians, median(prices))
	}

	return models.GlobalStatistics{
		AverageRentCityCenter: round2(mean(medians)),
		AverageInternetPrice:  round2(mean(internetPrices)),
		MedianCoffeePrice:     round2(median(coffeePrices)),
		TotalEntities:         len(entities),
	}
}

// resolveCoffeeLabel finds the first item label mentioning cappuccino or
// coffee; the aggregation then matches that exact label so mixed variants
// don't blend.
func resolveCoffeeLabel(rows []models.CostLineItem) string {
	for _, row := range rows {
		lower := strings.ToLower(row.Item)
		if strings.Contains(lower, "cappuccino") || strings.Contains(lower, "coffee") {
			return row.Item
		}
	}
	return ""
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the upper median for even-length input, matching the
// original index-based selection.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
