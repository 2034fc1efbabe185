package classifier

import (
	"strings"

	"country-explorer/internal/models"
)

// Other Costs is trimmed on cards so the catch-all bucket doesn't swamp the
// curated categories.
const maxOtherCosts = 4

// GroupByCategory classifies a deduplicated item list into display
// categories. Input order is preserved inside each category; the "Other
// Costs" bucket is capped at maxOtherCosts entries.
func GroupByCategory(items []models.PricedItem) map[string][]models.CategorizedItem {
	grouped := make(map[string][]models.CategorizedItem)

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		norm := Normalize(item.Item)
		if seen[norm] {
			continue
		}
		seen[norm] = true

		assignment := Classify(item.Item)
		grouped[assignment.Category] = append(grouped[assignment.Category], models.CategorizedItem{
			Glyph: assignment.Glyph,
			Item:  item.Item,
			Price: item.Price,
		})
	}

	if len(grouped[DefaultAssignment.Category]) > maxOtherCosts {
		grouped[DefaultAssignment.Category] = grouped[DefaultAssignment.Category][:maxOtherCosts]
	}

	return grouped
}

type priorityEntry struct {
	matchKey     string
	displayLabel string
	glyph        string
}

// priorityTable lists the headline items compact cards show, in display
// order.
var priorityTable = []priorityEntry{
	{"Apartment (1 bedroom) in City Centre", "Apartment (1 bedroom) in City Centre", "🏙️"},
	{"Basic (Electricity, Heating, Cooling, Water, Garbage)", "Basic Utilities", "💡"},
	{"Meal, Inexpensive Restaurant", "Meal, Inexpensive Restaurant", "🍽️"},
	{"Internet (60 Mbps or More, Unlimited Data, Cable/ADSL)", "Internet (60 Mbps)", "🌐"},
}

// SelectPriority extracts the headline items from an entity's item list.
// Matching accepts containment in either direction on normalized strings so
// abbreviated labels still pair with their full-name keys; the first
// matching item in list order wins. Entries with no match are omitted.
func SelectPriority(items []models.PricedItem) []models.PriorityItem {
	out := make([]models.PriorityItem, 0, len(priorityTable))
	for _, p := range priorityTable {
		key := Normalize(p.matchKey)
		for _, item := range items {
			label := Normalize(item.Item)
			if label == "" {
				continue
			}
			if strings.Contains(label, key) || strings.Contains(key, label) {
				out = append(out, models.PriorityItem{
					Item:  p.displayLabel,
					Price: item.Price,
					Glyph: p.glyph,
				})
				break
			}
		}
	}
	return out
}
