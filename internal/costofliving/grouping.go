// Package costofliving shapes the flat cost-of-living table into the
// grouped, paginated, classified views the presentation layer renders.
// Everything here is request-scoped and read-only.
package costofliving

import (
	"country-explorer/internal/costofliving/classifier"
	"country-explorer/internal/models"
)

// GroupRows folds raw rows into one GroupedEntity per entity name.
//
// Entities appear in the order they are first encountered (upstream queries
// sort by entity name, so pages come out alphabetical). Within one entity,
// the first row for a normalized item label wins; later duplicates are
// dropped silently.
func GroupRows(rows []models.CostLineItem) []models.GroupedEntity {
	index := make(map[string]int, len(rows))
	seen := make(map[string]map[string]bool, len(rows))
	grouped := make([]models.GroupedEntity, 0)

	for _, row := range rows {
		i, ok := index[row.Entity]
		if !ok {
			i = len(grouped)
			index[row.Entity] = i
			seen[row.Entity] = make(map[string]bool)
			grouped = append(grouped, models.GroupedEntity{Name: row.Entity})
		}

		norm := classifier.Normalize(row.Item)
		if seen[row.Entity][norm] {
			continue
		}
		seen[row.Entity][norm] = true

		grouped[i].Items = append(grouped[i].Items, models.PricedItem{
			Item:  row.Item,
			Price: row.Price,
		})
	}

	return grouped
}
