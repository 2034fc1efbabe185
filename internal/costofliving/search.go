package costofliving

import (
	"strings"

	"country-explorer/internal/models"
)

// FilterRows keeps the rows whose entity name contains the normalized query
// as a case-insensitive substring. An empty query returns the input
// untouched; the caller decides whether that means "default page".
func FilterRows(rows []models.CostLineItem, query string) []models.CostLineItem {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return rows
	}

	filtered := make([]models.CostLineItem, 0)
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Entity), normalized) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Search filters the row set by entity name and regroups the matches.
// Results are unpaginated: search replaces the page view wholesale.
func Search(rows []models.CostLineItem, query string) []models.GroupedEntity {
	return GroupRows(FilterRows(rows, query))
}
