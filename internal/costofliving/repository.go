package costofliving

import (
	"context"
	"fmt"

	"country-explorer/internal/common/database"
	"country-explorer/internal/models"
)

// Dataset selects which cost-of-living table a query runs against.
type Dataset string

const (
	DatasetCountries Dataset = "countries"
	DatasetCities    Dataset = "cities"
)

// Repository reads the cost-of-living tables. The tables are pre-populated
// and read-only; there is no write path.
type Repository struct {
	pg *database.PostgresClient
}

func NewRepository(pg *database.PostgresClient) *Repository {
	return &Repository{pg: pg}
}

func (r *Repository) table(dataset Dataset) (table, entityColumn string, err error) {
	switch dataset {
	case DatasetCountries:
		return "cost_of_living", "country", nil
	case DatasetCities:
		return "cost_of_living_cities", "city", nil
	default:
		return "", "", fmt.Errorf("unknown dataset %q", dataset)
	}
}

// FetchAll returns every row of the dataset sorted by entity name, so the
// grouped output downstream comes out alphabetical.
func (r *Repository) FetchAll(ctx context.Context, dataset Dataset) ([]models.CostLineItem, error) {
	table, entityColumn, err := r.table(dataset)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s, item, price FROM %s ORDER BY %s ASC",
		entityColumn, table, entityColumn,
	)

	rows, err := r.pg.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s rows: %w", dataset, err)
	}
	defer rows.Close()

	var out []models.CostLineItem
	for rows.Next() {
		var row models.CostLineItem
		if err := rows.Scan(&row.Entity, &row.Item, &row.Price); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", dataset, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", dataset, err)
	}

	return out, nil
}

// FetchByEntity returns the rows whose entity name contains the pattern,
// case-insensitively, sorted by entity name.
func (r *Repository) FetchByEntity(ctx context.Context, dataset Dataset, namePattern string) ([]models.CostLineItem, error) {
	table, entityColumn, err := r.table(dataset)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s, item, price FROM %s WHERE %s ILIKE $1 ORDER BY %s ASC",
		entityColumn, table, entityColumn, entityColumn,
	)

	rows, err := r.pg.Query(ctx, query, "%"+namePattern+"%")
	if err != nil {
		return nil, fmt.Errorf("fetch %s rows by entity: %w", dataset, err)
	}
	defer rows.Close()

	var out []models.CostLineItem
	for rows.Next() {
		var row models.CostLineItem
		if err := rows.Scan(&row.Entity, &row.Item, &row.Price); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", dataset, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", dataset, err)
	}

	return out, nil
}
