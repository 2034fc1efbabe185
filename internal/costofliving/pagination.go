package costofliving

import (
	"fmt"

	"country-explorer/internal/common/errors"
	"country-explorer/internal/models"
)

// Paginate slices grouped entities into the 1-based page of the given size
// and reports the total page count.
//
// A zero or negative page size is a precondition violation and fails with
// INVALID_ARGUMENT. Out-of-range pages are not an error: callers clamp, and
// a request past the end simply yields an empty slice.
func Paginate(entities []models.GroupedEntity, page, pageSize int) ([]models.GroupedEntity, int, error) {
	if pageSize <= 0 {
		return nil, 0, errors.NewInvalidArgumentError(fmt.Sprintf("page size must be positive, got %d", pageSize))
	}

	totalPages := (len(entities) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= len(entities) {
		return []models.GroupedEntity{}, totalPages, nil
	}

	end := start + pageSize
	if end > len(entities) {
		end = len(entities)
	}

	return entities[start:end], totalPages, nil
}
