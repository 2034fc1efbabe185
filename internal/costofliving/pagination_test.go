package costofliving

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "country-explorer/internal/common/errors"
	"country-explorer/internal/models"
)

func makeEntities(n int) []models.GroupedEntity {
	entities := make([]models.GroupedEntity, n)
	for i := range entities {
		entities[i] = models.GroupedEntity{Name: fmt.Sprintf("entity-%02d", i)}
	}
	return entities
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		page           int
		pageSize       int
		wantLen        int
		wantTotalPages int
		wantFirst      string
	}{
		{name: "first page full", total: 25, page: 1, pageSize: 10, wantLen: 10, wantTotalPages: 3, wantFirst: "entity-00"},
		{name: "middle page", total: 25, page: 2, pageSize: 10, wantLen: 10, wantTotalPages: 3, wantFirst: "entity-10"},
		{name: "short last page", total: 25, page: 3, pageSize: 10, wantLen: 5, wantTotalPages: 3, wantFirst: "entity-20"},
		{name: "exact division", total: 20, page: 2, pageSize: 10, wantLen: 10, wantTotalPages: 2, wantFirst: "entity-10"},
		{name: "past the end", total: 25, page: 4, pageSize: 10, wantLen: 0, wantTotalPages: 3},
		{name: "page zero", total: 25, page: 0, pageSize: 10, wantLen: 0, wantTotalPages: 3},
		{name: "negative page", total: 25, page: -1, pageSize: 10, wantLen: 0, wantTotalPages: 3},
		{name: "empty input", total: 0, page: 1, pageSize: 10, wantLen: 0, wantTotalPages: 0},
		{name: "page size one", total: 3, page: 3, pageSize: 1, wantLen: 1, wantTotalPages: 3, wantFirst: "entity-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, totalPages, err := Paginate(makeEntities(tt.total), tt.page, tt.pageSize)

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotalPages, totalPages)
			assert.Len(t, got, tt.wantLen)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, got[0].Name)
			}
		})
	}
}

func TestPaginate_RejectsNonPositivePageSize(t *testing.T) {
	for _, pageSize := range []int{0, -1, -100} {
		_, _, err := Paginate(makeEntities(5), 1, pageSize)

		require.Error(t, err)
		assert.Equal(t, stderrors.ErrCodeInvalidArgument, stderrors.CodeOf(err))
	}
}

func TestPaginate_PagesConcatenateToFullList(t *testing.T) {
	entities := makeEntities(23)
	pageSize := 7

	var reassembled []models.GroupedEntity
	_, totalPages, err := Paginate(entities, 1, pageSize)
	require.NoError(t, err)

	for page := 1; page <= totalPages; page++ {
		chunk, _, err := Paginate(entities, page, pageSize)
		require.NoError(t, err)
		reassembled = append(reassembled, chunk...)
	}

	assert.Equal(t, entities, reassembled)
}
