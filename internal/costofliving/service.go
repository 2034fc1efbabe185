package costofliving

import (
	"context"
	"strings"
	"time"

	"country-explorer/internal/common/logger"
	"country-explorer/internal/costofliving/classifier"
	"country-explorer/internal/models"
)

// ImageResolver attaches artwork to a page of entities. Implemented by the
// image resolution service; always total, never errors.
type ImageResolver interface {
	ResolveAll(ctx context.Context, names []string) map[string]string
}

// EntityCard is one grouped entity prepared for display: headline items,
// category buckets and artwork attached.
type EntityCard struct {
	Name          string                              `json:"name"`
	DisplayName   string                              `json:"displayName"`
	Items         []models.PricedItem                 `json:"items"`
	PriorityItems []models.PriorityItem               `json:"priorityItems"`
	Categories    map[string][]models.CategorizedItem `json:"categories"`
	ImageURL      string                              `json:"imageUrl"`
}

// PageResult is the shape the presentation layer consumes.
type PageResult struct {
	Data       []EntityCard `json:"data"`
	Page       int          `json:"page"`
	TotalRows  int          `json:"totalRows"`
	TotalPages int          `json:"totalPages"`
}

type Service struct {
	repo     *Repository
	resolver ImageResolver
	logger   logger.Logger
}

func NewService(repo *Repository, resolver ImageResolver, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   log,
	}
}

// FetchPage returns one page of grouped entities with display items and
// images attached. Image resolution runs concurrently per distinct entity
// and cannot fail the page.
func (s *Service) FetchPage(ctx context.Context, dataset Dataset, page, pageSize int) (*PageResult, error) {
	started := time.Now()

	rows, err := s.repo.FetchAll(ctx, dataset)
	if err != nil {
		return nil, err
	}

	grouped := GroupRows(rows)
	pageEntities, totalPages, err := Paginate(grouped, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := &PageResult{
		Data:       s.buildCards(ctx, pageEntities),
		Page:       page,
		TotalRows:  len(grouped),
		TotalPages: totalPages,
	}

	s.logger.Debug("page assembled", map[string]interface{}{
		"dataset":  string(dataset),
		"page":     page,
		"entities": len(pageEntities),
		"tookMs":   time.Since(started).Milliseconds(),
	})

	return result, nil
}

// Search filters entities by name and returns the matches unpaginated. An
// empty query falls back to the default first page.
func (s *Service) Search(ctx context.Context, dataset Dataset, query string, defaultPageSize int) (*PageResult, error) {
	if strings.TrimSpace(query) == "" {
		return s.FetchPage(ctx, dataset, 1, defaultPageSize)
	}

	rows, err := s.repo.FetchAll(ctx, dataset)
	if err != nil {
		return nil, err
	}

	matches := Search(rows, query)
	return &PageResult{
		Data:       s.buildCards(ctx, matches),
		Page:       1,
		TotalRows:  len(matches),
		TotalPages: 1,
	}, nil
}

// CityData returns the grouped rows for one geocoded city name. An empty
// result is an empty slice, not an error.
func (s *Service) CityData(ctx context.Context, cityName string) ([]EntityCard, error) {
	rows, err := s.repo.FetchByEntity(ctx, DatasetCities, cityName)
	if err != nil {
		return nil, err
	}
	return s.buildCards(ctx, GroupRows(rows)), nil
}

// Statistics computes the cross-entity summary over the full table.
func (s *Service) Statistics(ctx context.Context, dataset Dataset) (models.GlobalStatistics, error) {
	rows, err := s.repo.FetchAll(ctx, dataset)
	if err != nil {
		return models.GlobalStatistics{}, err
	}
	return ComputeStatistics(rows), nil
}

func (s *Service) buildCards(ctx context.Context, entities []models.GroupedEntity) []EntityCard {
	names := make([]string, 0, len(entities))
	for _, entity := range entities {
		names = append(names, entity.Name)
	}
	imageMap := map[string]string{}
	if s.resolver != nil {
		imageMap = s.resolver.ResolveAll(ctx, names)
	}

	cards := make([]EntityCard, 0, len(entities))
	for _, entity := range entities {
		cards = append(cards, EntityCard{
			Name:          entity.Name,
			DisplayName:   FormatEntityName(entity.Name),
			Items:         entity.Items,
			PriorityItems: classifier.SelectPriority(entity.Items),
			Categories:    classifier.GroupByCategory(entity.Items),
			ImageURL:      imageMap[entity.Name],
		})
	}
	return cards
}

// FormatEntityName turns a stored underscore-separated name into its
// title-cased display form.
func FormatEntityName(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}
