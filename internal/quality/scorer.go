package quality

import (
	"context"
	"math"
	"sync"

	"country-explorer/internal/common/logger"
	"country-explorer/internal/models"
)

// Fallback constants applied when an indicator fetch fails or the provider
// has no data. The scorer itself can never fail.
const (
	FallbackGDPPerCapita         = 20000.0
	FallbackLifeExpectancy       = 70.0
	FallbackEducationExpenditure = 3.0
	FallbackHealthExpenditure    = 5.0
)

// Indicators are the raw inputs to the scorer; nil means absent.
type Indicators struct {
	PPPGDPPerCapita      *float64
	LifeExpectancy       *float64
	EducationExpenditure *float64
	HealthExpenditure    *float64
}

// Score turns raw indicators into the four 0-100 sub-scores and their mean.
// The formulas are fixed, not configurable.
func Score(in Indicators) models.QualityOfLife {
	gdp := orFallback(in.PPPGDPPerCapita, FallbackGDPPerCapita)
	le := orFallback(in.LifeExpectancy, FallbackLifeExpectancy)
	edu := orFallback(in.EducationExpenditure, FallbackEducationExpenditure)
	health := orFallback(in.HealthExpenditure, FallbackHealthExpenditure)

	costOfLiving := clamp(math.Log(gdp/1000) * 20)
	lifeExpScore := clamp((le - 50) / 35 * 100)
	education := clamp(edu / 10 * 100)
	healthcare := clamp(health / 15 * 100)

	overall := (costOfLiving + lifeExpScore + education + healthcare) / 4

	return models.QualityOfLife{
		Overall:             int(math.Round(overall)),
		CostOfLiving:        int(math.Round(costOfLiving)),
		LifeExpectancyScore: int(math.Round(lifeExpScore)),
		Education:           int(math.Round(education)),
		Healthcare:          int(math.Round(healthcare)),
		GDPPerCapita:        int(math.Round(gdp)),
		LifeExpectancy:      int(math.Round(le)),
	}
}

func orFallback(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// Service fetches the four indicators concurrently and scores them. Fetch
// failures are absorbed per indicator via the fallback constants; the page
// renders a default score rather than failing.
type Service struct {
	client IndicatorClient
	logger logger.Logger
}

func NewService(client IndicatorClient, log logger.Logger) *Service {
	return &Service{
		client: client,
		logger: log,
	}
}

func (s *Service) ScoreCountry(ctx context.Context, countryCode string) models.QualityOfLife {
	indicatorIDs := []string{
		IndicatorPPPGDPPerCapita,
		IndicatorLifeExpectancy,
		IndicatorEducationExpenditure,
		IndicatorHealthExpenditure,
	}

	values := make([]*float64, len(indicatorIDs))
	var wg sync.WaitGroup
	for i, id := range indicatorIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			value, err := s.client.LatestValue(ctx, countryCode, id)
			if err != nil {
				s.logger.Warn("indicator fetch failed, using fallback", map[string]interface{}{
					"countryCode": countryCode,
					"indicator":   id,
					"error":       err.Error(),
				})
				return
			}
			values[i] = value
		}(i, id)
	}
	wg.Wait()

	return Score(Indicators{
		PPPGDPPerCapita:      values[0],
		LifeExpectancy:       values[1],
		EducationExpenditure: values[2],
		HealthExpenditure:    values[3],
	})
}
