package api

import (
	"net/http"

	"country-explorer/internal/common/errors"

	"github.com/go-chi/chi/v5"
)

// handleListCountries returns all country metadata records
func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	list, err := s.countries.ListAll(r.Context())
	if err != nil {
		// Degrade to an empty list; the landing page renders without the
		// country grid rather than erroring.
		s.logger.Warn("country list unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		respondJSON(w, http.StatusOK, []interface{}{})
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// handleSearchCountries proxies the metadata provider's name search
func (s *Server) handleSearchCountries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondBadRequest(w, "q is required")
		return
	}

	respondJSON(w, http.StatusOK, s.countries.SearchByName(r.Context(), query))
}

// handleGetCountry returns metadata plus the quality-of-life score for one
// country code.
func (s *Server) handleGetCountry(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	country, err := s.countries.ByCode(r.Context(), code)
	if err != nil {
		if errors.IsNotFound(err) {
			respondJSON(w, http.StatusNotFound, map[string]string{"error": "country not found"})
			return
		}
		respondError(w, err)
		return
	}

	score := s.quality.ScoreCountry(r.Context(), code)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"country":       country,
		"qualityOfLife": score,
	})
}

// handleGetQualityOfLife returns just the score. The scorer is total:
// indicator failures use fallback constants, so this never errors.
func (s *Server) handleGetQualityOfLife(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	respondJSON(w, http.StatusOK, s.quality.ScoreCountry(r.Context(), code))
}
