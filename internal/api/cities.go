package api

import (
	"net/http"
	"strconv"

	"country-explorer/internal/common/errors"
)

// handleSearchCity geocodes a city name and joins it with any cost-of-living
// rows recorded for that city.
func (s *Server) handleSearchCity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondBadRequest(w, "q is required")
		return
	}

	locations, err := s.geocoder.SearchCity(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	if len(locations) == 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "city not found"})
		return
	}

	costs, err := s.costOfLiving.CityData(r.Context(), query)
	if err != nil {
		s.logger.Warn("city cost data unavailable", map[string]interface{}{
			"city":  query,
			"error": err.Error(),
		})
		costs = nil
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"location":     locations[0],
		"costOfLiving": costs,
	})
}

// handleMapSearch returns up to ten candidate locations for the map view,
// ordered by importance.
func (s *Server) handleMapSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondBadRequest(w, "q is required")
		return
	}

	locations, err := s.geocoder.SearchForMap(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, locations)
}

// handleReverseGeocode resolves map click coordinates to a place
func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		respondBadRequest(w, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		respondBadRequest(w, "lon must be a number")
		return
	}

	location, err := s.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		if errors.IsNotFound(err) {
			respondJSON(w, http.StatusNotFound, map[string]string{"error": "no place at coordinates"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, location)
}
