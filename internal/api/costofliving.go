package api

import (
	"net/http"
	"strconv"

	"country-explorer/internal/costofliving"
)

// parsePagination validates page/pageSize query params. Missing params fall
// back to defaults; non-numeric or non-positive values are rejected at this
// boundary before reaching the core.
func (s *Server) parsePagination(r *http.Request) (page, pageSize int, errMsg string) {
	page = 1
	pageSize = s.pagination.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, "page must be a positive integer"
		}
		page = parsed
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, "pageSize must be a positive integer"
		}
		if parsed > s.pagination.MaxPageSize {
			parsed = s.pagination.MaxPageSize
		}
		pageSize = parsed
	}

	return page, pageSize, ""
}

// handleGetCountriesPage returns one page of grouped country cost data
func (s *Server) handleGetCountriesPage(w http.ResponseWriter, r *http.Request) {
	s.handlePage(w, r, costofliving.DatasetCountries)
}

// handleGetCitiesPage returns one page of grouped city cost data
func (s *Server) handleGetCitiesPage(w http.ResponseWriter, r *http.Request) {
	s.handlePage(w, r, costofliving.DatasetCities)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request, dataset costofliving.Dataset) {
	page, pageSize, errMsg := s.parsePagination(r)
	if errMsg != "" {
		respondBadRequest(w, errMsg)
		return
	}

	result, err := s.costOfLiving.FetchPage(r.Context(), dataset, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleSearch filters entities by name; empty query returns the default
// first page. A query matching nothing is an empty list, not an error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	dataset := costofliving.DatasetCountries
	if r.URL.Query().Get("dataset") == string(costofliving.DatasetCities) {
		dataset = costofliving.DatasetCities
	}

	result, err := s.costOfLiving.Search(r.Context(), dataset, r.URL.Query().Get("q"), s.pagination.DefaultPageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleGetStatistics returns the cross-entity summary numbers
func (s *Server) handleGetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.costOfLiving.Statistics(r.Context(), costofliving.DatasetCountries)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
