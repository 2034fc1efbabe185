package api

import (
	"net/http"
)

// handleGetImage resolves an image URL for a place name. Resolution is
// total: every failure tier falls through to the placeholder, so this
// endpoint always answers 200.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	respondJSON(w, http.StatusOK, map[string]string{
		"name": name,
		"url":  s.resolver.Resolve(r.Context(), name),
	})
}

// handleRevalidateImage drops the cached URL for a name so the next lookup
// re-runs the provider chain.
func (s *Server) handleRevalidateImage(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondBadRequest(w, "name is required")
		return
	}

	s.resolver.Evict(r.Context(), name)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":        name,
		"revalidated": true,
	})
}
