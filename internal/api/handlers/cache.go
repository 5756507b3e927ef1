package handlers

import (
	"log"
	"net/http"

	"room-finder-service/internal/ports"
)

// CacheHandler exposes cache diagnostics and administration.
type CacheHandler struct {
	Store ports.ResponseCache
}

// CacheTest returns a fixed payload so operators can verify response
// caching end to end; the route is cached for 60 seconds.
func CacheTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "This response is cached for 60 seconds",
	})
}

// Clear drops every cached response unconditionally. There is no scoping
// by key prefix.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.Store.Clear(r.Context()); err != nil {
		log.Printf("clear cache failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "Server error: "+err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Cache cleared successfully"})
}
