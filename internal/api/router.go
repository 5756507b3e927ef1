package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"room-finder-service/internal/api/handlers"
	"room-finder-service/internal/platform/metrics"
	"room-finder-service/internal/ports"
)

// cacheTestTTL is the short-lived TTL of the diagnostic endpoint.
const cacheTestTTL = 60 * time.Second

// RouterConfig carries the request-independent settings handlers need.
type RouterConfig struct {
	BuildingCategory string
	CacheTTL         time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(source ports.MapSource, store ports.ResponseCache, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	roomHandler := &handlers.RoomHandler{
		Source:           source,
		BuildingCategory: cfg.BuildingCategory,
	}
	cacheHandler := &handlers.CacheHandler{Store: store}

	rc := &responseCache{store: store}

	mux.Handle("/v1/find-room",
		rc.wrap(http.MethodPost, requestBodyKey, cfg.CacheTTL, http.HandlerFunc(roomHandler.FindRoom)))
	mux.Handle("/v1/rooms",
		rc.wrap(http.MethodGet, rawQueryKey, cfg.CacheTTL, http.HandlerFunc(roomHandler.List)))
	mux.Handle("/v1/cache-test",
		rc.wrap(http.MethodGet, pathKey, cacheTestTTL, http.HandlerFunc(handlers.CacheTest)))
	mux.HandleFunc("/v1/clear-cache", cacheHandler.Clear)
	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())

	handler := cors.AllowAll().Handler(mux)
	return loggingMiddleware(handler)
}
