package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"room-finder-service/internal/platform/metrics"
	"room-finder-service/internal/ports"
)

// cachedResponse is the serialized form stored in the response cache.
// Body holds the exact bytes the handler wrote, so a replayed response is
// byte-identical to the recorded one.
type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// recorder buffers a handler's response while writing it through to the
// client, so the response can be stored after serving.
type recorder struct {
	http.ResponseWriter
	status int
	body   []byte
}

func (w *recorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *recorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// responseCache replays previously computed responses for requests that
// derive the same cache key. A store failure degrades to a miss: the
// handler always runs when the cache is unavailable.
type responseCache struct {
	store ports.ResponseCache
}

// wrap caches next's responses under keyFn for the given TTL. Requests
// whose method differs from the endpoint's expected method bypass the
// cache entirely so error responses never occupy another method's slot.
func (rc *responseCache) wrap(method string, keyFn func(*http.Request) string, ttl time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			next.ServeHTTP(w, r)
			return
		}

		key := keyFn(r)

		cached, ok, err := rc.store.Get(r.Context(), key)
		if err != nil {
			log.Printf("cache get failed: key=%q err=%v", key, err)
		}
		if ok {
			var res cachedResponse
			if uerr := json.Unmarshal(cached, &res); uerr != nil {
				log.Printf("cache entry corrupt: key=%q err=%v", key, uerr)
			} else {
				metrics.CacheHitsTotal.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(res.Status)
				_, _ = w.Write(res.Body)
				return
			}
		}
		metrics.CacheMissesTotal.Inc()

		rec := &recorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		entry, err := json.Marshal(cachedResponse{Status: rec.statusOrOK(), Body: rec.body})
		if err != nil {
			log.Printf("cache encode failed: key=%q err=%v", key, err)
			return
		}
		if err := rc.store.Set(r.Context(), key, entry, ttl); err != nil {
			log.Printf("cache set failed: key=%q err=%v", key, err)
		}
	})
}

func (w *recorder) statusOrOK() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
