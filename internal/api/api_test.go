package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb"
	"github.com/redis/go-redis/v9"

	"room-finder-service/internal/adapters/cache"
	"room-finder-service/internal/adapters/osmdata"
	"room-finder-service/internal/domain"
)

func square(minX, minY, maxX, maxY float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
	}}
}

func campusSource() *osmdata.MockSource {
	return osmdata.NewMockSource(
		&domain.Feature{
			OSMID: 100,
			Kind:  domain.KindWay,
			Tags: map[string]string{
				"building": "university",
				"name":     "Main Hall",
			},
			Geometry: square(0, 0, 10, 10),
		},
		&domain.Feature{
			OSMID: 200,
			Kind:  domain.KindWay,
			Tags: map[string]string{
				"indoor": "room",
				"ref":    "A101",
				"level":  "1",
			},
			Geometry: square(1, 1, 2, 2),
		},
	)
}

type testEnv struct {
	server *httptest.Server
	source *osmdata.MockSource
	redis  *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	source := campusSource()
	handler := NewRouter(source, cache.NewRedisResponseCache(client), RouterConfig{
		BuildingCategory: "university",
		CacheTTL:         30 * 24 * time.Hour,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, source: source, redis: mr}
}

func TestFindRoomSuccess(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Post(env.server.URL+"/v1/find-room", "application/json",
		strings.NewReader(`{"building":"Main Hall","room":"a101"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		OSMID     int64   `json:"osm_id"`
		Tags      struct {
			Ref   *string `json:"ref"`
			Level *string `json:"level"`
		} `json:"tags"`
		Nodes []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"nodes"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if payload.OSMID != 200 {
		t.Errorf("osm_id = %d, want 200", payload.OSMID)
	}
	if payload.Latitude != 1.5 || payload.Longitude != 1.5 {
		t.Errorf("centroid = (%v, %v), want (1.5, 1.5)", payload.Latitude, payload.Longitude)
	}
	if payload.Tags.Ref == nil || *payload.Tags.Ref != "A101" {
		t.Errorf("tags.ref = %v, want A101", payload.Tags.Ref)
	}
	if len(payload.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5 boundary points", len(payload.Nodes))
	}
}

func TestFindRoomMissingParameters(t *testing.T) {
	env := newTestEnv(t)

	bodies := map[string]string{
		"empty":            "",
		"malformed":        `{"building":`,
		"blank building":   `{"building":"","room":"A101"}`,
		"whitespace room":  `{"building":"Main Hall","room":"   "}`,
		"missing entirely": `{}`,
	}
	for name, body := range bodies {
		res, err := http.Post(env.server.URL+"/v1/find-room", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("%s: POST: %v", name, err)
		}
		got := decodeError(t, res)
		if res.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, res.StatusCode)
		}
		if got != "Missing required parameters" {
			t.Errorf("%s: error = %q, want %q", name, got, "Missing required parameters")
		}
	}
}

func TestFindRoomNotFoundMessages(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name, body, want string
	}{
		{
			name: "unknown building",
			body: `{"building":"Library","room":"A101"}`,
			want: "Building 'Library' not found",
		},
		{
			name: "unknown room",
			body: `{"building":"Main Hall","room":"z9"}`,
			want: "Room 'Z9' not found in dataset",
		},
	}
	for _, tc := range cases {
		res, err := http.Post(env.server.URL+"/v1/find-room", "application/json", strings.NewReader(tc.body))
		if err != nil {
			t.Fatalf("%s: POST: %v", tc.name, err)
		}
		got := decodeError(t, res)
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", tc.name, res.StatusCode)
		}
		if got != tc.want {
			t.Errorf("%s: error = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func decodeError(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return payload.Error
}

func TestFindRoomCachedReplay(t *testing.T) {
	env := newTestEnv(t)
	body := `{"building":"Main Hall","room":"A101"}`

	first := postRaw(t, env, body)
	second := postRaw(t, env, body)

	if first != second {
		t.Errorf("replayed response differs from original:\n%q\n%q", first, second)
	}
	if env.source.BuildingCalls != 1 {
		t.Errorf("building lookups = %d, want 1 (second request served from cache)", env.source.BuildingCalls)
	}
}

func TestFindRoomCacheIgnoresBodyKeyOrder(t *testing.T) {
	env := newTestEnv(t)

	postRaw(t, env, `{"building":"Main Hall","room":"A101"}`)
	postRaw(t, env, `{"room":"A101","building":"Main Hall"}`)

	if env.source.BuildingCalls != 1 {
		t.Errorf("building lookups = %d, want 1 (reordered keys hit the same entry)", env.source.BuildingCalls)
	}
}

func postRaw(t *testing.T, env *testEnv, body string) string {
	t.Helper()
	res, err := http.Post(env.server.URL+"/v1/find-room", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestRoomsListAndQueryKeyQuirk(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Get(env.server.URL + "/v1/rooms?category=university&limit=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	var buildings []struct {
		OSMID int64   `json:"osm_id"`
		Name  *string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&buildings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if len(buildings) != 1 || buildings[0].OSMID != 100 {
		t.Fatalf("buildings = %+v, want single entry 100", buildings)
	}
	if buildings[0].Name == nil || *buildings[0].Name != "Main Hall" {
		t.Errorf("name = %v, want Main Hall", buildings[0].Name)
	}

	// Same parameters in a different order derive a different cache key,
	// so the listing is computed again.
	res2, err := http.Get(env.server.URL + "/v1/rooms?limit=5&category=university")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res2.Body.Close()

	if env.source.CategoryCalls != 2 {
		t.Errorf("category lookups = %d, want 2 (reordered query misses)", env.source.CategoryCalls)
	}
}

func TestClearCacheResetsEntries(t *testing.T) {
	env := newTestEnv(t)
	body := `{"building":"Main Hall","room":"A101"}`

	postRaw(t, env, body)

	res, err := http.Post(env.server.URL+"/v1/clear-cache", "application/json", nil)
	if err != nil {
		t.Fatalf("POST clear-cache: %v", err)
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if payload.Message != "Cache cleared successfully" {
		t.Errorf("message = %q, want %q", payload.Message, "Cache cleared successfully")
	}

	postRaw(t, env, body)
	if env.source.BuildingCalls != 2 {
		t.Errorf("building lookups = %d, want 2 (cache was cleared between requests)", env.source.BuildingCalls)
	}
}

func TestCacheTestEndpointTTL(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Get(env.server.URL + "/v1/cache-test")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	if ttl := env.redis.TTL("/v1/cache-test"); ttl != 60*time.Second {
		t.Errorf("ttl = %v, want 60s", ttl)
	}
}

func TestMethodMismatchBypassesCache(t *testing.T) {
	env := newTestEnv(t)

	// A GET against the POST-only endpoint must not write a cache entry
	// under the bare path, or body-less POSTs would replay its 405.
	res, err := http.Get(env.server.URL + "/v1/find-room")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", res.StatusCode)
	}
	if env.redis.Exists("/v1/find-room") {
		t.Error("405 response was cached under the bare path key")
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	res, err := http.Get(env.server.URL + "/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestCORSHeaders(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Origin", "http://example.com")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()

	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
