package api

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
)

// bodyCacheKey derives the cache key for a body-bearing request.
//
// The JSON body is re-serialized through Go's map marshalling, which sorts
// object keys at every level, so payloads that differ only in key order
// hash identically. A missing or unparseable body falls back to the bare
// request path — all such requests deliberately share one cache slot.
func bodyCacheKey(path string, body []byte) string {
	var payload any
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil || payload == nil {
		return path
	}

	normalized, err := json.Marshal(payload)
	if err != nil {
		return path
	}

	sum := md5.Sum(normalized)
	return path + ":" + hex.EncodeToString(sum[:])
}

// queryCacheKey derives the cache key for a query-string request. The raw
// query is embedded verbatim: two requests whose parameters differ only in
// order map to distinct entries. Documented quirk, kept on purpose.
func queryCacheKey(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// requestBodyKey reads and restores the request body so the handler can
// still decode it after key derivation.
func requestBodyKey(r *http.Request) string {
	if r.Body == nil {
		return r.URL.Path
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return r.URL.Path
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return bodyCacheKey(r.URL.Path, body)
}

func rawQueryKey(r *http.Request) string {
	return queryCacheKey(r.URL.Path, r.URL.RawQuery)
}

func pathKey(r *http.Request) string {
	return r.URL.Path
}
