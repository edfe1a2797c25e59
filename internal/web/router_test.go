package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/jusunglee/hangulnum/internal/db/sqlite"
	"github.com/jusunglee/hangulnum/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, repo db.Repository, config Config) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(repo, log, config).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func newTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func doJSON(t *testing.T, method, url, body string, header http.Header) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		require.NoError(t, dec.Decode(&out))
	}
	return resp.StatusCode, out
}

func TestEncodeEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	tests := []struct {
		name      string
		body      string
		wantText  string
		wantRoman string
	}{
		{"number", `{"value": 1234}`, "천이백삼십사", "cheonibaeksamsipsa"},
		{"string", `{"value": "-12"}`, "마이너스 십이", "maineoseu sipi"},
		{"large json number", `{"value": 99999999999999999999}`, "구천구백구십구경구천구백구십구조구천구백구십구억구천구백구십구만구천구백구십구", ""},
		{"spacing", `{"value": 123456789, "options": {"use_spacing_between_large_units": true}}`, "억 이천삼백사십오만 육천칠백팔십구", ""},
		{"keep large one", `{"value": 10000, "options": {"omit_one_for_large_units": false}}`, "일만", "ilman"},
		{"zero char", `{"value": 0, "options": {"zero_char": "공"}}`, "공", "gong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", tt.body, nil)
			require.Equal(t, http.StatusOK, status, body)
			assert.Equal(t, tt.wantText, body["text"])
			if tt.wantRoman != "" {
				assert.Equal(t, tt.wantRoman, body["romanized"])
			}
		})
	}
}

func TestEncodeEndpointErrors(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"out of range", `{"value": "100000000000000000000"}`, http.StatusUnprocessableEntity},
		{"fraction", `{"value": 1.5}`, http.StatusUnprocessableEntity},
		{"exponent overflow", `{"value": 1e400}`, http.StatusUnprocessableEntity},
		{"bad string", `{"value": "12abc"}`, http.StatusBadRequest},
		{"bool", `{"value": true}`, http.StatusBadRequest},
		{"missing", `{}`, http.StatusBadRequest},
		{"malformed", `{"value":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", tt.body, nil)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestBatchEncodeEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode/batch",
		`{"values": [10, "110", 1.5, 100000000]}`, nil)
	require.Equal(t, http.StatusOK, status)

	results, ok := body["results"].([]any)
	require.True(t, ok)

	var texts []string
	var failures int
	for _, r := range results {
		m := r.(map[string]any)
		if _, failed := m["error"]; failed {
			failures++
			continue
		}
		texts = append(texts, m["text"].(string))
	}
	if diff := cmp.Diff([]string{"십", "백십", "억"}, texts); diff != "" {
		t.Errorf("batch texts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, failures)

	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode/batch", `{"values": []}`, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDecodeEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	tests := []struct {
		name string
		body string
		want any
	}{
		{"auto", `{"text": "천이백삼십사"}`, json.Number("1234")},
		{"negative", `{"text": "마이너스 십이"}`, json.Number("-12")},
		{"colloquial zero", `{"text": "공"}`, json.Number("0")},
		{"string output", `{"text": "만", "options": {"output": "string"}}`, "10000"},
		{"bigint output", `{"text": "구천구백구십구경", "options": {"output": "bigint"}}`, json.Number("99990000000000000000")},
		{"auto fallback", `{"text": "구천구백구십구경"}`, "99990000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/decode", tt.body, nil)
			require.Equal(t, http.StatusOK, status, body)
			assert.Equal(t, tt.want, body["value"])
		})
	}
}

func TestDecodeEndpointErrors(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not a string", `{"text": 12}`, http.StatusBadRequest},
		{"empty", `{"text": "  "}`, http.StatusBadRequest},
		{"latin", `{"text": "십a"}`, http.StatusBadRequest},
		{"bad output", `{"text": "십", "options": {"output": "float"}}`, http.StatusBadRequest},
		{"number overflow", `{"text": "구천구백구십구경", "options": {"output": "number"}}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/decode", tt.body, nil)
			assert.Equal(t, tt.want, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHistoryDisabledWithoutRepo(t *testing.T) {
	srv := newTestServer(t, nil, Config{})

	resp, err := http.Get(srv.URL + "/api/v1/conversions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHistoryRecordsConversions(t *testing.T) {
	repo := newTestRepo(t)
	srv := newTestServer(t, repo, Config{AdminAPIKey: "secret"})

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", `{"value": 110}`, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/decode", `{"text": "만"}`, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/decode", `{"text": "x"}`, nil)
	require.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, http.MethodGet, srv.URL+"/api/v1/conversions?limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, json.Number("2"), body["total"])

	data := body["data"].([]any)
	require.Len(t, data, 2)
	newest := data[0].(map[string]any)
	assert.Equal(t, "decode", newest["direction"])
	assert.Equal(t, "만", newest["input"])
	assert.Equal(t, "10000", newest["output"])
	oldest := data[1].(map[string]any)
	assert.Equal(t, "encode", oldest["direction"])
	assert.Equal(t, "110", oldest["input"])
	assert.Equal(t, "백십", oldest["output"])

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/conversions/"+oldest["id"].(json.Number).String(), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "백십", body["output"])

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/conversions/999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, http.MethodGet, srv.URL+"/api/v1/conversions?limit=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHistoryPruneRequiresAPIKey(t *testing.T) {
	repo := newTestRepo(t)
	srv := newTestServer(t, repo, Config{AdminAPIKey: "secret"})

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", `{"value": 1}`, nil)
	require.Equal(t, http.StatusOK, status)

	url := srv.URL + "/api/v1/conversions?before=2999-01-01T00:00:00Z"

	status, _ = doJSON(t, http.MethodDelete, url, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := doJSON(t, http.MethodDelete, url, "", http.Header{"X-Api-Key": {"secret"}})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, json.Number("1"), body["deleted"])

	status, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/conversions?before=yesterday", "", http.Header{"X-Api-Key": {"secret"}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPruneRateLimiterExportsTrackedClients(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(nil, log, Config{})
	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)

	router.PruneRateLimiter()
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RateLimitTrackedKeys.WithLabelValues("web")))

	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", `{"value": 1}`, nil)
	require.Equal(t, http.StatusOK, status)

	router.PruneRateLimiter()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RateLimitTrackedKeys.WithLabelValues("web")))
}

func TestRateLimitedRoutes(t *testing.T) {
	srv := newTestServer(t, nil, Config{RequestsPerMinute: 2})

	for range 2 {
		status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", `{"value": 1}`, nil)
		require.Equal(t, http.StatusOK, status)
	}
	status, _ := doJSON(t, http.MethodPost, srv.URL+"/api/v1/encode", `{"value": 1}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)

	// health is not rate limited
	status, body := doJSON(t, http.MethodGet, srv.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
