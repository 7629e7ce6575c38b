package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kritika1265/chartkit/pkg/buildinfo"
	"github.com/kritika1265/chartkit/pkg/cache"
	"github.com/kritika1265/chartkit/pkg/pipeline"
)

const barDefJSON = `{
	"kind": "bar",
	"title": "Quarterly Revenue",
	"data": {"points": [
		{"label": "Q1", "value": 1200},
		{"label": "Q2", "value": 2140},
		{"label": "Q3", "value": 1860}
	]}
}`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	srv := New(Config{
		Runner: pipeline.NewRunner(c, nil, logger),
		Logger: logger,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, query, body string) *http.Response {
	t.Helper()
	url := ts.URL + "/api/render"
	if query != "" {
		url += "?" + query
	}
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/render error = %v", err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeErrorCode(t *testing.T, res *http.Response) string {
	t.Helper()
	var body errorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
	if body["version"] != buildinfo.Version {
		t.Errorf("version field = %q, want %q", body["version"], buildinfo.Version)
	}
}

func TestRenderDefaultsToSVG(t *testing.T) {
	ts := testServer(t)

	res := postRender(t, ts, "", barDefJSON)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	if ct := res.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want %q", ct, "image/svg+xml")
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("body starts with %q, want SVG document", data[:min(len(data), 20)])
	}
	if !bytes.Contains(data, []byte("Quarterly Revenue")) {
		t.Error("SVG missing chart title")
	}
}

func TestRenderFormats(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		format      string
		contentType string
		check       func(t *testing.T, data []byte)
	}{
		{
			format:      "svg",
			contentType: "image/svg+xml",
			check: func(t *testing.T, data []byte) {
				if !bytes.HasPrefix(data, []byte("<svg")) {
					t.Error("expected SVG document")
				}
			},
		},
		{
			format:      "png",
			contentType: "image/png",
			check: func(t *testing.T, data []byte) {
				if !bytes.HasPrefix(data, []byte("\x89PNG")) {
					t.Error("expected PNG signature")
				}
			},
		},
		{
			format:      "json",
			contentType: "application/json",
			check: func(t *testing.T, data []byte) {
				var doc struct {
					Kind string `json:"kind"`
				}
				if err := json.Unmarshal(data, &doc); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if doc.Kind != "bar" {
					t.Errorf("kind = %q, want %q", doc.Kind, "bar")
				}
			},
		},
		{
			format:      "term",
			contentType: "text/plain; charset=utf-8",
			check: func(t *testing.T, data []byte) {
				if len(data) == 0 {
					t.Error("expected non-empty terminal output")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res := postRender(t, ts, "format="+tt.format, barDefJSON)
			if res.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
			}
			if ct := res.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			data, err := io.ReadAll(res.Body)
			if err != nil {
				t.Fatalf("read body: %v", err)
			}
			tt.check(t, data)
		})
	}
}

func TestRenderAcceptsTOML(t *testing.T) {
	ts := testServer(t)

	tomlDef := `kind = "line"

[[data.points]]
label = "a"
value = 1.0

[[data.points]]
label = "b"
value = 3.0
`
	res, err := http.Post(ts.URL+"/api/render", "application/toml", strings.NewReader(tomlDef))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(data, []byte("<polyline")) {
		t.Error("expected line chart polyline in SVG output")
	}
}

func TestRenderSizeOverride(t *testing.T) {
	ts := testServer(t)

	res := postRender(t, ts, "width=400&height=300", barDefJSON)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(data, []byte(`width="400"`)) {
		t.Error("SVG missing overridden width")
	}
}

func TestRenderErrors(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name     string
		query    string
		body     string
		status   int
		wantCode string
	}{
		{
			name:     "unknown kind",
			body:     `{"kind": "scatter", "data": {"points": [{"label": "a", "value": 1}]}}`,
			status:   http.StatusBadRequest,
			wantCode: "INVALID_DEFINITION",
		},
		{
			name:     "malformed json",
			body:     `{"kind": `,
			status:   http.StatusBadRequest,
			wantCode: "INVALID_DEFINITION",
		},
		{
			name:     "unknown format",
			query:    "format=gif",
			body:     barDefJSON,
			status:   http.StatusBadRequest,
			wantCode: "INVALID_FORMAT",
		},
		{
			name:     "bad width",
			query:    "width=wide",
			body:     barDefJSON,
			status:   http.StatusBadRequest,
			wantCode: "INVALID_SURFACE",
		},
		{
			name:     "local file reference",
			body:     `{"kind": "line", "data": {"file": "data.csv"}}`,
			status:   http.StatusBadRequest,
			wantCode: "INVALID_PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := postRender(t, ts, tt.query, tt.body)
			if res.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", res.StatusCode, tt.status)
			}
			if code := decodeErrorCode(t, res); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestChartLifecycle(t *testing.T) {
	ts := testServer(t)

	// Create.
	createBody := fmt.Sprintf(`{"name": "revenue", "definition": %s}`, barDefJSON)
	res, err := http.Post(ts.URL+"/api/charts", "application/json", strings.NewReader(createBody))
	if err != nil {
		t.Fatalf("POST /api/charts error = %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", res.StatusCode, http.StatusCreated)
	}
	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode created chart: %v", err)
	}
	res.Body.Close()
	if created.ID == "" {
		t.Fatal("created chart has empty id")
	}
	if created.Name != "revenue" {
		t.Errorf("created name = %q, want %q", created.Name, "revenue")
	}

	// Get.
	res, err = http.Get(ts.URL + "/api/charts/" + created.ID)
	if err != nil {
		t.Fatalf("GET chart error = %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want %d", res.StatusCode, http.StatusOK)
	}
	var fetched struct {
		Name       string `json:"name"`
		Definition struct {
			Kind string `json:"kind"`
		} `json:"definition"`
	}
	if err := json.NewDecoder(res.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode fetched chart: %v", err)
	}
	res.Body.Close()
	if fetched.Definition.Kind != "bar" {
		t.Errorf("fetched kind = %q, want %q", fetched.Definition.Kind, "bar")
	}

	// List.
	res, err = http.Get(ts.URL + "/api/charts")
	if err != nil {
		t.Fatalf("GET /api/charts error = %v", err)
	}
	var list listChartsResponse
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	res.Body.Close()
	if list.Count != 1 {
		t.Errorf("list count = %d, want 1", list.Count)
	}

	// Render by ID, twice: the second response is served from the artifact
	// cache and must be byte-identical.
	var renders [2][]byte
	for i := range renders {
		res, err = http.Get(ts.URL + "/api/charts/" + created.ID + "/render?format=svg")
		if err != nil {
			t.Fatalf("GET render error = %v", err)
		}
		if res.StatusCode != http.StatusOK {
			t.Fatalf("render status = %d, want %d", res.StatusCode, http.StatusOK)
		}
		renders[i], err = io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			t.Fatalf("read render body: %v", err)
		}
	}
	if !bytes.HasPrefix(renders[0], []byte("<svg")) {
		t.Error("render did not produce SVG")
	}
	if !bytes.Equal(renders[0], renders[1]) {
		t.Error("repeat render differs from first")
	}

	// Delete.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/charts/"+created.ID, nil)
	if err != nil {
		t.Fatalf("build DELETE request: %v", err)
	}
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error = %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", res.StatusCode, http.StatusNoContent)
	}

	// Gone.
	res, err = http.Get(ts.URL + "/api/charts/" + created.ID)
	if err != nil {
		t.Fatalf("GET after delete error = %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want %d", res.StatusCode, http.StatusNotFound)
	}
	if code := decodeErrorCode(t, res); code != "CHART_NOT_FOUND" {
		t.Errorf("error code = %q, want %q", code, "CHART_NOT_FOUND")
	}
}

func TestChartInvalidID(t *testing.T) {
	ts := testServer(t)

	res, err := http.Get(ts.URL + "/api/charts/not-a-uuid")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
	}
	if code := decodeErrorCode(t, res); code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want %q", code, "INVALID_INPUT")
	}
}

func TestCreateChartRejectsBadInput(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{
			name:     "empty name",
			body:     fmt.Sprintf(`{"name": "", "definition": %s}`, barDefJSON),
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "traversal in name",
			body:     fmt.Sprintf(`{"name": "../etc/passwd", "definition": %s}`, barDefJSON),
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "invalid definition",
			body:     `{"name": "ok", "definition": {"kind": "scatter", "data": {"points": [{"label": "a", "value": 1}]}}}`,
			wantCode: "INVALID_DEFINITION",
		},
		{
			name:     "local file reference",
			body:     `{"name": "ok", "definition": {"kind": "line", "data": {"file": "secrets.csv"}}}`,
			wantCode: "INVALID_PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := http.Post(ts.URL+"/api/charts", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", res.StatusCode, http.StatusBadRequest)
			}
			if code := decodeErrorCode(t, res); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}
