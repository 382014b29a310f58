package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgdnvk/campusbot/internal/answer"
	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, query string) (string, error) {
	return s.text, s.err
}

func newTestServer(t *testing.T, cat *catalog.Catalog, gen answer.Generator) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(Config{Host: "127.0.0.1", Port: 0}, answer.NewEngine(cat, gen))
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		HolidayList: catalog.HolidayList{Details: "Holi: 14 Mar"},
		Facilities: []catalog.Facility{
			{Name: "Canteen", Location: "Near gate 2", Timing: "9-5", Coords: &catalog.Coords{Lat: 25.6, Lng: 85.1}},
		},
	}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAsk(t *testing.T) {
	srv := newTestServer(t, testCatalog(), stubGenerator{text: "From the model."})

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantText   string
		wantCoords bool
	}{
		{name: "greeting", body: `{"query":"Hello there"}`, wantStatus: http.StatusOK, wantText: answer.GreetingText},
		{name: "holiday", body: `{"query":"holiday list"}`, wantStatus: http.StatusOK, wantText: "**Holiday Information:**\nHoli: 14 Mar"},
		{name: "facility", body: `{"query":"canteen"}`, wantStatus: http.StatusOK, wantCoords: true},
		{name: "generative", body: `{"query":"college ranking"}`, wantStatus: http.StatusOK, wantText: "From the model."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv.Handler(), http.MethodPost, "/ask", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code)

			var resp backend.AskResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			if tc.wantText != "" {
				assert.Equal(t, tc.wantText, resp.Response.Text)
			}
			assert.Equal(t, tc.wantCoords, resp.Response.Coords != nil)
		})
	}
}

func TestAsk_RoundTripThroughClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ts := httptest.NewServer(newTestServer(t, testCatalog(), nil).Handler())
	defer ts.Close()

	got, err := backend.NewClientWithURL(ts.URL, false).Ask(context.Background(), "canteen")
	require.NoError(t, err)
	require.True(t, got.HasCoords())
	assert.Equal(t, 85.1, got.Location().Lng)

	got, err = backend.NewClientWithURL(ts.URL, false).Ask(context.Background(), "fees")
	require.NoError(t, err)
	assert.Equal(t, answer.NotConfiguredText, got.Text)
}

func TestAsk_BadRequests(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	for _, body := range []string{`{"query":""}`, `{"query":"   "}`, `{}`, `not json`} {
		rec := doJSON(t, srv.Handler(), http.MethodPost, "/ask", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"No query provided."}`, rec.Body.String(), body)
	}
}

func TestAsk_GeneratorErrorIsStill200(t *testing.T) {
	srv := newTestServer(t, nil, stubGenerator{err: errors.New("boom")})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/ask", `{"query":"ranking"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), answer.ServiceErrorText)
}

func TestCatalogAndHealth(t *testing.T) {
	srv := newTestServer(t, testCatalog(), nil)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/data.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cat, err := catalog.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Holi: 14 Mar", cat.HolidayList.Details)

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","catalog":true}`, rec.Body.String())

	empty := newTestServer(t, nil, nil)
	rec = doJSON(t, empty.Handler(), http.MethodGet, "/data.json", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get(requestIDHeader))

	rec = doJSON(t, srv.Handler(), http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get(requestIDHeader), 8)
}

func TestRun_StopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(Config{Host: "127.0.0.1", Port: 0}, answer.NewEngine(nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}

func TestCORSConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{" https://campus.example.edu ", ""})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://campus.example.edu"}, cfg.AllowOrigins)
}
