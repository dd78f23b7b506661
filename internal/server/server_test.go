package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draw-pipe/internal/config"
	"draw-pipe/internal/profile"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, profile.SeedDir(dir))
	return New(config.Default(), profile.NewCatalog(dir))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListTemplates(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/templates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp profile.TemplatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Templates, "Default Process")
	assert.Len(t, resp.Templates["Default Process"], 5)
}

func analyzeRequest(t *testing.T, payload profile.ProfilePayload) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAnalyzeDefaultProcess(t *testing.T) {
	srv := newTestServer(t)
	payload, err := profile.FromPipes(profile.DefaultProcess())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, analyzeRequest(t, payload))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp profile.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.AreaReductions, 4)
	assert.Len(t, resp.EccentricityDiffs, 4)
	require.Len(t, resp.ThicknessReductions, 4)
	assert.Len(t, resp.ThicknessReductions[0], 5)
}

func TestAnalyzeSingletonIsEmptySeries(t *testing.T) {
	srv := newTestServer(t)
	payload, err := profile.FromPipes(profile.DefaultProcess()[:1])
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, analyzeRequest(t, payload))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp profile.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.AreaReductions)
	assert.Empty(t, resp.EccentricityDiffs)
	assert.Empty(t, resp.ThicknessReductions)
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeRejectsInvalidShape(t *testing.T) {
	srv := newTestServer(t)
	body := `{"version":1,"pipes":[{"pipe_type":"CircleCircle",
		"outer":{"shape_type":"Circle","origin":[0,0],"diameter":-5},
		"inner":{"shape_type":"Circle","origin":[0,0],"diameter":3}}]}`

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeDegenerateMetricIsUnprocessable(t *testing.T) {
	srv := newTestServer(t)

	// Equal outer and inner leave a zero annular area at the first stage.
	zero := profile.PipePayload{
		PipeType: profile.PipeTypeCircleCircle,
		Outer:    profile.ShapePayload{Circle: &profile.CirclePayload{ShapeType: profile.ShapeTypeCircle, Diameter: 50}},
		Inner:    profile.ShapePayload{Circle: &profile.CirclePayload{ShapeType: profile.ShapeTypeCircle, Diameter: 50}},
	}
	next := profile.PipePayload{
		PipeType: profile.PipeTypeCircleCircle,
		Outer:    profile.ShapePayload{Circle: &profile.CirclePayload{ShapeType: profile.ShapeTypeCircle, Diameter: 40}},
		Inner:    profile.ShapePayload{Circle: &profile.CirclePayload{ShapeType: profile.ShapeTypeCircle, Diameter: 30}},
	}
	payload := profile.ProfilePayload{Version: 1, Pipes: []profile.PipePayload{zero, next}}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, analyzeRequest(t, payload))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/templates", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSAllowlistAndPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
