package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/config"
	"github.com/driftlab/drift-backend-go/internal/database"
	"github.com/driftlab/drift-backend-go/internal/repository"
	"github.com/driftlab/drift-backend-go/internal/service"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) *gin.Engine {
	t.Helper()

	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	cfg.Server.RateLimit = 0
	if mutate != nil {
		mutate(cfg)
	}

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := repository.NewHistoryRepository(db, cfg.History.MaxEntries)
	logger := zap.NewNop()

	generation := service.NewGenerationService(cfg, repo, logger)
	history := service.NewHistoryService(repo, logger)
	location := service.NewLocationService(logger)

	return SetupRouter(cfg, generation, history, location, logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, 0, envelope.Code, "message: %s", envelope.Message)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestGenerateEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	seed := int64(42)
	w := doJSON(t, router, http.MethodPost, "/api/v1/generate", map[string]any{
		"lat":    40.7128,
		"lng":    -74.0060,
		"radius": 1000,
		"points": 2000,
		"seed":   seed,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp analysis.Response
	decodeData(t, w, &resp)

	assert.NotEmpty(t, resp.ID)
	assert.Len(t, resp.Circles, 1)
	assert.Len(t, resp.Winners, 4)
}

func TestGenerateEndpoint_ValidationErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/generate", map[string]any{
		"lat": 91.0, "lng": 0.0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/generate", map[string]any{
		"lat": 40.0, "lng": 0.0, "mode": "spiral",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/generate", map[string]any{
		"lat": 40.0, "lng": 0.0, "radius": 2999.0, "mode": "flower_power",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpoint_SaveAndHistoryFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/generate", map[string]any{
		"lat": 40.7128, "lng": -74.0060, "radius": 1000, "points": 1000,
		"seed": 7, "save": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analysis.Response
	decodeData(t, w, &resp)

	// The saved generation is listed
	w = doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Count int `json:"count"`
	}
	decodeData(t, w, &listing)
	assert.Equal(t, 1, listing.Count)

	// And retrievable by ID
	w = doJSON(t, router, http.MethodGet, "/api/v1/history/"+resp.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Update, then delete
	w = doJSON(t, router, http.MethodPatch, "/api/v1/history/"+resp.ID, map[string]any{
		"name": "first run", "favorite": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/history/"+resp.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/history/"+resp.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryMutations_RequireTokenWhenSecretSet(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.JWTSecret = "test-secret"
	})

	w := doJSON(t, router, http.MethodDelete, "/api/v1/history", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reads stay open
	w = doJSON(t, router, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackendsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/backends", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var backends []struct {
		Name string `json:"name"`
	}
	decodeData(t, w, &backends)
	require.Len(t, backends, 2)
	assert.Equal(t, "pseudo", backends[0].Name)
}

func TestTypesEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/types", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var types []struct {
		Name string `json:"name"`
	}
	decodeData(t, w, &types)
	require.Len(t, types, 4)
	assert.Equal(t, "blind_spot", types[0].Name)
	assert.Equal(t, "power", types[3].Name)
}

func TestFormatsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/formats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var formats []struct {
		Name string `json:"name"`
	}
	decodeData(t, w, &formats)
	assert.Len(t, formats, 4)
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/status?backend=pseudo", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status struct {
		Backend   string `json:"backend"`
		Available bool   `json:"available"`
	}
	decodeData(t, w, &status)
	assert.Equal(t, "pseudo", status.Backend)
	assert.True(t, status.Available)
}
