package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"legalprompt-backend/catalog"
	"legalprompt-backend/metrics"
	"legalprompt-backend/service"
	"legalprompt-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Default()
	require.NoError(t, err)
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	sessions := service.NewSessionService()
	optimizer := service.NewOptimizerService(service.OptimizerWithCatalog(cat))
	exports := service.NewExportService(service.ExportWithStorage(local))
	chat := service.NewChatService(service.ChatWithSessions(sessions))

	return NewRouter(RouterConfig{
		Optimizer: NewOptimizerHandler(optimizer, exports, sessions, nil),
		Catalog:   NewCatalogHandler(cat, service.NewContentService(service.ContentWithCatalog(cat)), sessions, nil),
		Sessions:  NewSessionHandler(sessions, chat),
		Metrics:   metrics.NewMetrics(),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestOptimize_Endpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/optimize", gin.H{
		"components": gin.H{"role": "Senior Counsel", "task": "Draft heads of argument"},
		"mode":       "crispe",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	res := decode[OptimizeResponse](t, env.Data)
	assert.False(t, res.Fallback)
	assert.Equal(t, "CRISPE", string(res.Applied))
	assert.Contains(t, res.Prompt.Optimized, "Senior Counsel")
}

func TestOptimize_UnknownModeReportsFallback(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/optimize", gin.H{
		"components": gin.H{"task": "x"},
		"mode":       "TELEPATHY",
	})
	res := decode[OptimizeResponse](t, env.Data)
	assert.True(t, res.Fallback)
	assert.Equal(t, "TELEPATHY", string(res.Requested))
	assert.Equal(t, "CRISPE", string(res.Applied))
}

func TestOptimize_InvalidJSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, CodeInvalidRequest, env.Error.Code)
}

func TestPresetOptimize_RequiresPreset(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodPost, "/api/optimize/preset", gin.H{"components": gin.H{"task": "x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestScoreAndDetect(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/score", gin.H{"prompt": "", "components": gin.H{}})
	score := decode[struct {
		Score       int      `json:"score"`
		Suggestions []string `json:"suggestions"`
	}](t, env.Data)
	assert.Zero(t, score.Score)
	assert.Len(t, score.Suggestions, 5)

	_, env = do(t, r, http.MethodPost, "/api/detect", gin.H{"text": "Accused applied for bail after arrest"})
	det := decode[service.Detection](t, env.Data)
	assert.Equal(t, "CRIMINAL", det.Preset)
}

func TestCatalogLookups(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/api/frameworks/RICE", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/frameworks/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/workflows/contract_review/steps/99", nil)
	require.Equal(t, http.StatusOK, w.Code)
	step := decode[struct {
		Prompt string `json:"prompt"`
	}](t, env.Data)
	assert.Equal(t, "Step 99 not found in workflow Commercial Contract Review Pipeline", step.Prompt)

	w, _ = do(t, r, http.MethodGet, "/api/workflows/contract_review/steps/one", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = do(t, r, http.MethodGet, "/api/search?q=labour", nil)
	results := decode[[]catalog.SearchResult](t, env.Data)
	assert.NotEmpty(t, results)
}

func TestSessionFlow(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	session := decode[struct {
		ID string `json:"id"`
	}](t, env.Data)
	base := "/api/sessions/" + session.ID

	_, _ = do(t, r, http.MethodPost, "/api/optimize", gin.H{
		"components": gin.H{"task": "Draft a letter of demand"},
		"mode":       "CRISPE",
		"sessionId":  session.ID,
	})
	w, env = do(t, r, http.MethodPost, base+"/history", gin.H{"prompt": "saved prompt", "source": "Framework: RICE"})
	require.Equal(t, http.StatusCreated, w.Code)
	entry := decode[struct {
		ID string `json:"id"`
	}](t, env.Data)

	w, env = do(t, r, http.MethodPost, base+"/history/"+entry.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fav := decode[struct {
		Favorited bool `json:"favorited"`
	}](t, env.Data)
	assert.True(t, fav.Favorited)

	w, env = do(t, r, http.MethodPost, base+"/chat", gin.H{"message": "Tell me about CRISPE"})
	require.Equal(t, http.StatusOK, w.Code)
	chat := decode[struct {
		Source   string `json:"source"`
		Fallback bool   `json:"fallback"`
	}](t, env.Data)
	assert.Equal(t, "fallback", chat.Source)
	assert.True(t, chat.Fallback)

	_, env = do(t, r, http.MethodGet, base+"/analytics", nil)
	summary := decode[service.AnalyticsSummary](t, env.Data)
	assert.Equal(t, 2, summary.TotalPrompts)
	assert.Equal(t, 1, summary.Favorites)
	assert.Equal(t, 1, summary.ChatInteractions)
	require.NotEmpty(t, summary.TopFrameworks)
	assert.Equal(t, "RICE", summary.TopFrameworks[0].Framework)

	w, _ = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_InvalidID(t *testing.T) {
	r := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/api/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SESSION_ID", env.Error.Code)
}

func TestExportSaveAndDownload(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/export", gin.H{
		"prompt": gin.H{"optimized": "Draft the heads", "mode": "RISE", "qualityScore": 60},
		"format": "md",
		"save":   true,
		"name":   "heads",
	})
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[struct {
		Content string               `json:"content"`
		Saved   service.SavedExport `json:"saved"`
	}](t, env.Data)
	assert.Contains(t, out.Content, "- **Quality Score:** 60/100")

	w, _ = do(t, r, http.MethodGet, "/api/exports/"+out.Saved.StoragePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, out.Content, w.Body.String())

	w, env = do(t, r, http.MethodDelete, "/api/exports/"+out.Saved.StoragePath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = do(t, r, http.MethodGet, "/api/exports/"+out.Saved.StoragePath, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/api/exports/notes/secrets.md", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/exports/exports/zz/missing.md", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/export", gin.H{"prompt": gin.H{}, "format": "pdf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
