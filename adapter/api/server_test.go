package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
	internalApp "github.com/felixgeelhaar/optiflow/internal/app"
	"github.com/felixgeelhaar/optiflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/optiflow/pkg/config"
	"github.com/felixgeelhaar/optiflow/pkg/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		AppEnv:        "test",
		Store:         config.StoreJSON,
		DataFile:      filepath.Join(t.TempDir(), "tasks.json"),
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}
	container, err := internalApp.NewContainer(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(
		container.CreateTaskHandler,
		container.QuickAddHandler,
		container.UpdateTaskHandler,
		container.ToggleCompleteHandler,
		container.DeleteTaskHandler,
		container.ListTasksHandler,
		container.GetTaskHandler,
		container.PlanningHandler,
		container.ICSExporter,
	)
	app.SetHealth(container.Health)

	return NewServer(DefaultServerConfig(), app, nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
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
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealth_NoRegistry(t *testing.T) {
	s := NewServer(DefaultServerConfig(), nil, nil)

	w := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"name":     "Write report",
		"priority": "a",
		"dueDate":  "2024-05-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id, _ := created["taskId"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "2024-05-10", created["dueDate"])
	assert.Equal(t, false, created["rolledOver"])

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[queries.TaskDTO](t, w)
	assert.Equal(t, "Write report", got.Name)
	assert.Equal(t, "major", got.Bucket)

	w = doRequest(t, s, http.MethodPatch, "/api/v1/tasks/"+id, map[string]any{"category": "personal"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, s, http.MethodPost, "/api/v1/tasks/"+id+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":true`)

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]queries.TaskDTO](t, w))

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks?category=personal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]queries.TaskDTO](t, w), 1)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestCreateTask_Rollover(t *testing.T) {
	s := newTestServer(t)

	body := map[string]any{"name": "Major", "bucket": "major", "dueDate": "2024-05-10"}
	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, s, http.MethodPost, "/api/v1/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[map[string]any](t, w)
	assert.Equal(t, true, second["rolledOver"])
	assert.Equal(t, "2024-05-10", second["requestedDate"])
	assert.Equal(t, "2024-05-11", second["dueDate"])
}

func TestCreateTask_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"empty name", map[string]any{"name": ""}},
		{"bad priority", map[string]any{"name": "x", "priority": "z"}},
		{"bad bucket", map[string]any{"name": "x", "bucket": "huge"}},
		{"bad date", map[string]any{"name": "x", "dueDate": "10/05/2024"}},
		{"negative estimate", map[string]any{"name": "x", "estimatedHours": -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "bad_request")
		})
	}
}

func TestQuickAdd(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks/quick", map[string]any{"input": "d: Ask Sam"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks?priority=d", nil)
	tasks := decode[[]queries.TaskDTO](t, w)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ask Sam", tasks[0].Name)

	w = doRequest(t, s, http.MethodPost, "/api/v1/tasks/quick", map[string]any{"input": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggle_UnknownTask(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlanningViews(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/tasks", map[string]any{
		"name": "Deep work", "priority": "a", "dueDate": "2024-05-10",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, path := range []string{"/api/v1/matrix", "/api/v1/abcde", "/api/v1/board", "/api/v1/stats"} {
		w = doRequest(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = doRequest(t, s, http.MethodGet, "/api/v1/plan?date=2024-05-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-05-10"`)
	assert.Contains(t, w.Body.String(), "Deep work")

	w = doRequest(t, s, http.MethodGet, "/api/v1/schedule?date=2024-05-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lunch Break")
	assert.Contains(t, w.Body.String(), "Deep work")

	w = doRequest(t, s, http.MethodGet, "/api/v1/schedule.ics?date=2024-05-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "BEGIN:VEVENT")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "optiflow-2024-05-10.ics")

	w = doRequest(t, s, http.MethodGet, "/api/v1/plan?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlers_NotConfigured(t *testing.T) {
	s := NewServer(DefaultServerConfig(), &cli.App{}, nil)

	w := doRequest(t, s, http.MethodGet, "/api/v1/tasks", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/matrix", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, classify(assert.AnError).Status)
	assert.Equal(t, http.StatusBadRequest, classify(badRequest("x")).Status)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Addr = "127.0.0.1:0"
	s := NewServer(cfg, &cli.App{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRequestLogger_RequestIDAndMetrics(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	app := &cli.App{}
	app.SetMetrics(metrics)
	s := NewServer(DefaultServerConfig(), app, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricOperationTotal,
		observability.T("operation", "GET /health"), observability.T("status", "200")))

	w = doRequest(t, s, http.MethodGet, "/api/v1/tasks", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricOperationTotal,
		observability.T("operation", "GET /api/v1/tasks"), observability.T("status", "503")))
}
