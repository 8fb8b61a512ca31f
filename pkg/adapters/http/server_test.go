package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/flowant"
	"github.com/aretw0/flowant/pkg/adapters/memory"
	"github.com/aretw0/flowant/pkg/domain"
	"github.com/aretw0/flowant/pkg/fitness"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowJSON = `{"sections": [
	{"id": "a", "text": "Hi", "buttons": [{"text": "next", "nextSectionId": "b"}]},
	{"id": "b", "text": "More", "buttons": [{"text": "next", "nextSectionId": "c"}]},
	{"id": "c", "text": "End", "type": "stop"}
]}`

func newOptimizer(t *testing.T, store *memory.Store, reg prometheus.Registerer) *flowant.Optimizer {
	t.Helper()
	cfg := flowant.DefaultConfig()
	cfg.Seed = 3
	cfg.Iterations = 3
	cfg.Ants = 2
	cfg.Budget = 1

	opt, err := flowant.New(fitness.Reachability(),
		flowant.WithConfig(cfg),
		flowant.WithStore(store),
		flowant.WithRegisterer(reg),
	)
	require.NoError(t, err)
	return opt
}

func TestGetRun(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.Result{
		RunID: "r1",
		Best:  domain.Outcome{Sequence: []domain.Action{domain.RemoveNode("b")}, Fitness: 1},
	}))
	handler := NewHandler(store)

	req := httptest.NewRequest("GET", "/runs/r1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"REMOVE_NODE b"}, got.Best.Tokens())

	req = httptest.NewRequest("GET", "/runs/nope", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndDeleteRuns(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.Result{RunID: "r1"}))
	require.NoError(t, store.Save(context.Background(), &domain.Result{RunID: "r2"}))
	handler := NewHandler(store)

	req := httptest.NewRequest("DELETE", "/runs/r1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest("GET", "/runs", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"runs": ["r2"]}`, w.Body.String())
}

func TestHealthAndInfo(t *testing.T) {
	handler := NewHandler(memory.NewStore())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	req = httptest.NewRequest("GET", "/info", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), `"can_start":false`)
}

func TestStartRun_Wait(t *testing.T) {
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	handler := NewHandler(store, WithOptimizer(newOptimizer(t, store, reg)), WithGatherer(reg))

	req := httptest.NewRequest("POST", "/runs?wait=true", strings.NewReader(flowJSON))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Iterations)

	_, err := store.Load(context.Background(), got.RunID)
	assert.NoError(t, err)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flowant_iterations_total 3")
}

func TestStartRun_Background(t *testing.T) {
	store := memory.NewStore()
	server := NewServer(store, WithOptimizer(newOptimizer(t, store, nil)))
	handler := server.Routes()

	req := httptest.NewRequest("POST", "/runs", strings.NewReader(flowJSON))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	runID := body["run_id"]
	require.NotEmpty(t, runID)

	server.Wait()

	_, err := store.Load(context.Background(), runID)
	assert.NoError(t, err)
}

func TestStartRun_Errors(t *testing.T) {
	store := memory.NewStore()

	w := httptest.NewRecorder()
	NewHandler(store).ServeHTTP(w, httptest.NewRequest("POST", "/runs", strings.NewReader(flowJSON)))
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	handler := NewHandler(store, WithOptimizer(newOptimizer(t, store, nil)))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/runs", strings.NewReader(`{"sections": [`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeEvents_ClosesWhenRunEnds(t *testing.T) {
	server := NewServer(memory.NewStore())
	handler := server.Routes()
	server.Streams.Begin("r1")

	go func() {
		for server.Streams.Count("r1") == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		hooks := server.Streams.Hooks()
		hooks.OnIterationEnd(context.Background(), &domain.IterationEvent{
			EventBase: domain.EventBase{Type: domain.EventIterationEnd, RunID: "r1"},
			Iteration: 1,
		})
		server.Streams.Close("r1")
	}()

	req := httptest.NewRequest("GET", "/runs/r1/events", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "event: iteration_end")
	assert.Contains(t, body, `"iteration":1`)
	assert.Contains(t, body, "event: done")
}

func TestStreamManager_CancelAfterClose(t *testing.T) {
	sm := NewStreamManager()
	sm.Begin("r")
	ch, cancel, ok := sm.Subscribe("r")
	require.True(t, ok)
	sm.Close("r")

	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, cancel)
	assert.False(t, sm.Active("r"))

	_, _, ok = sm.Subscribe("r")
	assert.False(t, ok)
}

func TestSubscribeEvents_UnknownRun(t *testing.T) {
	handler := NewHandler(memory.NewStore())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/runs/ghost/events", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "event:")
}

func TestSubscribeEvents_FinishedRun(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), &domain.Result{RunID: "r1"}))
	handler := NewHandler(store)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/runs/r1/events", nil))
		done <- w
	}()

	select {
	case w := <-done:
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "event: done\ndata: r1\n\n", w.Body.String())
	case <-time.After(2 * time.Second):
		t.Fatal("stream for a finished run did not end")
	}
}

func TestSubscribeEvents_AfterBackgroundRun(t *testing.T) {
	store := memory.NewStore()
	server := NewServer(store, WithOptimizer(newOptimizer(t, store, nil)))
	handler := server.Routes()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/runs", strings.NewReader(flowJSON)))
	require.Equal(t, http.StatusAccepted, w.Code)
	var accepted RunAccepted
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))

	server.Wait()
	assert.False(t, server.Streams.Active(accepted.RunId))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/runs/"+accepted.RunId+"/events", nil))
	assert.Contains(t, w.Body.String(), "event: done")
}

func TestOpenAPIDocument(t *testing.T) {
	handler := NewHandler(memory.NewStore())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/runs/{id}/events")

	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NotNil(t, swagger.Paths.Value("/runs/{id}"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	var info Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, swagger.Info.Version, info.ApiVersion)
	assert.Equal(t, "flowant-http", info.App)
}

func TestStartRun_InvalidWaitParam(t *testing.T) {
	store := memory.NewStore()
	handler := NewHandler(store, WithOptimizer(newOptimizer(t, store, nil)))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/runs?wait=maybe", strings.NewReader(flowJSON)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "wait")
}
