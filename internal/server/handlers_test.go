package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"heroes/internal/hero"
	"heroes/internal/jsonutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(DefaultHeroes())
	return NewRouter(store, zap.NewNop(), prometheus.NewRegistry(), RouterOptions{}), store
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeHeroes(t *testing.T, w *httptest.ResponseRecorder) []hero.Hero {
	t.Helper()
	var heroes []hero.Hero
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &heroes))
	return heroes
}

func TestHeroHandler_List(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, target := range []string{"/api/heroes", "/api/heroes/"} {
		w := serve(h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Len(t, decodeHeroes(t, w), 10)
	}
}

func TestHeroHandler_Search(t *testing.T) {
	h, _ := newTestRouter(t)

	w := serve(h, http.MethodGet, "/api/heroes?name=mag", "")
	require.Equal(t, http.StatusOK, w.Code)
	heroes := decodeHeroes(t, w)
	require.Len(t, heroes, 2)
	assert.Equal(t, "Magneta", heroes[0].Name)
	assert.Equal(t, "Magma", heroes[1].Name)

	w = serve(h, http.MethodGet, "/api/heroes?name=nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String(), "no matches is an empty array, not null")
}

func TestHeroHandler_Get(t *testing.T) {
	h, _ := newTestRouter(t)

	w := serve(h, http.MethodGet, "/api/heroes/12", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got hero.Hero
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, hero.Hero{ID: 12, Name: "Narco"}, got)

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/api/heroes/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/heroes/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodGet, "/api/heroes/-1", "").Code)
}

func TestHeroHandler_Create(t *testing.T) {
	h, store := newTestRouter(t)

	w := serve(h, http.MethodPost, "/api/heroes", `{"name":"  Robin  "}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var got hero.Hero
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, hero.Hero{ID: 21, Name: "Robin"}, got)

	stored, err := store.Get(t.Context(), 21)
	require.NoError(t, err)
	assert.Equal(t, "Robin", stored.Name)
}

func TestHeroHandler_CreateRejectsBadInput(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"blank name", `{"name":"   "}`, "name is required"},
		{"client id", `{"id":5,"name":"Robin"}`, "id is assigned by the server"},
		{"too long", `{"name":"` + strings.Repeat("x", 65) + `"}`, "name must be at most 64"},
		{"bad json", `{"name":`, "invalid request body"},
		{"unknown field", `{"name":"Robin","power":9}`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(h, http.MethodPost, "/api/heroes", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			var eb jsonutil.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eb))
			assert.Contains(t, eb.Error, tt.want)
		})
	}
}

func TestHeroHandler_Update(t *testing.T) {
	h, store := newTestRouter(t)

	w := serve(h, http.MethodPut, "/api/heroes", `{"id":14,"name":"Speedy"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	got, err := store.Get(t.Context(), 14)
	require.NoError(t, err)
	assert.Equal(t, "Speedy", got.Name)

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodPut, "/api/heroes", `{"id":99,"name":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPut, "/api/heroes", `{"name":"x"}`).Code)
}

func TestHeroHandler_Delete(t *testing.T) {
	h, store := newTestRouter(t)

	require.Equal(t, http.StatusNoContent, serve(h, http.MethodDelete, "/api/heroes/13", "").Code)
	_, err := store.Get(t.Context(), 13)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodDelete, "/api/heroes/13", "").Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/health", "").Code)

	serve(h, http.MethodGet, "/api/heroes", "")
	w := serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `heroapi_requests_total{method="GET",route="/api/heroes`)
	assert.Contains(t, w.Body.String(), `status="200"} 1`)
	assert.Contains(t, w.Body.String(), "heroapi_heroes 10")
}

func TestRouter_Latency(t *testing.T) {
	store := NewMemoryStore(DefaultHeroes())
	h := NewRouter(store, zap.NewNop(), prometheus.NewRegistry(), RouterOptions{Latency: 50 * time.Millisecond})

	start := time.Now()
	w := serve(h, http.MethodGet, "/api/heroes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	// Health is not delayed.
	start = time.Now()
	serve(h, http.MethodGet, "/health", "")
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestRouter_TracesRequests(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	h := NewRouter(NewMemoryStore(DefaultHeroes()), zap.NewNop(), prometheus.NewRegistry(),
		RouterOptions{TracerProvider: tp})

	req := httptest.NewRequest(http.MethodGet, "/api/heroes/12", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/api/heroes/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	spans := rec.Ended()
	require.Len(t, spans, 2)

	span := spans[0]
	assert.Equal(t, "GET /api/heroes/{heroID}", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", span.SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", span.Parent().SpanID().String())
	assert.True(t, span.Parent().IsRemote())
	assert.Equal(t, codes.Unset, span.Status().Code)

	missing := spans[1]
	assert.False(t, missing.Parent().IsValid(), "no traceparent starts a new trace")
	assert.Equal(t, codes.Error, missing.Status().Code)
}
