package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"monitoring_tunggakan/internal/infrastructure/gas"

	"github.com/gin-gonic/gin"
)

type relayFunc func(ctx context.Context, method, rawQuery string, body []byte) (int, []byte, error)

func (f relayFunc) Forward(ctx context.Context, method, rawQuery string, body []byte) (int, []byte, error) {
	return f(ctx, method, rawQuery, body)
}

func relayRouter(h *RelayHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/gas", h.Get)
	r.POST("/api/gas", h.Post)
	return r
}

func TestRelayHandler(t *testing.T) {
	t.Run("get passes the query through", func(t *testing.T) {
		var gotQuery string
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"total":0,"data":[]}`))
		}))
		defer backend.Close()

		r := relayRouter(NewRelayHandler(gas.NewClient(backend.URL, 0)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gas?path=sisalist&page=2&q=51&token=abc", nil))

		if w.Code != http.StatusOK || w.Body.String() != `{"total":0,"data":[]}` {
			t.Fatalf("unexpected relay response %d %s", w.Code, w.Body.String())
		}
		if gotQuery != "path=sisalist&page=2&q=51&token=abc" {
			t.Fatalf("query not forwarded verbatim: %s", gotQuery)
		}
	})

	t.Run("post forwards the body as json", func(t *testing.T) {
		var gotBody, gotType string
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			gotBody, gotType = string(b), r.Header.Get("Content-Type")
			_, _ = w.Write([]byte(`{"token":"abc"}`))
		}))
		defer backend.Close()

		r := relayRouter(NewRelayHandler(gas.NewClient(backend.URL, 0)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/gas?path=login", strings.NewReader(`{ "userId": "RBM01", "password": "x" }`)))

		if w.Code != http.StatusOK || w.Body.String() != `{"token":"abc"}` {
			t.Fatalf("unexpected relay response %d %s", w.Code, w.Body.String())
		}
		if gotBody != `{"userId":"RBM01","password":"x"}` || !strings.HasPrefix(gotType, "application/json") {
			t.Fatalf("unexpected forwarded body %q (%s)", gotBody, gotType)
		}
	})

	t.Run("backend error payload is relayed with 200", func(t *testing.T) {
		h := NewRelayHandler(relayFunc(func(context.Context, string, string, []byte) (int, []byte, error) {
			return http.StatusInternalServerError, []byte(`{"error":"Token expired"}`), nil
		}))
		w := httptest.NewRecorder()
		relayRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gas?path=dashboard", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Token expired") {
			t.Fatalf("unexpected relay response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid json body", func(t *testing.T) {
		h := NewRelayHandler(relayFunc(func(context.Context, string, string, []byte) (int, []byte, error) {
			t.Fatal("backend must not be called")
			return 0, nil, nil
		}))
		w := httptest.NewRecorder()
		relayRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/gas?path=login", strings.NewReader(`{userId`)))
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "INVALID_JSON") {
			t.Fatalf("expected 400, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("non-json backend response", func(t *testing.T) {
		h := NewRelayHandler(relayFunc(func(context.Context, string, string, []byte) (int, []byte, error) {
			return http.StatusOK, []byte("<html>Script error</html>"), nil
		}))
		w := httptest.NewRecorder()
		relayRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gas?path=dashboard", nil))
		if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "BACKEND_INVALID_RESPONSE") {
			t.Fatalf("expected 502, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		h := NewRelayHandler(relayFunc(func(context.Context, string, string, []byte) (int, []byte, error) {
			return 0, nil, errors.New("dial tcp: connection refused")
		}))
		w := httptest.NewRecorder()
		relayRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/gas?path=dashboard", nil))
		if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), "BACKEND_UNREACHABLE") {
			t.Fatalf("expected 502, got %d %s", w.Code, w.Body.String())
		}
	})
}
