package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"monitoring_tunggakan/internal/adapter/persistence/repository"
	"monitoring_tunggakan/internal/usecase"

	"github.com/gin-gonic/gin"
)

func newSessionRouter(cookies *SessionCookies, sessions usecase.ISessionUseCase) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), SessionContext(cookies, sessions))
	r.GET("/issue/:sid", func(c *gin.Context) {
		_ = cookies.Issue(c, c.Param("sid"))
		c.Status(http.StatusNoContent)
	})
	r.GET("/protected", RequireSession(), func(c *gin.Context) {
		tok, _ := SessionFrom(c).Token()
		c.String(http.StatusOK, SessionIDFrom(c)+":"+tok)
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := repository.NewSessionMemoryRepository(time.Hour)
	sessions := usecase.NewSessionUseCase(nil, store)
	cookies := NewSessionCookies("tunggakan_session", "secret", time.Hour, false)
	r := newSessionRouter(cookies, sessions)

	t.Run("no cookie redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != LoginPath {
			t.Fatalf("expected redirect to login, got %d %s", w.Code, w.Header().Get("Location"))
		}
		if w.Header().Get(HeaderRequestID) == "" {
			t.Fatalf("expected request id header")
		}
	})

	t.Run("valid cookie with stored token passes", func(t *testing.T) {
		_ = store.Set(context.Background(), "sid-1", "abc")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/issue/sid-1", nil))
		cookie := w.Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(cookie)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "sid-1:abc" {
			t.Fatalf("expected session to resolve, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("valid cookie without stored token redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/issue/sid-unknown", nil))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(w.Result().Cookies()[0])
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect, got %d", w.Code)
		}
	})

	t.Run("cookie signed with another secret is rejected", func(t *testing.T) {
		other := newSessionRouter(NewSessionCookies("tunggakan_session", "other", time.Hour, false), sessions)
		w := httptest.NewRecorder()
		other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/issue/sid-1", nil))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(w.Result().Cookies()[0])
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect for forged cookie, got %d", w.Code)
		}
	})
}

func TestSessionCookies_SessionID(t *testing.T) {
	cookies := NewSessionCookies("c", "secret", time.Hour, false)
	if _, err := cookies.SessionID("not-a-jwt"); err != ErrInvalidSessionCookie {
		t.Fatalf("expected ErrInvalidSessionCookie, got %v", err)
	}
}
