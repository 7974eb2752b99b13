package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/adapter/http/templates"
	"monitoring_tunggakan/internal/adapter/persistence/repository"
	"monitoring_tunggakan/internal/usecase"
	mock_interfaces "monitoring_tunggakan/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type webFixture struct {
	router  *gin.Engine
	gateway *mock_interfaces.MockIBillingGateway
	store   *repository.SessionMemoryRepository
	cookies *middleware.SessionCookies
}

func newWebFixture(t *testing.T, ctrl *gomock.Controller) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := templates.Load()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	f := &webFixture{
		gateway: mock_interfaces.NewMockIBillingGateway(ctrl),
		store:   repository.NewSessionMemoryRepository(time.Hour),
		cookies: middleware.NewSessionCookies("tunggakan_session", "test-secret", time.Hour, false),
	}
	sessions := usecase.NewSessionUseCase(f.gateway, f.store)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	web := r.Group("", middleware.SessionContext(f.cookies, sessions))
	auth := NewAuthHandler(sessions, f.cookies)
	web.GET(middleware.LoginPath, auth.LoginPage)
	web.POST(middleware.LoginPath, auth.Login)
	web.POST("/logout", auth.Logout)

	protected := web.Group("", middleware.RequireSession())
	dashboard := NewDashboardHandler(f.gateway)
	protected.GET(DashboardPath, dashboard.Show)
	protected.POST(DashboardPath+"/refresh", dashboard.Refresh)
	protected.GET(ListingPath, NewListingHandler(f.gateway).Show)
	pelanggan := NewPelangganHandler(f.gateway)
	protected.GET("/pelanggan/:idpel", pelanggan.Show)
	protected.POST("/pelanggan/:idpel", pelanggan.Save)

	f.router = r
	return f
}

// login stores token under a new session id and returns the matching cookie.
func (f *webFixture) login(t *testing.T, token string) *http.Cookie {
	t.Helper()
	sid := middleware.NewSessionID()
	if err := f.store.Set(context.Background(), sid, token); err != nil {
		t.Fatalf("store: %v", err)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if err := f.cookies.Issue(c, sid); err != nil {
		t.Fatalf("issue: %v", err)
	}
	return w.Result().Cookies()[0]
}

func (f *webFixture) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
