package handlers

import (
	"net/http"

	"monitoring_tunggakan/internal/adapter/http/dto/request"
	"monitoring_tunggakan/internal/adapter/http/dto/response"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	DashboardPath = "/dashboard"

	msgCredentialsRequired = "RBM dan password wajib diisi"
)

type AuthHandler struct {
	sessions usecase.ISessionUseCase
	cookies  *middleware.SessionCookies
}

func NewAuthHandler(sessions usecase.ISessionUseCase, cookies *middleware.SessionCookies) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, tmplLogin, response.LoginView{Page: newPage(c, "Login")})
}

// Login exchanges the form credentials for a backend token. The token is kept
// server-side under a fresh session id; the browser only gets the signed id.
func (h *AuthHandler) Login(c *gin.Context) {
	var form request.LoginRequest
	_ = c.ShouldBind(&form)
	form = form.Normalize()

	view := response.LoginView{Page: newPage(c, "Login"), UserID: form.UserID}
	if errs := request.Validate(form); errs != nil {
		view.Error = msgCredentialsRequired
		c.HTML(http.StatusOK, tmplLogin, view)
		return
	}

	sid := middleware.NewSessionID()
	outcome, err := h.sessions.Login(c.Request.Context(), sid, form.UserID, form.Password)
	if err != nil {
		renderFailure(c, err)
		return
	}
	if outcome.Error != "" {
		view.Error = outcome.Error
		c.HTML(http.StatusOK, tmplLogin, view)
		return
	}

	if err := h.cookies.Issue(c, sid); err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("[session][handler] issue cookie failed")
		_ = h.sessions.Logout(c.Request.Context(), sid)
		renderFailure(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), middleware.SessionIDFrom(c)); err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("[session][handler] clear session failed")
	}
	h.cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
