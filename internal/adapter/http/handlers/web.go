package handlers

import (
	"errors"
	"net/http"

	"monitoring_tunggakan/internal/adapter/http/dto/response"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// Template names.
const (
	tmplLogin     = "login"
	tmplDashboard = "dashboard"
	tmplSisa      = "sisa"
	tmplPelanggan = "pelanggan"
	tmplError     = "error"
)

func newPage(c *gin.Context, title string) response.Page {
	return response.Page{
		Title:     title,
		CSRFToken: csrf.Token(c.Request),
		LoggedIn:  middleware.SessionFrom(c).Present(),
	}
}

type errorView struct {
	response.Page
	Message string
}

// renderFailure handles precondition errors returned by the engines.
func renderFailure(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrSessionAbsent) {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}
	appErr := mapViewError(err)
	c.HTML(appErr.HTTPStatus, tmplError, errorView{Page: newPage(c, "Error"), Message: appErr.Message})
}

func mapViewError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrIDPelMissing):
		return pkg.NewDomainErrorSimple("IDPEL_REQUIRED", "IDPEL is required", http.StatusNotFound)
	case errors.Is(err, usecase.ErrSaveInProgress), errors.Is(err, usecase.ErrFetchInFlight):
		return pkg.NewDomainErrorSimple("IN_PROGRESS", "Request already in progress", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
