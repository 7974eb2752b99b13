package handlers

import (
	"net/http"

	"monitoring_tunggakan/internal/adapter/http/dto/response"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	gateway interfaces.IBillingGateway
}

func NewDashboardHandler(gateway interfaces.IBillingGateway) *DashboardHandler {
	return &DashboardHandler{gateway: gateway}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	h.render(c, false)
}

// Refresh asks the backend to recompute the snapshot before rendering.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	h.render(c, true)
}

func (h *DashboardHandler) render(c *gin.Context, force bool) {
	agg := usecase.NewDashboardAggregator(h.gateway, middleware.SessionFrom(c))
	st, err := agg.Load(c.Request.Context(), force)
	if err != nil {
		renderFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, tmplDashboard, response.FromDashboardState(newPage(c, "Dashboard"), st))
}
