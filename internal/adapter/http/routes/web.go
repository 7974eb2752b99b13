package routes

import (
	"net/http"

	"monitoring_tunggakan/internal/adapter/http/handlers"
	"monitoring_tunggakan/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathRelay = "/gas"
)

func addPingRoutes(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addRelayRoutes(rg *gin.RouterGroup, relay *handlers.RelayHandler) {
	rg.GET(PathRelay, relay.Get)
	rg.POST(PathRelay, relay.Post)
}

func addWebRoutes(
	rg *gin.RouterGroup,
	auth *handlers.AuthHandler,
	dashboard *handlers.DashboardHandler,
	listing *handlers.ListingHandler,
	pelanggan *handlers.PelangganHandler,
) {
	rg.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, handlers.DashboardPath)
	})
	rg.GET(middleware.LoginPath, auth.LoginPage)
	rg.POST(middleware.LoginPath, auth.Login)
	rg.POST("/logout", auth.Logout)

	protected := rg.Group("", middleware.RequireSession())
	{
		protected.GET(handlers.DashboardPath, dashboard.Show)
		protected.POST(handlers.DashboardPath+"/refresh", dashboard.Refresh)
		protected.GET(handlers.ListingPath, listing.Show)
		protected.GET("/pelanggan/:idpel", pelanggan.Show)
		protected.POST("/pelanggan/:idpel", pelanggan.Save)
	}
}
