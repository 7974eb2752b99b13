package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"monitoring_tunggakan/internal/adapter/http/dto/response"
	"monitoring_tunggakan/internal/adapter/http/middleware"
	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/usecase"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const ListingPath = "/sisa"

// ListingHandler renders /sisa. The query string carries the listing state:
// page, q (search term) and clear.
type ListingHandler struct {
	gateway interfaces.IBillingGateway
}

func NewListingHandler(gateway interfaces.IBillingGateway) *ListingHandler {
	return &ListingHandler{gateway: gateway}
}

func (h *ListingHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	session := middleware.SessionFrom(c)
	term := strings.TrimSpace(c.Query("q"))
	page, _ := strconv.Atoi(c.Query("page"))

	var (
		st  usecase.ListingState
		err error
	)
	switch {
	case c.Query("clear") != "":
		st, err = usecase.NewListingEngine(h.gateway, session).ClearSearch(ctx)
	case page > 1:
		engine := usecase.NewListingEngineAt(h.gateway, session, entities.ListingQuery{Page: 1, SearchTerm: term})
		st, err = engine.SetPage(ctx, page)
	case term != "":
		st, err = usecase.NewListingEngine(h.gateway, session).Search(ctx, term)
	default:
		st, err = usecase.NewListingEngine(h.gateway, session).Refresh(ctx)
	}
	if err != nil {
		renderFailure(c, err)
		return
	}

	p := newPage(c, "Sisa Pelanggan")
	if c.Query("saved") != "" {
		p.Flash = usecase.MsgSaveSuccess
	}
	c.HTML(http.StatusOK, tmplSisa, response.FromListingState(p, st))
}
