package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"
	"monitoring_tunggakan/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRelayBody   = pkg.NewDomainErrorSimple("INVALID_JSON", "Request body must be valid JSON", http.StatusBadRequest)
	errBackendUnreachable = pkg.NewDomainErrorSimple("BACKEND_UNREACHABLE", "Backend unreachable", http.StatusBadGateway)
	errBackendResponse    = pkg.NewDomainErrorSimple("BACKEND_INVALID_RESPONSE", "Backend returned a non-JSON response", http.StatusBadGateway)
)

// RelayHandler exposes the backend to browser and terminal clients on the
// same origin. Query parameters and JSON bodies pass through untouched.

type RelayHandler struct {
	relay interfaces.IGatewayRelay
}

func NewRelayHandler(relay interfaces.IGatewayRelay) *RelayHandler {
	return &RelayHandler{relay: relay}
}

// Get relays a read operation.
// @Summary Relay a read operation to the billing backend
// @Tags Relay
// @Produce json
// @Param path query string true "Backend operation (dashboard, sisalist, detail, catatanlist)"
// @Param token query string false "Session credential"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /api/gas [get]
func (h *RelayHandler) Get(c *gin.Context) {
	h.forward(c, http.MethodGet, nil)
}

// Post relays a write operation.
// @Summary Relay a write operation to the billing backend
// @Tags Relay
// @Accept json
// @Produce json
// @Param path query string true "Backend operation (login, updatepelanggan)"
// @Param token query string false "Session credential"
// @Param body body map[string]interface{} true "Operation payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400,502 {object} map[string]string
// @Router /api/gas [post]
func (h *RelayHandler) Post(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(raw) {
		c.JSON(errInvalidRelayBody.HTTPStatus, errInvalidRelayBody.ToHTTPError())
		return
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		c.JSON(errInvalidRelayBody.HTTPStatus, errInvalidRelayBody.ToHTTPError())
		return
	}
	h.forward(c, http.MethodPost, compact.Bytes())
}

func (h *RelayHandler) forward(c *gin.Context, method string, body []byte) {
	ctx := c.Request.Context()
	status, payload, err := h.relay.Forward(ctx, method, c.Request.URL.RawQuery, body)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("method", method).Msg("[relay][handler] backend unreachable")
		c.JSON(errBackendUnreachable.HTTPStatus, errBackendUnreachable.ToHTTPError())
		return
	}
	if !json.Valid(payload) {
		logger.FromContext(ctx).Warn().Int("backend_status", status).Msg("[relay][handler] non-JSON backend response")
		c.JSON(errBackendResponse.HTTPStatus, errBackendResponse.ToHTTPError())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
