package interfaces

import (
	"context"
	"encoding/json"
	"monitoring_tunggakan/internal/domain/entities"
)

// IBillingGateway abstracts the spreadsheet-backed billing backend.
//
// Call returns the raw JSON payload on success. Failures come back either as
// *entities.BackendError (the payload carried an "error" field) or as an error
// wrapping entities.ErrGatewayTransport.
type IBillingGateway interface {
	Call(ctx context.Context, req entities.GatewayRequest) (json.RawMessage, error)
}

// IGatewayRelay forwards raw requests to the backend without interpreting them.
type IGatewayRelay interface {
	Forward(ctx context.Context, method, rawQuery string, body []byte) (int, []byte, error)
}
