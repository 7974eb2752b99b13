package entities

import "errors"

// Operation is the backend "path" value selecting what the backend does.
type Operation string

const (
	OpLogin           Operation = "login"
	OpDashboard       Operation = "dashboard"
	OpSisaList        Operation = "sisalist"
	OpDetail          Operation = "detail"
	OpCatatanList     Operation = "catatanlist"
	OpUpdatePelanggan Operation = "updatepelanggan"
)

// GatewayRequest describes one backend call.
//
// A nil Body is sent as GET with every param in the query string; otherwise it
// is sent as POST with the params in the query string and Body as JSON.
type GatewayRequest struct {
	Operation Operation
	Params    map[string]string
	Body      any
}

func (r GatewayRequest) IsPost() bool {
	return r.Body != nil
}

// ErrGatewayTransport marks network failures and unreadable (non-JSON) responses.
var ErrGatewayTransport = errors.New("gateway transport failure")

// BackendError is a failure reported by the backend through its "error" field.
type BackendError struct {
	Operation Operation
	Message   string
}

func (e *BackendError) Error() string {
	return string(e.Operation) + ": " + e.Message
}

// ErrorMessage resolves the text shown to the operator: the backend message
// verbatim, or fallback for transport failures.
func ErrorMessage(err error, fallback string) string {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
