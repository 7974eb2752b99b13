package gas

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"monitoring_tunggakan/internal/domain/entities"
	"monitoring_tunggakan/internal/pkg/logger"
	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/pkg/errors"
)

var ErrBaseURLMissing = errors.New("gas base url is empty")

// Client talks to the spreadsheet backend (or to a relay exposing the same
// query protocol). Every call is a single attempt; there are no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ interfaces.IBillingGateway = (*Client)(nil)

// NewClient builds a client for baseURL. A zero timeout leaves requests bounded
// only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if timeout < 0 {
		timeout = 0
	}

	return &Client{
		baseURL: strings.TrimSpace(baseURL),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Forward relays one request verbatim: rawQuery is appended to the base URL as
// is and body, when non-nil, is posted as JSON. The response body is returned
// unchanged together with its status code.
func (c *Client) Forward(ctx context.Context, method, rawQuery string, body []byte) (int, []byte, error) {
	if c.baseURL == "" {
		return 0, nil, ErrBaseURLMissing
	}

	target := c.baseURL
	if rawQuery != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + rawQuery
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "build gas request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "gas request")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "read gas response")
	}
	return resp.StatusCode, payload, nil
}

// Call performs one typed backend operation.
func (c *Client) Call(ctx context.Context, r entities.GatewayRequest) (json.RawMessage, error) {
	log := logger.FromContext(ctx)

	query := url.Values{}
	query.Set("path", string(r.Operation))
	for k, v := range r.Params {
		query.Set(k, v)
	}

	method := http.MethodGet
	var body []byte
	if r.IsPost() {
		method = http.MethodPost
		encoded, err := json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s body", r.Operation)
		}
		body = encoded
	}

	status, payload, err := c.Forward(ctx, method, query.Encode(), body)
	if err != nil {
		log.Warn().Err(err).Str("operation", string(r.Operation)).Msg("[gas][client] transport failure")
		return nil, errors.Wrapf(entities.ErrGatewayTransport, "%s: %v", r.Operation, err)
	}

	return decodeResponse(r.Operation, status, payload)
}

func decodeResponse(op entities.Operation, status int, payload []byte) (json.RawMessage, error) {
	if !json.Valid(payload) {
		return nil, errors.Wrapf(entities.ErrGatewayTransport, "%s: non-JSON response (status=%d)", op, status)
	}

	if msg, ok := backendErrorMessage(payload); ok {
		return nil, &entities.BackendError{Operation: op, Message: msg}
	}

	if status < 200 || status > 299 {
		return nil, errors.Wrapf(entities.ErrGatewayTransport, "%s: status=%d", op, status)
	}

	return json.RawMessage(payload), nil
}

// backendErrorMessage extracts a non-empty string "error" field from an object payload.
func backendErrorMessage(payload []byte) (string, bool) {
	var envelope struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", false
	}
	msg, ok := envelope.Error.(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}
