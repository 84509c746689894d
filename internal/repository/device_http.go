package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"servo_control/internal/models"
)

const (
	statusPath  = "/status"
	controlPath = "/control"

	// status bodies are tiny; anything larger is not our device
	maxStatusBody = 64 << 10
)

// DeviceHTTP talks to the servo over its local HTTP API.
type DeviceHTTP struct {
	baseURL string
	client  *http.Client
}

// Ensure implementation of DeviceGateway interface at compile time.
var _ DeviceGateway = (*DeviceHTTP)(nil)

// NewDeviceHTTP returns a gateway for baseURL (e.g. "http://192.168.0.183").
// A nil client selects a client without timeout.
func NewDeviceHTTP(baseURL string, client *http.Client) *DeviceHTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &DeviceHTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// NewHTTPClient builds the device client. timeout <= 0 leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return &http.Client{}
	}
	return &http.Client{Timeout: timeout}
}

// FetchStatus reads and decodes the device status.
func (d *DeviceHTTP) FetchStatus(ctx context.Context) (models.DeviceStatus, error) {
	body, err := d.get(ctx, "status", d.baseURL+statusPath)
	if err != nil {
		return models.DeviceStatus{}, err
	}
	st, err := models.DecodeDeviceStatus(body)
	if err != nil {
		return models.DeviceStatus{}, &GatewayError{Op: "status", Err: fmt.Errorf("decode status: %w", err)}
	}
	return st, nil
}

// SendCommand issues the control request for cmd. The response body is ignored.
func (d *DeviceHTTP) SendCommand(ctx context.Context, cmd models.Command) error {
	query := EncodeQuery(cmd)
	if query == "" {
		return &GatewayError{Op: "control", Err: fmt.Errorf("unsupported command %T", cmd)}
	}
	_, err := d.get(ctx, "control", d.baseURL+controlPath+"?"+query)
	return err
}

// get performs a GET and returns the body of a 2xx answer.
func (d *DeviceHTTP) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &GatewayError{Op: op, Err: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &GatewayError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxStatusBody))
		return nil, &GatewayError{Op: op, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStatusBody))
	if err != nil {
		return nil, &GatewayError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
