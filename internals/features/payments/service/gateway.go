// file: internals/features/payments/service/gateway.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	"schoolpay_backend/internals/configs"
)

/* =========================================================
   Gateway Client
   Thin caller for the collect-request API. No retries, no circuit
   breaker: every network/4xx/5xx error (timeouts included) surfaces
   to the caller unchanged and aborts the enclosing operation.
========================================================= */

type GatewayClient struct {
	cfg  configs.GatewayConfig
	http *http.Client
}

func NewGatewayClient(cfg configs.GatewayConfig) *GatewayClient {
	return &GatewayClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateCollectResponse is the subset of the create response we key on;
// Raw carries the full body for passthrough storage.
type CreateCollectResponse struct {
	CollectRequestID  string `json:"collect_request_id"`
	CollectRequestURL string `json:"collect_request_url"`

	Raw map[string]interface{} `json:"-"`
}

// CreateCollectRequest asks the gateway for a new collection link.
func (g *GatewayClient) CreateCollectRequest(ctx context.Context, amount, callbackURL, sign string) (*CreateCollectResponse, error) {
	body := map[string]string{
		"school_id":    g.cfg.SchoolID,
		"amount":       amount,
		"callback_url": callbackURL,
		"sign":         sign,
	}
	payload, err := sonic.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.CreateEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	raw, err := g.do(req)
	if err != nil {
		return nil, err
	}

	out := &CreateCollectResponse{Raw: raw}
	if v, ok := raw["collect_request_id"].(string); ok {
		out.CollectRequestID = v
	}
	if v, ok := raw["collect_request_url"].(string); ok {
		out.CollectRequestURL = v
	}
	return out, nil
}

// FetchStatus asks the gateway for the authoritative status of one
// collect request. The body is returned as-is: its shape is
// gateway-controlled and merged field-by-field downstream.
func (g *GatewayClient) FetchStatus(ctx context.Context, collectRequestID, sign string) (map[string]interface{}, error) {
	endpoint := strings.TrimRight(g.cfg.StatusEndpoint, "/") + "/" + url.PathEscape(collectRequestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("school_id", g.cfg.SchoolID)
	q.Set("sign", sign)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	return g.do(req)
}

func (g *GatewayClient) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway response read failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw map[string]interface{}
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("gateway response decode failed: %w", err)
	}
	return raw, nil
}
