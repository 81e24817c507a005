// Package callable is the HTTP client for the callable backend.
package callable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"novel/internal/apperr"
	"novel/internal/catalog"
	"novel/internal/game"
)

// Client posts {"data": ...} to <BaseURL>/<name> and decodes the
// {"result": ...} or {"error": ...} envelope.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Timeout bounds each call. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// NewClient returns a client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient, Timeout: timeout}
}

type request struct {
	Data any `json:"data"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Call invokes the named callable. Backend errors come back as *apperr.Error
// of the matching kind; transport failures are unavailable.
func (c *Client) Call(ctx context.Context, name string, data any, out any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(request{Data: data})
	if err != nil {
		return apperr.Internal("encode "+name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+name, bytes.NewReader(body))
	if err != nil {
		return apperr.Internal("build "+name+" request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return apperr.Unavailable(name+" unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Unavailable("read "+name+" response", err)
	}
	var env response
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return apperr.Unavailable(fmt.Sprintf("%s returned %d", name, resp.StatusCode), nil)
		}
		return apperr.Internal("decode "+name+" response", err)
	}
	if env.Error != nil {
		return apperr.New(apperr.KindFromStatus(env.Error.Status), env.Error.Message, nil)
	}
	if resp.StatusCode != http.StatusOK {
		return apperr.Internal(fmt.Sprintf("%s returned %d", name, resp.StatusCode), nil)
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return apperr.Internal("decode "+name+" result", err)
	}
	return nil
}

// GetScenario fetches the tenant's command list.
func (c *Client) GetScenario(ctx context.Context, tenantID, scenario string) ([]game.Command, error) {
	var res struct {
		Scenario []game.Command `json:"scenario"`
	}
	err := c.Call(ctx, catalog.FuncGetScenario, map[string]string{"tenantId": tenantID, "scenarioName": scenario}, &res)
	return res.Scenario, err
}

// GetCharacters fetches the tenant's character expression records.
func (c *Client) GetCharacters(ctx context.Context, tenantID string) ([]game.CharacterRecord, error) {
	var res struct {
		Characters []game.CharacterRecord `json:"characters"`
	}
	err := c.Call(ctx, catalog.FuncGetCharacters, map[string]string{"tenantId": tenantID}, &res)
	return res.Characters, err
}

// Healthy reports whether the backend answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return apperr.Unavailable("backend unreachable", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apperr.Unavailable(fmt.Sprintf("backend health returned %d", resp.StatusCode), nil)
	}
	return nil
}

var _ catalog.Source = (*Client)(nil)

