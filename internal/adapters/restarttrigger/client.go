// Package restarttrigger posts restart requests to the external scan trigger endpoint.
package restarttrigger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/target/iris/internal/core"
	"github.com/target/iris/internal/domain/model"
)

const (
	defaultTimeout       = 10 * time.Second
	maxErrorBodyBytes    = 1024
	defaultSuccessStatus = http.StatusOK
)

// ErrUnexpectedStatus is returned when the endpoint answers with anything but the success status.
var ErrUnexpectedStatus = errors.New("unexpected restart trigger status")

// Config captures the trigger endpoint behaviour.
type Config struct {
	URL           string
	Timeout       time.Duration
	SuccessStatus int
	// BodyExpr is an optional JMESPath expression evaluated against
	// {"id","tenant_id","domain"}; its JSON result becomes the request body.
	BodyExpr string
	Client   *http.Client
}

// Client triggers scan restarts over HTTP.
type Client struct {
	url           string
	successStatus int
	bodyExpr      string
	client        *http.Client
}

var _ core.RestartTrigger = (*Client)(nil)

// NewClient builds a trigger client. The URL is required and BodyExpr must compile.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, errors.New("restart trigger url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	status := cfg.SuccessStatus
	if status == 0 {
		status = defaultSuccessStatus
	}

	expr := strings.TrimSpace(cfg.BodyExpr)
	if expr != "" {
		if _, err := jmespath.Compile(expr); err != nil {
			return nil, fmt.Errorf("compile restart body expression: %w", err)
		}
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{url: url, successStatus: status, bodyExpr: expr, client: hc}, nil
}

// Trigger posts one restart request. Any transport failure or non-success status is an error.
func (c *Client) Trigger(ctx context.Context, target model.RestartTarget) error {
	body, err := c.buildBody(target)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, reader)
	if err != nil {
		return fmt.Errorf("create restart request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("restart request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != c.successStatus {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) buildBody(target model.RestartTarget) ([]byte, error) {
	if c.bodyExpr == "" {
		return nil, nil
	}
	data := map[string]any{
		"id":        target.ID,
		"tenant_id": target.TenantID,
		"domain":    target.Domain,
	}
	result, err := jmespath.Search(c.bodyExpr, data)
	if err != nil {
		return nil, fmt.Errorf("evaluate restart body expression: %w", err)
	}
	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode restart body: %w", err)
	}
	return body, nil
}
