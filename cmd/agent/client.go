package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ViniAguiar1/llm-agent-runtime/internal/relay"
	"github.com/ViniAguiar1/llm-agent-runtime/pkg/request"
)

// relayClient talks to a running relay over HTTP.
type relayClient struct {
	base   string
	client *http.Client
}

func newRelayClient(base string) *relayClient {
	return &relayClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{},
	}
}

// apiError is a non-200 reply from the relay.
type apiError struct {
	Status  int
	Reason  string                   `json:"error"`
	Message string                   `json:"message"`
	Details *request.ValidationError `json:"details"`
}

func (e *apiError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "relay returned %d", e.Status)
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Details != nil {
		for _, f := range e.Details.FormErrors {
			b.WriteString("\n  " + f)
		}
		for _, f := range e.Details.Fields() {
			fmt.Fprintf(&b, "\n  %s: %s", f, strings.Join(e.Details.FieldErrors[f], "; "))
		}
	}
	return b.String()
}

func (c *relayClient) Run(ctx context.Context, req *request.ChatRequest) (*relay.Result, error) {
	var res relay.Result
	if err := c.do(ctx, http.MethodPost, "/run", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *relayClient) Health(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *relayClient) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("contacting relay at %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}
	if err := json.Unmarshal(data, respBody); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
