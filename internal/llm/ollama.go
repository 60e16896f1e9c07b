// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultTimeout = 120 * time.Second
)

// Ollama calls a local Ollama server's generate endpoint.
type Ollama struct {
	// BaseURL is the server address. Empty means localhost:11434.
	BaseURL string

	// Model is the model identifier passed with each request.
	Model string

	// Timeout is the per-call deadline. Zero means 120s.
	Timeout time.Duration

	// HTTPClient is used for requests. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// ollamaRequest is the request body for /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions maps onto Ollama's sampling options.
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the non-streaming response body from /api/generate.
type ollamaResponse struct {
	Response string `json:"response"`
}

// Generate sends one non-streaming generation request. The system
// prompt, when set, is prepended to the user prompt. JSONMode maps onto
// Ollama's format=json constrained decoding.
func (o *Ollama) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	full := prompt
	if opts.SystemPrompt != "" {
		full = opts.SystemPrompt + "\n\n" + prompt
	}

	reqBody := ollamaRequest{
		Model:  o.Model,
		Prompt: full,
		Stream: false,
		Options: ollamaOptions{
			Temperature: opts.Temperature,
			NumPredict:  opts.MaxTokens,
		},
	}
	if opts.JSONMode {
		reqBody.Format = "json"
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	timeout := o.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	base := o.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := o.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("generate after %v: %w", timeout, ErrTimeout)
		}
		return "", fmt.Errorf("calling Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama API returned %d: %s", resp.StatusCode, string(body))
	}

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", fmt.Errorf("decoding Ollama response: %w", err)
	}
	return oResp.Response, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
