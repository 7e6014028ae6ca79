package llamastack

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"intelligent-cd/internal/application/port/output"
)

var (
	_ output.AgentRuntimePort = (*Client)(nil)
	_ output.InspectPort      = (*Client)(nil)
	_ output.VectorStorePort  = (*Client)(nil)
	_ output.RAGToolPort      = (*Client)(nil)
)

const (
	openaiPathPrefix = "/v1/openai/v1"
	maxResponseBytes = 10 << 20
)

// Client talks to a llama-stack runtime. Agent, RAG and registry operations
// use the native REST API; chat completions, file uploads and the standard
// vector-store reads go through the runtime's OpenAI-compatible surface via
// go-openai. Both share one HTTP client.
type Client struct {
	baseURL        string
	model          string
	vectorProvider string
	http           *http.Client
	oai            *openai.Client
	logger         output.LoggerPort
}

type Config struct {
	BaseURL        string
	Model          string
	APIKey         string
	VectorProvider string
	Timeout        time.Duration
	SkipTLSVerify  bool
	Logger         output.LoggerPort
}

func DefaultConfig(baseURL, model string) Config {
	return Config{
		BaseURL:        baseURL,
		Model:          model,
		APIKey:         "none",
		VectorProvider: "milvus",
		Timeout:        30 * time.Second,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	if err != nil {
		t.logger.Debug("HTTP request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return resp, err
	}

	t.logger.Debug("HTTP request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"durationMs", time.Since(start).Milliseconds(),
	)
	return resp, err
}

func NewClient(cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	if cfg.Logger != nil {
		transport = &loggingTransport{base: transport, logger: cfg.Logger}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout, Transport: transport}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "none"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	oaiCfg := openai.DefaultConfig(apiKey)
	oaiCfg.BaseURL = baseURL + openaiPathPrefix
	oaiCfg.HTTPClient = httpClient

	vectorProvider := cfg.VectorProvider
	if vectorProvider == "" {
		vectorProvider = "milvus"
	}

	return &Client{
		baseURL:        baseURL,
		model:          cfg.Model,
		vectorProvider: vectorProvider,
		http:           httpClient,
		oai:            openai.NewClientWithConfig(oaiCfg),
		logger:         cfg.Logger,
	}
}

// APIError is a non-2xx answer from the native API.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llama-stack %s returned %d: %s", e.Path, e.Status, e.Body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Path: path, Body: truncate(string(data), 512)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
