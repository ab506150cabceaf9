package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rag-gateway/internal/failures"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/models"
	"rag-gateway/internal/requestid"

	"go.uber.org/zap"
)

// Backend operations, also used as metric labels
const (
	OpAsk         = "ask"
	OpIngest      = "ingest"
	OpIngestBatch = "ingest_batch"
)

// maxErrorBody bounds how much of a failed response is copied into the error
const maxErrorBody = 64 << 10

// RagClientInterface defines the calls forwarded to the RAG backend. Every
// error returned is a *failures.Failure of kind Transport.
type RagClientInterface interface {
	Ask(ctx context.Context, req models.QuestionRequest) (*models.RagResponse, error)
	Ingest(ctx context.Context, req models.IngestRequest) (string, error)
	IngestBatch(ctx context.Context, req models.BatchIngestRequest) (*models.BatchIngestResponse, error)
}

// RagClient forwards validated requests to the RAG backend. Each call is a
// single attempt bounded by the configured timeout.
type RagClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *metrics.Collector
}

// ClientOptions tunes a RagClient. Zero values fall back to defaults.
type ClientOptions struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	Logger              *zap.Logger
	Metrics             *metrics.Collector
}

// NewRagClient creates a new RAG backend client with default settings
func NewRagClient(baseURL string) *RagClient {
	return NewRagClientWithOptions(baseURL, ClientOptions{})
}

// NewRagClientWithOptions creates a client with custom settings
func NewRagClientWithOptions(baseURL string, opts ClientOptions) *RagClient {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 100
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 10
	}
	if opts.IdleConnTimeout == 0 {
		opts.IdleConnTimeout = 90 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &RagClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        opts.MaxIdleConns,
				MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
				IdleConnTimeout:     opts.IdleConnTimeout,
			},
		},
		timeout: opts.Timeout,
		logger:  opts.Logger.With(zap.String("component", "rag_client")),
		metrics: opts.Metrics,
	}
}

// BaseURL returns the backend base URL
func (c *RagClient) BaseURL() string {
	return c.baseURL
}

// Ask forwards a question. Local camel-case fields are sent under the
// backend's snake-case parameter names.
func (c *RagClient) Ask(ctx context.Context, req models.QuestionRequest) (*models.RagResponse, error) {
	query := url.Values{}
	query.Set("question", req.Question)
	query.Set("method", req.Method)
	query.Set("k", strconv.Itoa(req.K))
	query.Set("filter_by_entity", strconv.FormatBool(req.FilterByEntity))
	query.Set("do_rerank", strconv.FormatBool(req.DoRerank))

	var result models.RagResponse
	err := c.call(ctx, OpAsk, http.MethodGet, "/ask", query, nil, func(resp *http.Response) error {
		return parseResponse(resp, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Ingest forwards a single document and returns the backend's body verbatim
func (c *RagClient) Ingest(ctx context.Context, req models.IngestRequest) (string, error) {
	var result string
	err := c.call(ctx, OpIngest, http.MethodPost, "/ingest", nil, req, func(resp *http.Response) error {
		text, err := readText(resp)
		result = text
		return err
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// IngestBatch forwards a batch of documents and returns the assigned IDs
func (c *RagClient) IngestBatch(ctx context.Context, req models.BatchIngestRequest) (*models.BatchIngestResponse, error) {
	var result models.BatchIngestResponse
	err := c.call(ctx, OpIngestBatch, http.MethodPost, "/ingest_batch", nil, req, func(resp *http.Response) error {
		return parseResponse(resp, &result)
	})
	if err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// call performs exactly one request for op and hands the response to handle,
// which must consume and close the body. Failures are wrapped as transport
// failures.
func (c *RagClient) call(ctx context.Context, op, method, endpoint string, query url.Values, body interface{}, handle func(*http.Response) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.makeRequest(ctx, method, endpoint, query, body)
	if err == nil {
		err = handle(resp)
	}
	elapsed := time.Since(start)
	c.metrics.RecordBackendCall(op, err, elapsed)

	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("operation", op),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return failures.Transport(fmt.Errorf("%s request failed: %w", op, err))
	}

	c.logger.Debug("Backend request completed",
		zap.String("operation", op),
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.Duration("duration", elapsed),
	)
	return nil
}

// makeRequest creates and executes an HTTP request
func (c *RagClient) makeRequest(ctx context.Context, method, endpoint string, query url.Values, body interface{}) (*http.Response, error) {
	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	c.logger.Debug("Sending request to backend", zap.String("method", method), zap.String("url", target))
	return c.httpClient.Do(req)
}

// checkStatus turns a non-2xx response into an error carrying the body
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
}

// parseResponse reads and parses JSON response. Untyped numbers are kept as
// json.Number so they are re-encoded exactly as the backend sent them.
func parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// readText returns the response body as text
func readText(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(bodyBytes), nil
}
