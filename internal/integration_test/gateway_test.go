// Package integration_test drives the whole gateway, from configuration
// loading through the middleware chain to a stand-in RAG backend.
package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	_ "rag-gateway/docs"
	"rag-gateway/internal/config"
	"rag-gateway/internal/failures"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/models"
	"rag-gateway/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeBackend stands in for the RAG backend and records what it received
type fakeBackend struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	fail     bool
	askBody  string // returned verbatim from /ask when set
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, r)
	b.bodies = append(b.bodies, string(body))
	fail := b.fail
	askBody := b.askBody
	b.mu.Unlock()

	if fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "backend warming up")
		return
	}

	switch r.URL.Path {
	case "/ask":
		if askBody != "" {
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, askBody)
			return
		}
		q := r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"question": q.Get("question"),
			"answer":   "Retrieval-augmented generation grounds answers in retrieved documents.",
			"docs": []map[string]interface{}{
				{"text": "RAG combines retrieval with generation", "score": 0.91},
			},
			"hallucination": map[string]interface{}{
				"hallucination_detected": false,
				"hallucination_severity": 0.05,
			},
		})
	case "/ingest":
		io.WriteString(w, `{"id": "doc-001"}`)
	case "/ingest_batch":
		io.WriteString(w, `{"ids": ["doc-001", "doc-002"]}`)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *fakeBackend) last() (*http.Request, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.requests)
	return b.requests[n-1], b.bodies[n-1]
}

func startGateway(t *testing.T) (string, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{}
	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	t.Setenv(config.EnvPythonServiceURL, upstream.URL)
	t.Setenv(config.EnvBackendTimeout, "5s")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, upstream.URL, cfg.Backend.URL)

	collector := metrics.NewCollector(cfg.Metrics, prometheus.NewRegistry())
	srv := server.New(cfg, zaptest.NewLogger(t), collector)

	gateway := httptest.NewServer(srv.Handler())
	t.Cleanup(gateway.Close)
	return gateway.URL, backend
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestGateway_AskWithDefaults(t *testing.T) {
	gateway, backend := startGateway(t)

	resp, body := do(t, http.MethodGet, gateway+"/ask?question=What+is+RAG%3F", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rag models.RagResponse
	require.NoError(t, json.Unmarshal([]byte(body), &rag))
	assert.Equal(t, "What is RAG?", rag.Question)
	assert.NotEmpty(t, rag.Answer)
	require.NotNil(t, rag.Hallucination)
	assert.Equal(t, 0.05, rag.Hallucination.Severity)

	req, _ := backend.last()
	q := req.URL.Query()
	assert.Equal(t, "What is RAG?", q.Get("question"))
	assert.Equal(t, "hybrid", q.Get("method"))
	assert.Equal(t, "5", q.Get("k"))
	assert.Equal(t, "false", q.Get("filter_by_entity"))
	assert.Equal(t, "false", q.Get("do_rerank"))
	assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestGateway_AskScenarioBodyUnchanged(t *testing.T) {
	const answer = `{
		"question": "What is RAG?",
		"answer": "RAG stands for Retrieval-Augmented Generation.",
		"docs": [],
		"hallucination": {"hallucination_detected": false, "hallucination_severity": 0.0}
	}`

	gateway, backend := startGateway(t)
	backend.mu.Lock()
	backend.askBody = answer
	backend.mu.Unlock()

	resp, body := do(t, http.MethodGet, gateway+"/ask?question=What%20is%20RAG%3F", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, answer, body)

	req, _ := backend.last()
	assert.Equal(t, "What is RAG?", req.URL.Query().Get("question"))
}

func TestGateway_AskLargeDocumentIDs(t *testing.T) {
	gateway, backend := startGateway(t)
	backend.mu.Lock()
	backend.askBody = `{"question":"Q","answer":"A","docs":[{"id":9007199254740993,"text":"t"}],"hallucination":{"hallucination_detected":false,"hallucination_severity":0.0}}`
	backend.mu.Unlock()

	resp, body := do(t, http.MethodGet, gateway+"/ask?question=Q", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"id":9007199254740993`)
}

func TestGateway_AskValidation(t *testing.T) {
	gateway, backend := startGateway(t)

	resp, body := do(t, http.MethodGet, gateway+"/ask?question=+++", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{
		"error": "Question is required",
		"message": "Question parameter is required and cannot be empty",
		"status": 400
	}`, body)

	resp, body = do(t, http.MethodGet, gateway+"/ask", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var env failures.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, "An error occurred", env.Error)
	assert.Equal(t, "Required request parameter 'question' for method parameter type String is not present", env.Message)

	assert.Zero(t, backend.calls())
}

func TestGateway_Ingest(t *testing.T) {
	gateway, backend := startGateway(t)

	resp, body := do(t, http.MethodPost, gateway+"/ingest", `{"text": "Mario jumps on Goombas"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"id": "doc-001"}`, body)

	_, forwarded := backend.last()
	assert.JSONEq(t, `{"text": "Mario jumps on Goombas", "entities": {}}`, forwarded)

	resp, body = do(t, http.MethodPost, gateway+"/ingest", `{"text": ""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Text parameter is required", body)
	assert.Equal(t, 1, backend.calls())
}

func TestGateway_IngestBatch(t *testing.T) {
	gateway, backend := startGateway(t)

	resp, body := do(t, http.MethodPost, gateway+"/ingest_batch",
		`{"documents": [{"text": "Document 1 text"}, {"text": "Document 2 text"}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ids": ["doc-001", "doc-002"]}`, body)

	resp, body = do(t, http.MethodPost, gateway+"/ingest_batch",
		`{"documents": [{"text": "Document 1 text"}, {"text": " "}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"ids": []}`, body)

	resp, body = do(t, http.MethodPost, gateway+"/ingest_batch", `{"documents": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"ids": []}`, body)

	assert.Equal(t, 1, backend.calls())
}

func TestGateway_BackendFailure(t *testing.T) {
	gateway, backend := startGateway(t)
	backend.mu.Lock()
	backend.fail = true
	backend.mu.Unlock()

	resp, body := do(t, http.MethodGet, gateway+"/ask?question=Q", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var env failures.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, "An error occurred", env.Error)
	assert.Contains(t, env.Message, "HTTP 503")
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, 1, backend.calls())
}

func TestGateway_OperationalEndpoints(t *testing.T) {
	gateway, _ := startGateway(t)

	resp, body := do(t, http.MethodGet, gateway+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "index.html", body)

	resp, body = do(t, http.MethodGet, gateway+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message": "Server is healthy", "status": "success"}`, body)

	resp, body = do(t, http.MethodGet, gateway+"/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"/ingest_batch"`)

	resp, body = do(t, http.MethodGet, gateway+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "rag_gateway_requests_total")
}
