package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"rag-gateway/internal/failures"
	"rag-gateway/internal/metrics"
	"rag-gateway/internal/models"
	"rag-gateway/internal/requestid"
	"rag-gateway/internal/services"
	"rag-gateway/internal/validation"

	"go.uber.org/zap"
)

// maxBodyBytes bounds an inbound ingest body
const maxBodyBytes = 32 << 20

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidBool = errors.New("invalid boolean value")
)

// RagHandler handles the gateway routes: it validates inbound requests,
// forwards them to the RAG backend and writes the result or the translated
// failure.
type RagHandler struct {
	client  services.RagClientInterface
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewRagHandler creates a new gateway handler
func NewRagHandler(client services.RagClientInterface, logger *zap.Logger, collector *metrics.Collector) *RagHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RagHandler{
		client:  client,
		logger:  logger.With(zap.String("component", "rag_handler")),
		metrics: collector,
	}
}

// Ask handles question requests
// @Summary Ask a question
// @Description Answer a question from the knowledge base using the configured retrieval method
// @Tags rag
// @Produce json
// @Param question query string true "Question to answer"
// @Param depth query int false "Accepted for compatibility, not used"
// @Param method query string false "Retrieval method (bm25, dense, hybrid)" default(hybrid)
// @Param k query int false "Number of documents to retrieve" default(5)
// @Param filterByEntity query bool false "Filter documents by extracted entities" default(false)
// @Param doRerank query bool false "Rerank retrieved documents" default(false)
// @Success 200 {object} models.RagResponse
// @Failure 400 {object} failures.Envelope
// @Failure 500 {object} failures.Envelope
// @Router /ask [get]
func (h *RagHandler) Ask(w http.ResponseWriter, r *http.Request) {
	raw, err := bindQuestion(r)
	if err != nil {
		h.sendFailure(w, r, failures.RouteAsk, err)
		return
	}

	req, err := validation.ValidateQuestion(raw)
	if err != nil {
		h.sendFailure(w, r, failures.RouteAsk, err)
		return
	}

	h.logger.Debug("Forwarding question",
		zap.String("request_id", requestid.FromContext(r.Context())),
		zap.String("method", req.Method),
		zap.Int("k", req.K),
		zap.Bool("filter_by_entity", req.FilterByEntity),
		zap.Bool("do_rerank", req.DoRerank),
	)

	resp, err := h.client.Ask(r.Context(), req)
	if err != nil {
		h.sendFailure(w, r, failures.RouteAsk, err)
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// Ingest handles single document ingestion
// @Summary Ingest a document
// @Description Add one document to the knowledge base. Entities are extracted by the backend when omitted.
// @Tags rag
// @Accept json
// @Produce plain
// @Param request body models.IngestRequest true "Document to ingest"
// @Success 200 {string} string "Backend response"
// @Failure 400 {string} string "Text parameter is required"
// @Failure 500 {object} failures.Envelope
// @Router /ingest [post]
func (h *RagHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var raw models.IngestRequest
	if err := decodeBody(w, r, &raw); err != nil {
		h.sendFailure(w, r, failures.RouteIngest, err)
		return
	}

	req, err := validation.ValidateIngest(raw)
	if err != nil {
		h.sendFailure(w, r, failures.RouteIngest, err)
		return
	}

	result, err := h.client.Ingest(r.Context(), req)
	if err != nil {
		h.sendFailure(w, r, failures.RouteIngest, err)
		return
	}

	h.sendText(w, http.StatusOK, result)
}

// IngestBatch handles batch document ingestion
// @Summary Ingest a batch of documents
// @Description Add several documents to the knowledge base. A single invalid document rejects the whole batch.
// @Tags rag
// @Accept json
// @Produce json
// @Param request body models.BatchIngestRequest true "Documents to ingest"
// @Success 200 {object} models.BatchIngestResponse
// @Failure 400 {object} models.BatchIngestResponse
// @Failure 500 {object} failures.Envelope
// @Router /ingest_batch [post]
func (h *RagHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	var raw models.BatchIngestRequest
	if err := decodeBody(w, r, &raw); err != nil {
		h.sendFailure(w, r, failures.RouteIngestBatch, err)
		return
	}

	req, err := validation.ValidateBatch(raw)
	if err != nil {
		h.sendFailure(w, r, failures.RouteIngestBatch, err)
		return
	}

	resp, err := h.client.IngestBatch(r.Context(), req)
	if err != nil {
		h.sendFailure(w, r, failures.RouteIngestBatch, err)
		return
	}

	h.sendJSON(w, http.StatusOK, resp)
}

// ============================================================================
// Binding
// ============================================================================

// bindQuestion reads the ask query parameters, applying defaults for the
// optional ones. An empty optional value counts as absent.
func bindQuestion(r *http.Request) (models.QuestionRequest, error) {
	query := r.URL.Query()

	values, ok := query["question"]
	if !ok || len(values) == 0 {
		return models.QuestionRequest{}, failures.MissingParameter("question", "String")
	}
	req := models.NewQuestionRequest(values[0])

	if _, err := intParam(query.Get("depth"), "depth", 0); err != nil {
		return models.QuestionRequest{}, err
	}

	if method := query.Get("method"); method != "" {
		req.Method = method
	}

	var err error
	if req.K, err = intParam(query.Get("k"), "k", models.DefaultK); err != nil {
		return models.QuestionRequest{}, err
	}
	if req.FilterByEntity, err = boolParam(query.Get("filterByEntity"), "filterByEntity", models.DefaultFilterByEntity); err != nil {
		return models.QuestionRequest{}, err
	}
	if req.DoRerank, err = boolParam(query.Get("doRerank"), "doRerank", models.DefaultDoRerank); err != nil {
		return models.QuestionRequest{}, err
	}

	return req, nil
}

func intParam(value, name string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, failures.InvalidParameter(name, value, err)
	}
	return intValue, nil
}

// boolValues are the accepted boolean spellings, matched case-insensitively
var boolValues = map[string]bool{
	"true": true, "on": true, "yes": true, "1": true,
	"false": false, "off": false, "no": false, "0": false,
}

func boolParam(value, name string, defaultValue bool) (bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue, nil
	}
	boolValue, ok := boolValues[strings.ToLower(trimmed)]
	if !ok {
		return false, failures.InvalidParameter(name, value, errInvalidBool)
	}
	return boolValue, nil
}

// decodeBody decodes a JSON request body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return failures.InvalidBody(errEmptyBody)
		}
		return failures.InvalidBody(err)
	}
	return nil
}

// ============================================================================
// Responses
// ============================================================================

// sendFailure writes the translated response for err and records it
func (h *RagHandler) sendFailure(w http.ResponseWriter, r *http.Request, route failures.Route, err error) {
	f := failures.As(err)
	resp := failures.Translate(route, f)
	h.metrics.RecordFailure(string(route), f.Kind.String())

	fields := []zap.Field{
		zap.String("route", string(route)),
		zap.String("kind", f.Kind.String()),
		zap.Int("status", resp.Status),
		zap.String("request_id", requestid.FromContext(r.Context())),
		zap.Error(f),
	}
	if f.Kind.IsValidation() {
		h.logger.Info("Request rejected", fields...)
	} else {
		h.logger.Error("Request failed", fields...)
	}

	WriteTranslated(w, resp, h.logger)
}

// WriteTranslated writes a translated failure response
func WriteTranslated(w http.ResponseWriter, resp failures.Response, logger *zap.Logger) {
	if text, ok := resp.Body.(string); ok {
		writeText(w, resp.Status, text, logger)
		return
	}
	writeJSON(w, resp.Status, resp.Body, logger)
}

func (h *RagHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data, h.logger)
}

func (h *RagHandler) sendText(w http.ResponseWriter, status int, text string) {
	writeText(w, status, text, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", failures.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to encode JSON", zap.Error(err))
	}
}

func writeText(w http.ResponseWriter, status int, text string, logger *zap.Logger) {
	w.Header().Set("Content-Type", failures.ContentTypeText)
	w.WriteHeader(status)
	if _, err := io.WriteString(w, text); err != nil {
		logger.Warn("Failed to write response", zap.Error(err))
	}
}
