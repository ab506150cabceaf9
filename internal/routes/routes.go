package routes

import (
	"net/http"

	"rag-gateway/internal/failures"
	"rag-gateway/internal/handlers"

	"github.com/gorilla/mux"
)

// Route names, used by the access log and metrics as labels
const (
	NameIndex       = string(failures.RouteIndex)
	NameAsk         = string(failures.RouteAsk)
	NameIngest      = string(failures.RouteIngest)
	NameIngestBatch = string(failures.RouteIngestBatch)
	NameHealth      = "health"
	NameMetrics     = "metrics"
	NameSwagger     = "swagger"
)

// Handlers holds everything the router dispatches to. Metrics and Swagger
// are optional.
type Handlers struct {
	Rag         *handlers.RagHandler
	Metrics     http.Handler
	MetricsPath string
	Swagger     http.Handler
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(router *mux.Router, h *Handlers) {
	// Gateway
	router.HandleFunc("/", h.Rag.Index).Methods(http.MethodGet).Name(NameIndex)
	router.HandleFunc("/ask", h.Rag.Ask).Methods(http.MethodGet).Name(NameAsk)
	router.HandleFunc("/ingest", h.Rag.Ingest).Methods(http.MethodPost).Name(NameIngest)
	router.HandleFunc("/ingest_batch", h.Rag.IngestBatch).Methods(http.MethodPost).Name(NameIngestBatch)

	// Operational
	router.HandleFunc("/health", h.Rag.Health).Methods(http.MethodGet).Name(NameHealth)

	if h.Metrics != nil && h.MetricsPath != "" {
		router.Handle(h.MetricsPath, h.Metrics).Methods(http.MethodGet).Name(NameMetrics)
	}

	if h.Swagger != nil {
		router.PathPrefix("/swagger/").Handler(h.Swagger).Name(NameSwagger)
	}
}

// RouteName returns the name of the route matched for r, or "unmatched"
func RouteName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return "unmatched"
}
