package models

// Entities maps an entity category (e.g. "Game", "Console") to its values
type Entities map[string][]string

// IngestRequest represents a single document to ingest into the knowledge base
type IngestRequest struct {
	Text     string   `json:"text" validate:"notblank"`
	Entities Entities `json:"entities"`
}

// Normalize replaces an absent entities mapping with an empty one so the
// backend always receives an object.
func (r *IngestRequest) Normalize() {
	if r.Entities == nil {
		r.Entities = Entities{}
	}
}

// BatchIngestRequest represents a batch of documents to ingest
type BatchIngestRequest struct {
	Documents []IngestRequest `json:"documents"`
}

// BatchIngestResponse carries the IDs the backend assigned to an ingested batch
type BatchIngestResponse struct {
	IDs []string `json:"ids"`
}

// NewBatchIngestResponse returns a response whose ids list is never nil
func NewBatchIngestResponse(ids ...string) *BatchIngestResponse {
	if ids == nil {
		ids = []string{}
	}
	return &BatchIngestResponse{IDs: ids}
}

// Normalize ensures ids serializes as an empty list rather than null
func (r *BatchIngestResponse) Normalize() {
	if r.IDs == nil {
		r.IDs = []string{}
	}
}
