package models

import "encoding/json"

// RagResponse is the answer produced by the RAG backend. It is passed through
// to the client as received; numbers inside docs are held as json.Number.
type RagResponse struct {
	Question      string                   `json:"question"`
	Answer        string                   `json:"answer"`
	Docs          []map[string]interface{} `json:"docs"`
	Hallucination *HallucinationDetails    `json:"hallucination"`
}

// HallucinationDetails describes how well the answer is grounded in the retrieved documents
type HallucinationDetails struct {
	Detected     bool              `json:"hallucination_detected"`
	Severity     float64           `json:"hallucination_severity"` // 0.0 to 1.0
	CheckResults []json.RawMessage `json:"ck_results,omitempty"`
}
