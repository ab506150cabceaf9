package models

// Defaults applied to question requests when the caller omits a parameter
const (
	DefaultMethod         = "hybrid"
	DefaultK              = 5
	DefaultFilterByEntity = false
	DefaultDoRerank       = false
)

// QuestionRequest represents a question to be answered by the RAG backend
type QuestionRequest struct {
	Question       string `json:"question" validate:"notblank"` // The question text
	Method         string `json:"method"`                       // Retrieval method: bm25, dense or hybrid
	K              int    `json:"k"`                            // Number of documents to retrieve
	FilterByEntity bool   `json:"filterByEntity"`               // Filter retrieved documents by extracted entities
	DoRerank       bool   `json:"doRerank"`                     // Rerank the retrieved documents
}

// NewQuestionRequest returns a request for question with every optional parameter at its default
func NewQuestionRequest(question string) QuestionRequest {
	return QuestionRequest{
		Question:       question,
		Method:         DefaultMethod,
		K:              DefaultK,
		FilterByEntity: DefaultFilterByEntity,
		DoRerank:       DefaultDoRerank,
	}
}
