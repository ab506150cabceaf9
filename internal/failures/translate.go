package failures

import "net/http"

// Route identifies the gateway operation a failure occurred in. Only the
// ingest routes change the body shape of a validation failure.
type Route string

const (
	RouteIndex       Route = "index"
	RouteAsk         Route = "ask"
	RouteIngest      Route = "ingest"
	RouteIngestBatch Route = "ingest_batch"
	// RouteUnknown is used when a failure cannot be attributed to a route,
	// such as a panic recovered outside the router
	RouteUnknown Route = "unknown"
)

// Envelope labels
const (
	LabelQuestionRequired = "Question is required"
	LabelGeneric          = "An error occurred"
)

// Content types of translated bodies
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Envelope is the structured error body
type Envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Response is a translated failure ready to be written
type Response struct {
	Status      int
	ContentType string
	Body        interface{} // Envelope, string (plain text) or batch body
}

type emptyBatch struct {
	IDs []string `json:"ids"`
}

// Translate maps a failure raised on route to its client response. Errors
// that are not a *Failure are treated as unhandled.
func Translate(route Route, err error) Response {
	f := As(err)
	if f == nil {
		f = Unhandled(nil)
	}

	switch f.Kind {
	case KindQuestionMissing:
		return envelope(http.StatusBadRequest, LabelQuestionRequired, f.ClientMessage())
	case KindMissingParameter, KindInvalidParameter:
		return envelope(http.StatusBadRequest, LabelGeneric, f.ClientMessage())
	case KindTextMissing, KindBatchEmpty:
		switch route {
		case RouteIngest:
			return Response{Status: http.StatusBadRequest, ContentType: ContentTypeText, Body: TextMissingMessage}
		case RouteIngestBatch:
			return Response{Status: http.StatusBadRequest, ContentType: ContentTypeJSON, Body: emptyBatch{IDs: []string{}}}
		}
		return envelope(http.StatusBadRequest, LabelGeneric, f.ClientMessage())
	case KindTransport:
		return envelope(http.StatusInternalServerError, LabelGeneric, f.ClientMessage())
	default:
		return envelope(http.StatusInternalServerError, LabelGeneric, f.ClientMessage())
	}
}

func envelope(status int, label, message string) Response {
	return Response{
		Status:      status,
		ContentType: ContentTypeJSON,
		Body:        Envelope{Error: label, Message: message, Status: status},
	}
}
