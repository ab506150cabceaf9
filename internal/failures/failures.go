// Package failures defines the gateway's failure taxonomy and the single
// mapping from a failure to the HTTP response a client sees.
package failures

import (
	"errors"
	"fmt"
)

// Kind classifies a failure
type Kind int

const (
	// KindUnhandled is any failure that has no more specific kind
	KindUnhandled Kind = iota
	// KindQuestionMissing means the question was empty or blank
	KindQuestionMissing
	// KindMissingParameter means a required request parameter was absent before validation ran
	KindMissingParameter
	// KindInvalidParameter means a request parameter or body could not be bound to its type
	KindInvalidParameter
	// KindTextMissing means a document's text was empty or blank
	KindTextMissing
	// KindBatchEmpty means a batch carried no documents
	KindBatchEmpty
	// KindTransport means the backend call failed: unreachable, non-2xx or undecodable
	KindTransport
)

var kindNames = map[Kind]string{
	KindUnhandled:        "unhandled",
	KindQuestionMissing:  "question_missing",
	KindMissingParameter: "missing_parameter",
	KindInvalidParameter: "invalid_parameter",
	KindTextMissing:      "text_missing",
	KindBatchEmpty:       "batch_empty",
	KindTransport:        "transport",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsValidation reports whether the kind is a client input defect
func (k Kind) IsValidation() bool {
	switch k {
	case KindQuestionMissing, KindMissingParameter, KindInvalidParameter, KindTextMissing, KindBatchEmpty:
		return true
	}
	return false
}

// Messages shown to clients
const (
	QuestionMissingMessage = "Question parameter is required and cannot be empty"
	TextMissingMessage     = "Text parameter is required"
	BatchEmptyMessage      = "At least one document is required"
	GenericMessage         = "An unexpected error occurred"
)

// Failure is a classified gateway failure
type Failure struct {
	Kind    Kind
	Message string // client-facing text; Err's text is used when empty
	Param   string // offending request parameter, if any
	Index   int    // first offending document in a batch, -1 when not applicable
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.Message != "" && f.Err != nil:
		return f.Message + ": " + f.Err.Error()
	case f.Message != "":
		return f.Message
	case f.Err != nil:
		return f.Err.Error()
	}
	return f.Kind.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// ClientMessage returns the text placed in the error envelope
func (f *Failure) ClientMessage() string {
	if f.Message != "" {
		return f.Message
	}
	if f.Err != nil && f.Err.Error() != "" {
		return f.Err.Error()
	}
	return GenericMessage
}

// QuestionMissing reports an empty or blank question
func QuestionMissing() *Failure {
	return &Failure{Kind: KindQuestionMissing, Message: QuestionMissingMessage, Param: "question", Index: -1}
}

// MissingParameter reports a required query parameter that was not sent at
// all. typeName is the parameter's declared type as shown to clients, e.g. "String".
func MissingParameter(name, typeName string) *Failure {
	return &Failure{
		Kind:    KindMissingParameter,
		Message: fmt.Sprintf("Required request parameter '%s' for method parameter type %s is not present", name, typeName),
		Param:   name,
		Index:   -1,
	}
}

// InvalidParameter reports a parameter whose value cannot be converted to its type
func InvalidParameter(name, value string, err error) *Failure {
	return &Failure{
		Kind:    KindInvalidParameter,
		Message: fmt.Sprintf("Invalid value '%s' for request parameter '%s'", value, name),
		Param:   name,
		Index:   -1,
		Err:     err,
	}
}

// InvalidBody reports a request body that is not valid JSON for the route
func InvalidBody(err error) *Failure {
	return &Failure{
		Kind:    KindInvalidParameter,
		Message: fmt.Sprintf("Malformed request body: %v", err),
		Param:   "body",
		Index:   -1,
		Err:     err,
	}
}

// TextMissing reports an empty or blank document text. index is the position
// of the document in its batch, or -1 for a single document.
func TextMissing(index int) *Failure {
	return &Failure{Kind: KindTextMissing, Message: TextMissingMessage, Param: "text", Index: index}
}

// BatchEmpty reports a batch without documents
func BatchEmpty() *Failure {
	return &Failure{Kind: KindBatchEmpty, Message: BatchEmptyMessage, Param: "documents", Index: -1}
}

// Transport wraps a failed backend call
func Transport(err error) *Failure {
	return &Failure{Kind: KindTransport, Index: -1, Err: err}
}

// Unhandled wraps any other failure
func Unhandled(err error) *Failure {
	return &Failure{Kind: KindUnhandled, Index: -1, Err: err}
}

// As returns err as a *Failure, classifying unknown errors as unhandled
func As(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Unhandled(err)
}
