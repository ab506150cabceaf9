// Package validation checks inbound request models before anything is
// forwarded to the backend. Every function is pure: the input is never
// mutated and the returned model is a normalized copy.
package validation

import (
	"errors"
	"strings"

	"rag-gateway/internal/failures"
	"rag-gateway/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateQuestion checks that the question is present and not blank. A blank
// method falls back to the default. The returned error is a *failures.Failure
// of kind QuestionMissing.
func ValidateQuestion(raw models.QuestionRequest) (models.QuestionRequest, error) {
	if failed(validate.Struct(raw), "Question") {
		return models.QuestionRequest{}, failures.QuestionMissing()
	}

	req := raw
	if strings.TrimSpace(req.Method) == "" {
		req.Method = models.DefaultMethod
	}
	return req, nil
}

// ValidateIngest checks that the document text is present and not blank, and
// normalizes absent entities to an empty mapping.
func ValidateIngest(raw models.IngestRequest) (models.IngestRequest, error) {
	return validateDocument(raw, -1)
}

// ValidateBatch checks a batch as a whole: it fails with BatchEmpty when there
// are no documents and with TextMissing naming the first offending index when
// any document is invalid. No partial batch is ever returned.
func ValidateBatch(raw models.BatchIngestRequest) (models.BatchIngestRequest, error) {
	if len(raw.Documents) == 0 {
		return models.BatchIngestRequest{}, failures.BatchEmpty()
	}

	docs := make([]models.IngestRequest, 0, len(raw.Documents))
	for i, doc := range raw.Documents {
		valid, err := validateDocument(doc, i)
		if err != nil {
			return models.BatchIngestRequest{}, err
		}
		docs = append(docs, valid)
	}

	return models.BatchIngestRequest{Documents: docs}, nil
}

func validateDocument(raw models.IngestRequest, index int) (models.IngestRequest, error) {
	if failed(validate.Struct(raw), "Text") {
		return models.IngestRequest{}, failures.TextMissing(index)
	}

	req := models.IngestRequest{Text: raw.Text, Entities: make(models.Entities, len(raw.Entities))}
	for category, values := range raw.Entities {
		req.Entities[category] = values
	}
	req.Normalize()
	return req, nil
}

// failed reports whether err carries a validation error for field
func failed(err error, field string) bool {
	if err == nil {
		return false
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return true
	}
	for _, fe := range verrs {
		if fe.StructField() == field {
			return true
		}
	}
	return false
}
