package echoapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/apar/core"
	"github.com/trezcool/apar/core/assessment"
)

// FieldRequest edits one field, as typed by the user.
// Value may be a JSON string, number or null; it is handed over as raw text.
type FieldRequest struct {
	Field string      `json:"field" validate:"notblank"`
	Value interface{} `json:"value"`
}

func (r FieldRequest) Validate(validate *validator.Validate) error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	switch r.Value.(type) {
	case nil, string, float64, bool:
		return nil
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "value", Error: "must be a string or a number"})
	}
}

// Raw returns the value as the text a form input would hold.
func (r FieldRequest) Raw() string {
	switch v := r.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

type (
	AssessmentResponse struct {
		Assessment assessment.Snapshot `json:"assessment"`
		Notices    []assessment.Notice `json:"notices"`
	}

	RowResponse struct {
		RowID      string              `json:"row_id"`
		Assessment assessment.Snapshot `json:"assessment"`
	}

	NoticesResponse struct {
		Notices []assessment.Notice `json:"notices"`
	}
)
