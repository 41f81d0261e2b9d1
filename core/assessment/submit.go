package assessment

import (
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
)

// Remote endpoints, one per section.
const (
	EndpointProfile    = "addpartA"
	EndpointLecture    = "addlecture"
	EndpointResult     = "addresult"
	EndpointAttendance = "addstudatt"
	EndpointGuidance   = "addguidance"
)

const (
	msgSubmitted       = "Data submitted successfully"
	msgSubmitFailed    = "Failed to submit"
	msgSubmitRetry     = "Failed to submit data. Please try again."
	msgRequired        = "Please fill in all required fields"
	msgRequiredEachRow = "Please fill in all required fields for each row."
	msgRequiredProject = "Please fill in all required fields for each project."
)

type (
	// Submitter performs one outbound request per call, without retrying.
	Submitter interface {
		Submit(ctx context.Context, endpoint string, payload interface{}) error
	}

	Level string

	// Notice is a short, non-blocking message for the user.
	Notice struct {
		Level   Level  `json:"level"`
		Message string `json:"message"`
	}

	// Notifier surfaces notices for an assessment.
	Notifier interface {
		Notify(assessmentID string, n Notice)
	}

	// Request is one outbound submission built from a snapshot of a section.
	Request struct {
		Endpoint string
		Payload  interface{}
	}

	submission struct {
		request Request
		failed  string
	}
)

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// submission validates and packages a section (or one of its rows) for sending.
// It must run under the assessment lock; the returned payloads do not alias the assessment.
func (a *Assessment) submission(section, rowID string, validate *validator.Validate, translator ut.Translator) (submission, error) {
	switch section {
	case SectionProfile:
		payload := a.Profile.Payload()
		if err := validate.Struct(payload); err != nil {
			return submission{}, validationError(msgRequired, "", err, translator)
		}
		return submission{request: Request{EndpointProfile, payload}, failed: msgSubmitFailed}, nil

	case SectionLectures:
		row, ok := a.Lectures.Get(rowID)
		if !ok {
			return submission{}, errors.Wrapf(ErrRowNotFound, "lecture row %q", rowID)
		}
		payload := row.Payload()
		if err := validate.Struct(payload); err != nil {
			return submission{}, validationError(msgRequired, "", err, translator)
		}
		return submission{request: Request{EndpointLecture, payload}, failed: msgSubmitFailed}, nil

	case SectionResults:
		row, ok := a.Results.Get(rowID)
		if !ok {
			return submission{}, errors.Wrapf(ErrRowNotFound, "result row %q", rowID)
		}
		payload := row.Payload()
		if err := validate.Struct(payload); err != nil {
			return submission{}, validationError(msgRequired, "", err, translator)
		}
		return submission{request: Request{EndpointResult, payload}, failed: msgSubmitFailed}, nil

	case SectionAttendance:
		// every row must be complete before anything is sent
		rows := a.Attendance.Rows()
		body := AttendanceSubmission{Rows: make([]AttendancePayload, 0, len(rows))}
		for _, row := range rows {
			payload := row.Payload()
			if err := validate.Struct(payload); err != nil {
				return submission{}, validationError(msgRequiredEachRow, fmt.Sprintf("rows[%d].", row.SNo), err, translator)
			}
			body.Rows = append(body.Rows, payload)
		}
		if len(rows) > 0 {
			body.AverageOfColumn = Fixed2(rows[0].AverageOfColumn)
		}
		return submission{request: Request{EndpointAttendance, body}, failed: msgSubmitRetry}, nil

	case SectionGuidance, SectionProjects:
		payload := a.Guidance.Payload()
		if err := validate.Struct(payload); err != nil {
			return submission{}, validationError(msgRequiredProject, "", err, translator)
		}
		return submission{request: Request{EndpointGuidance, payload}, failed: msgSubmitFailed}, nil

	default:
		return submission{}, unknownSectionError(section)
	}
}

func validationError(msg, fieldPrefix string, err error, translator ut.Translator) error {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "validating payload")
	}
	flds := core.FieldErrors(vErrs, translator)
	for i := range flds {
		flds[i].Field = fieldPrefix + flds[i].Field
	}
	return core.NewValidationError(errors.New(msg), flds...)
}
