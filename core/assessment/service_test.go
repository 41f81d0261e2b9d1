package assessment

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/apar/core"
)

type memRepo struct {
	mu sync.Mutex
	m  map[string]*Assessment
}

func (r *memRepo) SaveAssessment(_ context.Context, a *Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[a.ID] = a
	return nil
}

func (r *memRepo) GetAssessment(_ context.Context, id string) (*Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.m[id]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (r *memRepo) DeleteAssessment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

func setup(t *testing.T) (*Service, *SubmitterMock, *NotifierMock) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	submitter := &SubmitterMock{}
	notifier := &NotifierMock{}
	svc := NewService(&memRepo{m: make(map[string]*Assessment)}, submitter, notifier, validate, translator)
	return svc, submitter, notifier
}

func TestService_Wizard(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	snap, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepProfile, snap.Step)

	snap, err = svc.Retreat(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, StepProfile, snap.Step)

	snap, err = svc.Advance(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, StepLectures, snap.Step)
	assert.Equal(t, SectionLectures, snap.Section)

	_, err = svc.Advance(ctx, "missing")
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	require.NoError(t, svc.Discard(ctx, snap.ID))
	_, err = svc.Get(ctx, snap.ID)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestService_Rows(t *testing.T) {
	svc, _, notifier := setup(t)
	ctx := context.Background()
	snap, _ := svc.Start(ctx)
	id := snap.ID

	rowID, snap, err := svc.AddRow(ctx, id, SectionAttendance)
	require.NoError(t, err)
	assert.Len(t, snap.Attendance, 2)

	snap, err = svc.UpdateRow(ctx, id, SectionAttendance, rowID, "studentPresent", "45")
	require.NoError(t, err)
	assert.Equal(t, Number(45), snap.Attendance[1].StudentPresent)

	snap, err = svc.DeleteRow(ctx, id, SectionAttendance, rowID)
	require.NoError(t, err)
	assert.Len(t, snap.Attendance, 1)

	// refused: the only row
	_, err = svc.DeleteRow(ctx, id, SectionAttendance, snap.Attendance[0].ID)
	require.Error(t, err)
	assert.True(t, core.IsRefused(err))
	assert.Equal(t, []Notice{{Level: LevelWarning, Message: onlyRowNotice}}, notifier.Received())

	snap, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, snap.Attendance, 1)

	_, _, err = svc.AddRow(ctx, id, "bogus")
	assert.Error(t, err)

	snap, err = svc.SetField(ctx, id, SectionGuidance, "innovation", "Smart irrigation")
	require.NoError(t, err)
	assert.Equal(t, Number(4), snap.Guidance.TotalCredits)
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("validation failure sends nothing", func(t *testing.T) {
		svc, submitter, notifier := setup(t)
		snap, _ := svc.Start(ctx)

		err := svc.Submit(ctx, snap.ID, SectionLectures, snap.Lectures[0].ID)
		require.Error(t, err)
		vErr, ok := errors.Cause(err).(*core.ValidationError)
		require.True(t, ok)
		assert.Equal(t, msgRequired, vErr.Error())
		assert.Contains(t, vErr.Fields, core.FieldError{Field: "course", Error: "this field cannot be blank"})
		assert.Empty(t, submitter.Sent())
		assert.Equal(t, []Notice{{Level: LevelWarning, Message: msgRequired}}, notifier.Received())
	})

	t.Run("lecture row", func(t *testing.T) {
		svc, submitter, notifier := setup(t)
		snap, _ := svc.Start(ctx)
		id, rowID := snap.ID, snap.Lectures[0].ID
		for field, raw := range map[string]string{
			"semester": "IV", "course": "Fluid Mechanics", "periodAllotted": "50", "periodEngaged": "45",
		} {
			_, err := svc.UpdateRow(ctx, id, SectionLectures, rowID, field, raw)
			require.NoError(t, err)
		}

		require.NoError(t, svc.Submit(ctx, id, SectionLectures, rowID))
		assert.Equal(t, []Request{{
			Endpoint: EndpointLecture,
			Payload: LecturePayload{
				Semester: "IV", Course: "Fluid Mechanics", PeriodsAllotted: 50, PeriodEngaged: 45,
				MFTeaching: 0.2, ReportingOfficerOpinion: "good",
			},
		}}, submitter.Sent())
		assert.Equal(t, []Notice{{Level: LevelSuccess, Message: msgSubmitted}}, notifier.Received())

		err := svc.Submit(ctx, id, SectionLectures, "missing")
		assert.Equal(t, ErrRowNotFound, errors.Cause(err))
	})

	t.Run("remote failure leaves state unchanged", func(t *testing.T) {
		svc, submitter, notifier := setup(t)
		submitter.Err = &core.TransportError{Endpoint: EndpointResult, StatusCode: 500}
		snap, _ := svc.Start(ctx)
		id, rowID := snap.ID, snap.Results[0].ID
		_, _ = svc.UpdateRow(ctx, id, SectionResults, rowID, "semester", "2")
		_, _ = svc.UpdateRow(ctx, id, SectionResults, rowID, "course", "Drawing")
		_, _ = svc.UpdateRow(ctx, id, SectionResults, rowID, "averageOfColumn4", "75")
		before, _ := svc.Get(ctx, id)

		err := svc.Submit(ctx, id, SectionResults, rowID)
		require.Error(t, err)
		assert.True(t, core.IsTransport(err))
		assert.Equal(t, []Notice{{Level: LevelError, Message: msgSubmitFailed}}, notifier.Received())

		after, _ := svc.Get(ctx, id)
		assert.Equal(t, before, after)
		assert.Len(t, submitter.Sent(), 1)
	})

	t.Run("attendance validates every row", func(t *testing.T) {
		svc, submitter, notifier := setup(t)
		snap, _ := svc.Start(ctx)
		id := snap.ID
		fill := func(rowID string) {
			for field, raw := range map[string]string{
				"semester": "3", "course": "Surveying", "studentPresent": "45", "lectureEngaged": "50", "studentRoll": "1",
			} {
				_, err := svc.UpdateRow(ctx, id, SectionAttendance, rowID, field, raw)
				require.NoError(t, err)
			}
		}
		fill(snap.Attendance[0].ID)
		second, _, _ := svc.AddRow(ctx, id, SectionAttendance)

		err := svc.Submit(ctx, id, SectionAttendance, "")
		require.Error(t, err)
		vErr := errors.Cause(err).(*core.ValidationError)
		assert.Equal(t, msgRequiredEachRow, vErr.Error())
		assert.Contains(t, vErr.Fields, core.FieldError{Field: "rows[2].course", Error: "this field cannot be blank"})
		assert.Empty(t, submitter.Sent())

		fill(second)
		require.NoError(t, svc.Submit(ctx, id, SectionAttendance, ""))
		sent := submitter.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, EndpointAttendance, sent[0].Endpoint)
		body := sent[0].Payload.(AttendanceSubmission)
		assert.Equal(t, "90.00", body.AverageOfColumn)
		require.Len(t, body.Rows, 2)
		assert.Equal(t, 1, body.Rows[0].SNo)
		assert.Equal(t, 2, body.Rows[1].SNo)
		assert.Equal(t, "90.00", body.Rows[1].AverageOfColumn)

		notices := notifier.Received()
		require.Len(t, notices, 2)
		assert.Equal(t, Notice{Level: LevelSuccess, Message: msgSubmitted}, notices[1])
	})

	t.Run("attendance failure sends one request", func(t *testing.T) {
		tests := []struct {
			name string
			rows int
		}{
			{name: "single row", rows: 1},
			{name: "three rows", rows: 3},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, submitter, notifier := setup(t)
				submitter.Err = &core.TransportError{Endpoint: EndpointAttendance, StatusCode: 503}
				snap, _ := svc.Start(ctx)
				id := snap.ID
				rowIDs := []string{snap.Attendance[0].ID}
				for len(rowIDs) < tt.rows {
					rowID, _, err := svc.AddRow(ctx, id, SectionAttendance)
					require.NoError(t, err)
					rowIDs = append(rowIDs, rowID)
				}
				for _, rowID := range rowIDs {
					for field, raw := range map[string]string{
						"semester": "1", "course": "Statics", "studentPresent": "30", "lectureEngaged": "40", "studentRoll": "1",
					} {
						_, err := svc.UpdateRow(ctx, id, SectionAttendance, rowID, field, raw)
						require.NoError(t, err)
					}
				}

				err := svc.Submit(ctx, id, SectionAttendance, "")
				require.Error(t, err)
				assert.True(t, core.IsTransport(err))
				sent := submitter.Sent()
				require.Len(t, sent, 1)
				assert.Len(t, sent[0].Payload.(AttendanceSubmission).Rows, tt.rows)
				assert.Equal(t, []Notice{{Level: LevelError, Message: msgSubmitRetry}}, notifier.Received())
			})
		}
	})

	t.Run("cancelled caller does not abort the request", func(t *testing.T) {
		svc, submitter, notifier := setup(t)
		snap, _ := svc.Start(ctx)
		id, rowID := snap.ID, snap.Lectures[0].ID
		for field, raw := range map[string]string{
			"semester": "II", "course": "Hydraulics", "periodAllotted": "40", "periodEngaged": "40",
		} {
			_, err := svc.UpdateRow(ctx, id, SectionLectures, rowID, field, raw)
			require.NoError(t, err)
		}

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, svc.Submit(cctx, id, SectionLectures, rowID))
		assert.Len(t, submitter.Sent(), 1)
		assert.Equal(t, []error{nil}, submitter.CtxErrs)
		assert.Equal(t, []Notice{{Level: LevelSuccess, Message: msgSubmitted}}, notifier.Received())
	})

	t.Run("guidance", func(t *testing.T) {
		svc, submitter, _ := setup(t)
		snap, _ := svc.Start(ctx)
		id := snap.ID
		rowID, _, _ := svc.AddRow(ctx, id, SectionProjects)
		_, _ = svc.UpdateRow(ctx, id, SectionProjects, rowID, "credits", "3")

		// credits above 2 and a blank name are rejected
		err := svc.Submit(ctx, id, SectionGuidance, "")
		require.Error(t, err)
		assert.Equal(t, msgRequiredProject, err.Error())

		_, _ = svc.UpdateRow(ctx, id, SectionProjects, rowID, "credits", "2")
		_, _ = svc.UpdateRow(ctx, id, SectionProjects, rowID, "name", "Solar tracker")
		_, _ = svc.SetField(ctx, id, SectionGuidance, "innovation", "Dual axis")
		require.NoError(t, svc.Submit(ctx, id, SectionGuidance, ""))

		sent := submitter.Sent()
		require.Len(t, sent, 1)
		payload := sent[0].Payload.(GuidancePayload)
		assert.Equal(t, EndpointGuidance, sent[0].Endpoint)
		assert.Equal(t, 6.0, payload.TotalCredits)
		assert.Equal(t, "Solar tracker", payload.Projects[0].Name)
	})
}
