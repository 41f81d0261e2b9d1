package assessment

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/apar/core"
)

type (
	Repository interface {
		SaveAssessment(ctx context.Context, a *Assessment) error
		GetAssessment(ctx context.Context, id string) (*Assessment, error)
		DeleteAssessment(ctx context.Context, id string) error
	}

	Service struct {
		repo       Repository
		submitter  Submitter
		notifier   Notifier
		validate   *validator.Validate
		translator ut.Translator
	}
)

func NewService(
	repo Repository,
	submitter Submitter,
	notifier Notifier,
	validate *validator.Validate,
	translator ut.Translator,
) *Service {
	return &Service{
		repo:       repo,
		submitter:  submitter,
		notifier:   notifier,
		validate:   validate,
		translator: translator,
	}
}

// Start opens a new assessment positioned at the first step.
func (svc *Service) Start(ctx context.Context) (Snapshot, error) {
	a := New(uuid.NewString())
	if err := svc.repo.SaveAssessment(ctx, a); err != nil {
		return Snapshot{}, errors.Wrap(err, "saving assessment")
	}
	return a.Snapshot(), nil
}

func (svc *Service) Get(ctx context.Context, id string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error { return nil })
}

func (svc *Service) Discard(ctx context.Context, id string) error {
	return svc.repo.DeleteAssessment(ctx, id)
}

func (svc *Service) Advance(ctx context.Context, id string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error {
		a.Wizard.Advance()
		return nil
	})
}

func (svc *Service) Retreat(ctx context.Context, id string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error {
		a.Wizard.Retreat()
		return nil
	})
}

// SetField edits a scalar field of the profile or guidance section.
func (svc *Service) SetField(ctx context.Context, id, section, field, raw string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error {
		return a.SetField(section, field, raw)
	})
}

// AddRow appends a row with default values and returns its identity.
func (svc *Service) AddRow(ctx context.Context, id, section string) (string, Snapshot, error) {
	var rowID string
	snap, err := svc.with(ctx, id, func(a *Assessment) error {
		tbl, err := a.Table(section)
		if err != nil {
			return err
		}
		rowID = tbl.Add()
		return nil
	})
	return rowID, snap, err
}

func (svc *Service) UpdateRow(ctx context.Context, id, section, rowID, field, raw string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error {
		tbl, err := a.Table(section)
		if err != nil {
			return err
		}
		return tbl.Update(rowID, field, raw)
	})
}

// DeleteRow removes a row; a refusal is reported to the notifier and returned as a core.RefusedError.
func (svc *Service) DeleteRow(ctx context.Context, id, section, rowID string) (Snapshot, error) {
	return svc.with(ctx, id, func(a *Assessment) error {
		tbl, err := a.Table(section)
		if err != nil {
			return err
		}
		if err = tbl.Delete(rowID); err != nil {
			if refused, ok := errors.Cause(err).(*core.RefusedError); ok {
				svc.notifier.Notify(id, Notice{Level: LevelWarning, Message: refused.Notice})
			}
			return err
		}
		return nil
	})
}

// Submit sends a section, or one row of it, to the remote API.
// Exactly one notice is emitted per call. The assessment is never modified,
// so a failed submission can be retried as is.
func (svc *Service) Submit(ctx context.Context, id, section, rowID string) error {
	a, err := svc.repo.GetAssessment(ctx, id)
	if err != nil {
		return err
	}

	a.mu.Lock()
	sub, err := a.submission(section, rowID, svc.validate, svc.translator)
	a.mu.Unlock()
	if err != nil {
		if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
			svc.notifier.Notify(id, Notice{Level: LevelWarning, Message: vErr.Error()})
		}
		return err
	}

	// the lock is released: the assessment stays editable while the request is in flight.
	// A caller going away does not abort a submission already underway.
	sendCtx := context.WithoutCancel(ctx)
	if err = svc.submitter.Submit(sendCtx, sub.request.Endpoint, sub.request.Payload); err != nil {
		svc.notifier.Notify(id, Notice{Level: LevelError, Message: sub.failed})
		return errors.Wrapf(err, "submitting %s", section)
	}
	svc.notifier.Notify(id, Notice{Level: LevelSuccess, Message: msgSubmitted})
	return nil
}

func (svc *Service) with(ctx context.Context, id string, fn func(a *Assessment) error) (Snapshot, error) {
	a, err := svc.repo.GetAssessment(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if err = fn(a); err != nil {
		return Snapshot{}, err
	}
	return a.Snapshot(), nil
}
