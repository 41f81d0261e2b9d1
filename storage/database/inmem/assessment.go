package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/apar/core/assessment"
)

type assessmentRepository struct {
	db *assessmentTable
}

var _ assessment.Repository = (*assessmentRepository)(nil) // interface compliance check

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

func (repo *assessmentRepository) SaveAssessment(_ context.Context, a *assessment.Assessment) error {
	if a == nil || a.ID == "" {
		return errors.New("saving assessment: missing id")
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.table[a.ID] = a
	return nil
}

func (repo *assessmentRepository) GetAssessment(_ context.Context, id string) (*assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return a, nil
	}
	return nil, errors.Wrapf(assessment.ErrNotFound, "assessment %q", id)
}

func (repo *assessmentRepository) DeleteAssessment(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return errors.Wrapf(assessment.ErrNotFound, "assessment %q", id)
	}
	delete(repo.db.table, id)
	return nil
}
