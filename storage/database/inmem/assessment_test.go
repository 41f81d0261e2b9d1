package inmemdb

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/apar/core/assessment"
)

func TestAssessmentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAssessmentRepository(Open())

	_, err := repo.GetAssessment(ctx, "a1")
	assert.Equal(t, assessment.ErrNotFound, errors.Cause(err))

	a := assessment.New("a1")
	require.NoError(t, repo.SaveAssessment(ctx, a))
	assert.Error(t, repo.SaveAssessment(ctx, assessment.New("")))

	got, err := repo.GetAssessment(ctx, "a1")
	require.NoError(t, err)
	assert.Same(t, a, got)

	require.NoError(t, repo.DeleteAssessment(ctx, "a1"))
	err = repo.DeleteAssessment(ctx, "a1")
	assert.Equal(t, assessment.ErrNotFound, errors.Cause(err))
	_, err = repo.GetAssessment(ctx, "a1")
	assert.Equal(t, assessment.ErrNotFound, errors.Cause(err))
}
