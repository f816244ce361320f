package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone/registrar/internal/pkg/apperrors"
)

func newTestUndergrad(t *testing.T) *Undergraduate {
	t.Helper()
	student, err := NewUndergraduate("STU1000", "Ada Lovelace", "ada@example.edu", 20, "CS", 2, "CS")
	require.NoError(t, err)
	return student
}

func TestPersonSetters(t *testing.T) {
	student := newTestUndergrad(t)

	require.NoError(t, student.SetName("Ada King"))
	assert.Equal(t, "Ada King", student.Name())

	require.NoError(t, student.SetEmail("ada@college.edu"))
	assert.Equal(t, "ada@college.edu", student.Email())

	require.NoError(t, student.SetAge(21))
	assert.Equal(t, 21, student.Age())
}

func TestPersonSettersRejectInvalidValues(t *testing.T) {
	student := newTestUndergrad(t)

	err := student.SetName("   ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "Ada Lovelace", student.Name(), "prior name kept on failure")

	err = student.SetEmail("no-at-sign")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
	assert.Equal(t, "ada@example.edu", student.Email(), "prior email kept on failure")

	for _, age := range []int{-1, 121, 500} {
		err = student.SetAge(age)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAge)
	}
	assert.Equal(t, 20, student.Age(), "prior age kept on failure")
}

func TestNewStudentValidatesPersonFields(t *testing.T) {
	_, err := NewUndergraduate("STU1000", "", "ada@example.edu", 20, "CS", 2, "CS")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = NewUndergraduate("STU1000", "Ada", "bad-email", 20, "CS", 2, "CS")
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = NewGraduate("STU1001", "Bo", "bo@example.edu", 200, "CS", "Systems", "Dr. X", false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAge)
}
