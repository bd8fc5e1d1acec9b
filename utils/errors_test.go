package utils

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundError("rendez-vous", 7)))
	assert.True(t, IsConflict(ConflictError("slot taken")))
	assert.True(t, IsInvalidState(InvalidStateError("already paid")))
	assert.True(t, IsValidation(ValidationError("bad input")))

	assert.Equal(t, KindUnknown, KindOf(errors.New("database down")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFoundError("facture", 3), "loading facture")
	assert.True(t, IsNotFound(err))
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFoundError("patient", 42)
	assert.Equal(t, "patient not found with ID: 42", err.Error())
}
