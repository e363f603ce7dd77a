package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeExtraction(t *testing.T) {
	assert.Equal(t, ErrValidation, Code(NewValidation("bad input")))
	assert.Equal(t, ErrNotFound, Code(NewNotFound("slot", nil)))
	assert.Equal(t, ErrConflict, Code(NewConflict("taken", nil)))
	assert.Equal(t, ErrPastSlot, Code(NewPastSlot("too late")))
	assert.Equal(t, ErrUnauthorized, Code(NewUnauthorized(nil)))

	// Unknown errors default to persistence.
	assert.Equal(t, ErrPersistence, Code(errors.New("driver exploded")))
}

func TestCodeThroughWrapping(t *testing.T) {
	inner := NewConflict("slot already booked", nil)
	wrapped := fmt.Errorf("booking failed: %w", inner)
	assert.Equal(t, ErrConflict, Code(wrapped))
	assert.True(t, IsConflict(wrapped))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConflict("slot already booked", cause)
	assert.Equal(t, "slot already booked: duplicate key", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))

	bare := NewValidation("month must be between 1 and 12")
	assert.Equal(t, "month must be between 1 and 12", bare.Error())
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsValidation(NewValidationf("field %s", "month")))
	assert.True(t, IsNotFound(NewNotFoundf("no doctor %d", 1)))
	assert.True(t, IsPastSlot(NewPastSlot("gone")))
	assert.False(t, IsConflict(NewValidation("nope")))
}
