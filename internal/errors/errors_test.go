package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &NotFoundError{Entity: "department"}
		assert.Equal(t, "department not found", err.Error())
	})

	t.Run("errors.Is comparison with same entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "department"}
		err2 := &NotFoundError{Entity: "department"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is comparison with different entity", func(t *testing.T) {
		err1 := &NotFoundError{Entity: "department"}
		err2 := &NotFoundError{Entity: "presentation"}
		assert.False(t, errors.Is(err1, err2))
	})

	t.Run("errors.Is with predefined errors", func(t *testing.T) {
		assert.True(t, errors.Is(ErrDepartmentNotFound, ErrDepartmentNotFound))
		assert.False(t, errors.Is(ErrDepartmentNotFound, ErrPresentationNotFound))
	})

	t.Run("IsNotFound helper", func(t *testing.T) {
		assert.True(t, IsNotFound(ErrPresentationNotFound))
		assert.False(t, IsNotFound(ErrInvalidTimeSlot))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "department", Context: "with this name"}
		assert.Equal(t, "department already exists with this name", err.Error())
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &AlreadyExistsError{Entity: "department"}
		assert.Equal(t, "department already exists", err.Error())
	})

	t.Run("errors.Is comparison", func(t *testing.T) {
		err1 := &AlreadyExistsError{Entity: "subscription", Context: "with this email"}
		err2 := &AlreadyExistsError{Entity: "subscription", Context: "with this email"}
		assert.True(t, errors.Is(err1, err2))
	})

	t.Run("IsAlreadyExists helper", func(t *testing.T) {
		assert.True(t, IsAlreadyExists(ErrDepartmentExists))
		assert.False(t, IsAlreadyExists(ErrDepartmentNotFound))
	})
}

func TestConflictError(t *testing.T) {
	t.Run("Error message with conflicting id", func(t *testing.T) {
		err := &ConflictError{ConflictingID: "42"}
		assert.Equal(t, "slot already booked by presentation 42", err.Error())
	})

	t.Run("Error message without conflicting id", func(t *testing.T) {
		err := &ConflictError{}
		assert.Equal(t, "slot already booked", err.Error())
	})

	t.Run("errors.Is matches regardless of conflicting id", func(t *testing.T) {
		err := NewConflictError("42")
		assert.True(t, errors.Is(err, ErrBookingConflict))
	})

	t.Run("IsConflict helper", func(t *testing.T) {
		assert.True(t, IsConflict(NewConflictError("42")))
		assert.True(t, IsConflict(ErrBookingConflict))
		assert.False(t, IsConflict(ErrInvalidTimeSlot))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Field: "email", Message: "invalid format"}
		assert.Equal(t, "validation error: email - invalid format", err.Error())
	})

	t.Run("Error message without field", func(t *testing.T) {
		err := &ValidationError{Message: "invalid format"}
		assert.Equal(t, "validation error: invalid format", err.Error())
	})

	t.Run("IsValidation helper", func(t *testing.T) {
		err := NewValidationError("email", "invalid")
		assert.True(t, IsValidation(err))
		assert.False(t, IsValidation(ErrDepartmentNotFound))
	})
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFoundError", func(t *testing.T) {
		err := NewNotFoundError("custom entity")
		assert.Equal(t, "custom entity not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("NewAlreadyExistsError", func(t *testing.T) {
		err := NewAlreadyExistsError("custom", "in scope")
		assert.Equal(t, "custom already exists in scope", err.Error())
		assert.True(t, IsAlreadyExists(err))
	})

	t.Run("NewValidationError", func(t *testing.T) {
		err := NewValidationError("field", "message")
		assert.Equal(t, "validation error: field - message", err.Error())
		assert.True(t, IsValidation(err))
	})

	t.Run("NewAuthenticationError", func(t *testing.T) {
		err := NewAuthenticationError("bad password")
		assert.Equal(t, "bad password", err.Error())
		assert.True(t, IsAuthentication(err))
	})
}

func TestBusinessLogicErrors(t *testing.T) {
	t.Run("Booking errors", func(t *testing.T) {
		assert.Error(t, ErrBookingConflict)
		assert.Error(t, ErrInvalidTimeSlot)
		assert.Error(t, ErrInvalidDuration)
		assert.Error(t, ErrInvalidDesignation)
	})

	t.Run("Aggregation errors", func(t *testing.T) {
		assert.Error(t, ErrInsufficientData)
		assert.Error(t, ErrInvalidDateRange)
	})

	t.Run("Mail errors", func(t *testing.T) {
		assert.Error(t, ErrMailCredentialsMissing)
		assert.Error(t, ErrMailConnectionFailure)
		assert.Error(t, ErrMailAuthFailure)
		assert.Error(t, ErrMailTimeout)
		assert.True(t, IsConfiguration(ErrMailCredentialsMissing))
		assert.True(t, IsAuthentication(ErrMailAuthFailure))
	})
}
