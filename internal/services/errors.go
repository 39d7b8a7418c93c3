package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/rmib-profile-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Student specific errors
	ErrStudentNotFound  = errors.New("student not found")
	ErrNISNAlreadyUsed  = errors.New("NISN already registered")
	ErrStudentHasResult = errors.New("student already has an assessment result")

	// Auth specific errors
	ErrInvalidCredentials = errors.New("invalid NISN or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")

	// Assessment lifecycle errors
	ErrResultNotFound     = errors.New("assessment result not found")
	ErrResultNotEditable  = errors.New("assessment result cannot be modified in current status")
	ErrNoSnapshotToCancel = errors.New("no pending edit to cancel")
	ErrNotInEditFlow      = errors.New("assessment is not in an edit flow")

	// Achievement specific errors
	ErrAchievementNotFound     = errors.New("achievement not found")
	ErrAchievementTypeNotFound = errors.New("achievement type not found")
	ErrAchievementTypeInactive = errors.New("achievement type is inactive")
	ErrDuplicateTypeName       = errors.New("achievement type name already exists")
	ErrAlreadyVerified         = errors.New("achievement already verified")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// StateError reports an invalid lifecycle transition
type StateError struct {
	Entity    string `json:"entity"`
	Current   string `json:"current"`
	Attempted string `json:"attempted"`
}

func (se *StateError) Error() string {
	return fmt.Sprintf("invalid %s transition: cannot %s while %s", se.Entity, se.Attempted, se.Current)
}

func NewStateError(entity, current, attempted string) *StateError {
	return &StateError{
		Entity:    entity,
		Current:   current,
		Attempted: attempted,
	}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrAchievementNotFound) ||
		errors.Is(err, ErrAchievementTypeNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsStateError checks if error represents an invalid lifecycle transition
func IsStateError(err error) bool {
	if errors.Is(err, ErrResultNotEditable) ||
		errors.Is(err, ErrNoSnapshotToCancel) ||
		errors.Is(err, ErrNotInEditFlow) {
		return true
	}
	var se *StateError
	return errors.As(err, &se)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNISNAlreadyUsed) ||
		errors.Is(err, ErrStudentHasResult) ||
		errors.Is(err, ErrDuplicateTypeName) ||
		errors.Is(err, ErrAlreadyVerified)
}

// IsLocked checks if error represents a locked account
func IsLocked(err error) bool {
	return errors.Is(err, ErrAccountLocked)
}

// IsUnauthorized checks if error represents failed credentials
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
