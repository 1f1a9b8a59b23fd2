package errors

import (
	"errors"
	"fmt"
)

// Error codes for the randomizer.
const (
	// Invariant violations: the bijection or the catalog is corrupt.
	ErrCodeObjectiveNotBound  = "OBJECTIVE_NOT_BOUND"
	ErrCodeUnlockNotBound     = "UNLOCK_NOT_BOUND"
	ErrCodeBijectionConflict  = "BIJECTION_CONFLICT"
	ErrCodeBijectionCorrupt   = "BIJECTION_CORRUPT"
	ErrCodeSwapLimitExceeded  = "SWAP_LIMIT_EXCEEDED"
	ErrCodeGenerationFailed   = "GENERATION_FAILED"
	ErrCodeCatalogMismatch    = "CATALOG_MISMATCH"
	ErrCodeBindingOutOfSync   = "BINDING_OUT_OF_SYNC"
	ErrCodeInvalidEntityID    = "INVALID_ENTITY_ID"
	ErrCodeInvalidSeed        = "INVALID_SEED"
	ErrCodeCatalogInvalid     = "CATALOG_INVALID"
	ErrCodeRandomizerInactive = "RANDOMIZER_INACTIVE"
	ErrCodeNoPendingSeed      = "NO_PENDING_SEED"

	// Database errors
	ErrCodeDatabaseError  = "DATABASE_ERROR"
	ErrCodeStateCorrupted = "STATE_CORRUPTED"
)

// RandomizerError represents an error raised by the randomizer engine.
type RandomizerError struct {
	Code    string
	Message string
	Err     error
}

func (e *RandomizerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RandomizerError) Unwrap() error {
	return e.Err
}

// NewRandomizerError creates a new RandomizerError.
func NewRandomizerError(code, message string, err error) *RandomizerError {
	return &RandomizerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsInvariantViolation reports whether err signals a corrupted bijection or an
// inconsistent catalog. Callers must abort the operation that produced it.
func IsInvariantViolation(err error) bool {
	var re *RandomizerError
	if !errors.As(err, &re) {
		return false
	}
	switch re.Code {
	case ErrCodeObjectiveNotBound, ErrCodeUnlockNotBound, ErrCodeBijectionConflict,
		ErrCodeBijectionCorrupt, ErrCodeSwapLimitExceeded, ErrCodeGenerationFailed,
		ErrCodeCatalogMismatch, ErrCodeBindingOutOfSync:
		return true
	default:
		return false
	}
}

// HasCode reports whether err is a RandomizerError carrying code.
func HasCode(err error, code string) bool {
	var re *RandomizerError
	return errors.As(err, &re) && re.Code == code
}

// Domain-specific error constructors

// ErrObjectiveNotBound returns an error when an objective has no bijection entry.
func ErrObjectiveNotBound(objectiveID string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeObjectiveNotBound,
		Message: fmt.Sprintf("objective has no bound unlock: %s", objectiveID),
	}
}

// ErrUnlockNotBound returns an error when an unlock has no bijection entry.
func ErrUnlockNotBound(unlockID string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeUnlockNotBound,
		Message: fmt.Sprintf("unlock is not bound to any objective: %s", unlockID),
	}
}

// ErrBijectionConflict returns an error when a bind would map an entity twice.
func ErrBijectionConflict(objectiveID, unlockID string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeBijectionConflict,
		Message: fmt.Sprintf("cannot bind %s to %s: one side is already bound", objectiveID, unlockID),
	}
}

// ErrBijectionCorrupt returns an error when the two bijection maps disagree.
func ErrBijectionCorrupt(reason string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeBijectionCorrupt,
		Message: fmt.Sprintf("bijection corrupt: %s", reason),
	}
}

// ErrSwapLimitExceeded returns an error when swap resolution does not settle.
func ErrSwapLimitExceeded(objectiveID string, limit int) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeSwapLimitExceeded,
		Message: fmt.Sprintf("swap resolution for %s did not settle within %d iterations", objectiveID, limit),
	}
}

// ErrBindingOutOfSync returns an error when the unlock handed to the resolver is
// not the one the bijection holds for the objective.
func ErrBindingOutOfSync(objectiveID, expected, actual string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeBindingOutOfSync,
		Message: fmt.Sprintf("objective %s is bound to %s, not %s", objectiveID, actual, expected),
	}
}

// ErrGenerationFailed returns an error when the catalog cannot produce any bijection.
func ErrGenerationFailed(phase, reason string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeGenerationFailed,
		Message: fmt.Sprintf("generation failed in %s phase: %s", phase, reason),
	}
}

// ErrCatalogMismatch returns an error when saved state references entities the
// current catalog does not contain.
func ErrCatalogMismatch(reason string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeCatalogMismatch,
		Message: fmt.Sprintf("saved state does not match catalog: %s", reason),
	}
}

// ErrInvalidEntityID returns an error when an objective or unlock ID cannot be decoded.
func ErrInvalidEntityID(id, reason string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeInvalidEntityID,
		Message: fmt.Sprintf("invalid entity id %q: %s", id, reason),
	}
}

// ErrInvalidSeed returns an error when a seed string cannot be parsed.
func ErrInvalidSeed(seed string, err error) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeInvalidSeed,
		Message: fmt.Sprintf("invalid seed %q", seed),
		Err:     err,
	}
}

// ErrCatalogInvalid returns an error for an invalid catalog.
func ErrCatalogInvalid(reason string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeCatalogInvalid,
		Message: fmt.Sprintf("invalid catalog: %s", reason),
	}
}

// ErrRandomizerInactive returns an error when an operation needs an active seed.
func ErrRandomizerInactive(operation string) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeRandomizerInactive,
		Message: fmt.Sprintf("randomizer is not active: cannot %s", operation),
	}
}

// ErrNoPendingSeed returns an error when a generation step runs with no seed started.
func ErrNoPendingSeed() *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeNoPendingSeed,
		Message: "no seed is being generated",
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrStateCorrupted returns an error when a persisted state blob cannot be decoded.
func ErrStateCorrupted(slot string, err error) *RandomizerError {
	return &RandomizerError{
		Code:    ErrCodeStateCorrupted,
		Message: fmt.Sprintf("saved state for slot %s is corrupted", slot),
		Err:     err,
	}
}
