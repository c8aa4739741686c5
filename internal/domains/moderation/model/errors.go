package model

import "errors"

var (
	// ErrEntryNotFound means no moderation entry exists for the id.
	ErrEntryNotFound = errors.New("moderation entry not found")

	// ErrSubjectNotFound means an update or deletion was submitted
	// against a canonical subject that does not exist.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrAlreadyDecided means a decision raced: the entry left PENDING
	// before this decision committed. The losing transaction is rolled
	// back in full.
	ErrAlreadyDecided = errors.New("entry has already been decided")

	// ErrVersionConflict means two submissions raced on the same
	// subject key and version number. Retryable.
	ErrVersionConflict = errors.New("submission version conflict")

	// ErrUnauthorized means the caller's role does not permit the
	// operation.
	ErrUnauthorized = errors.New("insufficient role for this operation")
)
