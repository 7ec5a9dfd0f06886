package domain

import "errors"

// Sentinel errors shared across layers.
var (
	// ErrEmptyContent rejects blank or whitespace-only content before
	// anything is written.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrInvalidQuestionUUID rejects a malformed question reference. The
	// text is printed verbatim to the user after cobra's "Error: " prefix.
	ErrInvalidQuestionUUID = errors.New("Invalid question UUID format")

	// ErrStorage marks directory, create, or append failures.
	ErrStorage = errors.New("storage access failed")

	// ErrCorruptRow marks a stored row that cannot be decoded.
	ErrCorruptRow = errors.New("corrupt row")
)
