package repository

import (
	"strings"
)

// ErrorClassifier inspects driver error text to distinguish lock contention
// from constraint violations. Postgres drivers do not expose stable error
// types for these, so matching on the message is the practical option.
type ErrorClassifier struct{}

func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsLockError reports whether the error was caused by lock contention or a
// serialization conflict. These are retryable at the unit-of-work level.
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "serialization failure")
}

// IsConstraintError reports whether the error was caused by a schema
// constraint violation (unique, foreign key, not null, check).
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "violates") ||
		strings.Contains(msg, "foreign key") ||
		strings.Contains(msg, "not null") ||
		c.IsDuplicateKeyError(err)
}

// IsDuplicateKeyError reports whether the error was caused by a unique key
// collision.
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry")
}
