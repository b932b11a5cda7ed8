package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/cashfolio/cashfolio/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for error mapping
type EntityType string

const (
	EntityTypeAccount     EntityType = "account"
	EntityTypeCard        EntityType = "card"
	EntityTypeTransaction EntityType = "transaction"
	EntityTypeBudget      EntityType = "budget"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serialization") ||
		strings.Contains(errMsg, "lock timeout"):
		return domainErr.ErrRecordLocked

	// Constraint violations
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrConstraintViolation

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return domainErr.ErrDatabaseConnection

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	default:
		return domainErr.ErrInternalServer
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeAccount:
			return domainErr.ErrAccountNotFound
		case EntityTypeCard:
			return domainErr.ErrCardNotFound
		case EntityTypeTransaction:
			return domainErr.ErrTransactionNotFound
		case EntityTypeBudget:
			return domainErr.ErrBudgetNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
