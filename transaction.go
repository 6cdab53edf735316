package main

import (
	"database/sql"
	"fmt"
)

// TransactionFunc represents a function that operates within a database transaction
type TransactionFunc func(*sql.Tx) error

// WithTransaction executes a function within a database transaction
// It automatically handles commit/rollback based on whether the function returns an error
func (app *App) WithTransaction(fn TransactionFunc) error {
	tx, err := app.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	// Ensure transaction is always closed
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p) // Re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %v)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

// StoreError represents different types of storage errors
type StoreError struct {
	Type    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Common storage error types
const (
	ErrTypeConnection = "CONNECTION_ERROR"
	ErrTypeNotFound   = "NOT_FOUND"
	ErrTypeConstraint = "CONSTRAINT_VIOLATION"
	ErrTypeStorageIO  = "STORAGE_IO_ERROR"
)

// WrapStoreError wraps a storage error with additional context
func WrapStoreError(errType, message string, err error) *StoreError {
	return &StoreError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsNotFound reports whether err is a not-found storage error.
func IsNotFound(err error) bool {
	if se, ok := err.(*StoreError); ok {
		return se.Type == ErrTypeNotFound
	}
	return false
}
