package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound      = errors.New("task not found")
	ErrUnknownColumn = errors.New("unknown column")
)

// StoreError represents a failure from the task store.
type StoreError struct {
	Op     string // Operation: "get-all", "create", "update", "move", "archive"
	TaskID string // Optional: specific task ID
	Err    error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.TaskID, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
