package models

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotFoundError marks a lookup of an entity that does not exist. Handlers
// surface it as a 404.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

// InsufficientStockError names the inventory item whose deduction would have
// driven quantity-on-hand below zero. The whole reservation is unwound before
// this is returned, no partial deduction survives.
type InsufficientStockError struct {
	ItemID    uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for item %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// ConcurrencyConflictError reports a lost race on shared state. The caller
// may safely retry the whole operation.
type ConcurrencyConflictError struct {
	Resource string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrent update conflict on %s, retry the operation", e.Resource)
}

// PersistenceError wraps a storage collaborator failure. Mutating operations
// are never retried automatically; the caller decides.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// IsConcurrencyConflict reports whether err is a ConcurrencyConflictError.
func IsConcurrencyConflict(err error) bool {
	var cc *ConcurrencyConflictError
	return errors.As(err, &cc)
}

// IsValidation reports whether err carries accumulated field validation
// errors (ozzo validation.Errors).
func IsValidation(err error) bool {
	var ve validation.Errors
	return errors.As(err, &ve)
}
