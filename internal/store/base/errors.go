package base

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

type DuplicateKey struct {
	nested error
}

func NewDuplicateKey(err error) *DuplicateKey {
	return &DuplicateKey{err}
}

func (e *DuplicateKey) Error() string {
	return e.nested.Error()
}

func (e *DuplicateKey) Unwrap() error {
	return e.nested
}

func IsDuplicateKey(err error) bool {
	duplicateKey := &DuplicateKey{}
	return errors.As(err, &duplicateKey)
}

// StoreUnavailable marks a failed read or write against the record store.
type StoreUnavailable struct {
	Op     string
	nested error
}

func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreUnavailable{Op: op, nested: err}
}

func (e *StoreUnavailable) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.nested)
}

func (e *StoreUnavailable) Unwrap() error {
	return e.nested
}

func IsStoreUnavailable(err error) bool {
	unavailable := &StoreUnavailable{}
	return errors.As(err, &unavailable)
}
