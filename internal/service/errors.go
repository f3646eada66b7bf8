package service

import (
	"database/sql"
	"errors"
)

// StoreError is a failure of the underlying store. Its message is the store's own.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
