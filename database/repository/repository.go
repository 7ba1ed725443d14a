// Package repository holds the errors shared by all entity repositories.
//
// Every mutation of a shared field (request status, wallet balance, daily
// acceptance counter) is expressed as a single conditional update whose
// precondition lives in the store filter. A conditional update that matches
// nothing reports ErrConflict; the service layer decides whether that means
// a lost race, a state conflict, or insufficient funds.
package repository

import "errors"

var (
	// ErrNotFound reports an unknown identifier.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a conditional update whose precondition no longer
	// held at execution time.
	ErrConflict = errors.New("precondition failed")

	// ErrDuplicate reports a uniqueness violation (e.g. email already taken).
	ErrDuplicate = errors.New("record already exists")
)
