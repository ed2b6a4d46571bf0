package entity

import "errors"

// Sentinel errors returned (wrapped) by repositories. Use errors.Is to test for them.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConfiguration     = errors.New("invalid configuration")
)
