package domain

import "errors"

// Common domain errors returned by repositories.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")
)
