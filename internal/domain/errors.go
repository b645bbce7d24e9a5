package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrIndustryConflict is returned when a concurrent transaction created the same
	// industry insight row first.
	ErrIndustryConflict = errors.New("industry insight already created by a concurrent request")

	// ErrUserExists is returned when a user with the same external ID already exists.
	ErrUserExists = errors.New("user already exists")
)
