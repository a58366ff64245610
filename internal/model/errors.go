package model

import "errors"

// Common errors used across the application
var (
	// ErrInvalidInput means the caller supplied an unsatisfiable request,
	// e.g. a registration with neither a student id nor an NFC id
	ErrInvalidInput = errors.New("invalid input")

	// ErrStudentNotFound means an identity lookup yielded no student
	ErrStudentNotFound = errors.New("student not found")

	// ErrProtocolViolation means the server response structurally violated
	// a port's contract, e.g. a login response without a token
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrSubmissionPending means an attendance submission for the same
	// student is still in flight
	ErrSubmissionPending = errors.New("attendance submission already in flight for student")
)
