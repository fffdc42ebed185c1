package service

import "strings"

// ValidationError aggregates every complaint about a request into one error
// so the client sees the full list in a single round trip.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
