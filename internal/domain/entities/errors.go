package entities

import (
	"errors"
	"fmt"
)

// ErrEmptyPlan is returned when a content plan holds no slides
var ErrEmptyPlan = &EmptyPlanError{}

// ValidationError reports a structurally invalid input such as a blank slide title
type ValidationError struct {
	// Index is the slide position the error refers to, or -1 for plan/topic level errors
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("validation failed for slide %d: %s %s", e.Index+1, e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// EmptyPlanError is returned when assembly is attempted on a plan with zero slides
type EmptyPlanError struct{}

func (e *EmptyPlanError) Error() string {
	return "content plan has no slides"
}

// Is lets errors.Is match any *EmptyPlanError against ErrEmptyPlan
func (e *EmptyPlanError) Is(target error) bool {
	_, ok := target.(*EmptyPlanError)
	return ok
}

// AssemblyError wraps the failure that aborted a deck assembly
type AssemblyError struct {
	// Index is the slide that failed, or -1 when the failure is not slide specific
	Index int
	Cause error
}

func (e *AssemblyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("assembling deck: slide %d: %v", e.Index+1, e.Cause)
	}
	return fmt.Sprintf("assembling deck: %v", e.Cause)
}

func (e *AssemblyError) Unwrap() error {
	return e.Cause
}

// ExternalServiceError reports a network, auth or quota failure in a remote collaborator
type ExternalServiceError struct {
	Service string
	Message string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s service error: %s: %v", e.Service, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s service error: %s", e.Service, e.Message)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError reports generated output that could not be turned into slides
type MalformedResponseError struct {
	Reason string
	// Raw holds the offending response, possibly shortened
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Reason
}

// ThemeNotFoundError is returned when a theme name is not registered
type ThemeNotFoundError struct {
	Name string
}

func (e *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("theme '%s' not found", e.Name)
}

// IsClientError reports whether err was caused by bad user input rather than a failing dependency
func IsClientError(err error) bool {
	var validationErr *ValidationError
	var themeErr *ThemeNotFoundError
	return errors.As(err, &validationErr) || errors.As(err, &themeErr) || errors.Is(err, ErrEmptyPlan)
}
