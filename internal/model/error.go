package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrAuthRequired       = errors.New("authentication required")
	ErrRemote             = errors.New("remote error")
	ErrNetwork            = errors.New("network error")
	ErrCardValidation     = errors.New("card details incomplete or invalid")
	ErrGatewayDeclined    = errors.New("payment declined")
	ErrPaymentCancelled   = errors.New("payment cancelled")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
	ErrSecretMismatch     = errors.New("payment secret does not belong to this checkout")
	ErrCourseNotFound     = errors.New("course not found")
)

// RemoteError is a non-2xx answer from the course API.
// Message holds the server-supplied text when there was one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: status %d", e.Status)
	}
	return fmt.Sprintf("remote error: status %d: %s", e.Status, e.Message)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

var ErrCheckoutOpen = errors.New("a checkout for this course is already open")
