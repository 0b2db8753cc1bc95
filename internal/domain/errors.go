package domain

import (
	"errors"
	"fmt"
	"time"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError is the InvalidArgument kind.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field != "" && e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "validation error"
}

// UnavailableError means the flight never had room for the request.
type UnavailableError struct {
	Requested int
	Available int
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("insufficient seats: requested %d, only %d available", e.Requested, e.Available)
}

// ConflictError means the request lost a race for the same seats.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Resource != "" && e.Msg != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type CancellationDeniedError struct {
	Deadline time.Time
}

func (e CancellationDeniedError) Error() string {
	return fmt.Sprintf("cancellation not possible: deadline %s has passed", e.Deadline.Format(time.RFC3339))
}

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "internal error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsCancellationDenied(err error) bool {
	var target CancellationDeniedError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
