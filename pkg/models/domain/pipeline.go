package domain

import (
	"errors"
	"fmt"
)

// Stage identifies one step of the report pipeline.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageExtracting  Stage = "extracting"
	StageAggregating Stage = "aggregating"
	StageRendering   Stage = "rendering"
	StageDelivering  Stage = "delivering"
	StageSkipped     Stage = "skipped"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// ErrorKind classifies a stage failure for logging and diagnostics.
type ErrorKind string

const (
	ErrStoreUnavailable ErrorKind = "store_unavailable"
	ErrQuery            ErrorKind = "query_error"
	ErrOutputWrite      ErrorKind = "output_write_error"
	ErrAuthentication   ErrorKind = "authentication_error"
	ErrNetwork          ErrorKind = "network_error"
	ErrAttachment       ErrorKind = "attachment_error"
)

// ClassifiedError tags an underlying failure with its kind so the
// orchestrator can log it without inspecting component internals.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Classify wraps err with the given kind.
func Classify(kind ErrorKind, err error) error {
	return &ClassifiedError{Kind: kind, Err: err}
}

// KindOf returns the kind attached to err, or "" when it carries none.
func KindOf(err error) ErrorKind {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
