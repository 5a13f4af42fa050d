package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDocument guards operations invoked before a successful Load.
var ErrNoDocument = errors.New("no document loaded")

// ParseError reports that input text could not be loaded as a checklist
// document: either the JSON itself is malformed or the top-level shape
// lacks the required metadata/requirements objects. No partial document
// is retained when Load fails with it.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Err)
	}
	return "parse error: " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError collects every required-field violation of a draft so a
// caller can present them all at once instead of one per attempt.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NotFoundError reports an operation against a requirement or taxonomy node
// key that is not in the current document, typically stale caller state.
type NotFoundError struct {
	Kind string // "requirement" or "node"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// SerializationError reports an unexpected encoding failure during export.
// Missing-field cases are handled by defaulting, so this only surfaces
// genuinely unencodable state.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization failed: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
