// Package operr defines the typed error taxonomy shared by every tool
// operation. Each error message is prefixed with the operation name so a
// calling agent can surface actionable text without inspecting error codes.
package operr

import "fmt"

// ValidationError reports malformed or missing arguments. It is always
// raised before any host mutation.
type ValidationError struct {
	Op  string
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// NotFoundError reports an id that does not resolve to a live object.
type NotFoundError struct {
	Op string
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no object exists for id %q", e.Op, e.ID)
}

// TypeMismatchError reports an object that resolved but is the wrong kind.
type TypeMismatchError struct {
	Op   string
	ID   string
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: id %q is a %s, expected a %s", e.Op, e.ID, e.Got, e.Want)
}

// FormatError reports malformed bar|beat or bar:beat text.
type FormatError struct {
	Op    string
	Input string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: invalid time notation %q: %s", e.Op, e.Input, e.Msg)
}

// RangeError reports a numeric argument outside its contractual bounds.
type RangeError struct {
	Op    string
	Field string
	Value float64
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s %v out of range: %s", e.Op, e.Field, e.Value, e.Msg)
}

// LimitExceededError reports a slice/tile request that would create more
// clip segments than the safety ceiling allows. It is raised pre-flight,
// before any mutation for the offending clip.
type LimitExceededError struct {
	Op        string
	Requested int
	Limit     int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("%s: operation would create %d clip segments, exceeding the limit of %d", e.Op, e.Requested, e.Limit)
}

// UnsupportedOperationError reports a structurally invalid combination,
// e.g. duplicating an arrangement clip into a session slot.
type UnsupportedOperationError struct {
	Op  string
	Msg string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
