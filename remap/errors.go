package remap

import "fmt"

// Position represents a source location in JSON text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError represents a parsing error with location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("remap: %s at %s", e.Message, e.Pos)
}

// KeyNotFoundError reports a binding key whose path resolved to absent.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("remap: key %q not found", e.Key)
}

// TypeMismatchError reports a value that was present but had the wrong shape
// for the bound field.
type TypeMismatchError struct {
	Key  string
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("remap: key %q: expected %s, got %s", e.Key, e.Want, e.Got)
}

// TransformError reports a transform that declined a value.
type TransformError struct {
	Key       string
	Direction Direction
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("remap: key %q: %s transform failed", e.Key, e.Direction)
}
