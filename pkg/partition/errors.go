package partition

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when a node has never been registered.
var ErrNodeNotFound = errors.New("node not found")

// NodeError reports a failed operation on a single node.
type NodeError struct {
	Op    string // Operation that failed (e.g., "find", "intra-degree")
	Node  int
	Cause error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("%s node %d: %v", e.Op, e.Node, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *NodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *NodeError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NodeNotFoundError creates a not-found error for the given operation.
func NodeNotFoundError(op string, node int) error {
	return &NodeError{Op: op, Node: node, Cause: ErrNodeNotFound}
}

// IsNotFound returns true if err is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}

// SaveError identifies the report file that could not be written.
type SaveError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SaveError) Unwrap() error {
	return e.Cause
}
