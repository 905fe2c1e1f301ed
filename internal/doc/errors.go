package doc

import "errors"

// Errors returned by document operations.
var (
	// ErrInvalidPosition indicates a position outside the document or
	// not at a valid node or insertion boundary.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNodeNotFound indicates no node starts at the given position.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNotColumnSet indicates a column operation targeted a node
	// that is not a column set.
	ErrNotColumnSet = errors.New("node is not a column set")

	// ErrEmptyTransaction indicates an Apply call with no steps.
	ErrEmptyTransaction = errors.New("empty transaction")
)
