package models

import "errors"

// Sentinel errors for traversal requests.
var (
	ErrUnknownPolicy     = errors.New("unknown traversal policy")
	ErrInvalidDepth      = errors.New("max depth out of range")
	ErrTraversalTooLarge = errors.New("traversal exceeds step limit")
)
