package domain

import (
	"errors"
	"fmt"
)

// ErrMenuNotFound is returned by a store that does not know the requested menu.
var ErrMenuNotFound = errors.New("menu not found")

// ErrLinkNotFound is returned when a link id cannot be found in the store.
var ErrLinkNotFound = errors.New("menu link not found")

// ErrUnknownRelation is returned for relation names outside Relations.
var ErrUnknownRelation = errors.New("unknown relation")

// ErrUnknownManipulator is returned when a transform pipeline names an unregistered manipulator.
var ErrUnknownManipulator = errors.New("unknown tree manipulator")

// ErrInvalidParameters is returned for inconsistent load parameters.
var ErrInvalidParameters = errors.New("invalid load parameters")

// LoadError wraps a Tree Loader failure with the load it was serving.
type LoadError struct {
	Menu  string
	Root  string
	Cause error
}

func (e *LoadError) Error() string {
	root := e.Root
	if root == RootID {
		root = "<root>"
	}
	return fmt.Sprintf("failed to load menu %s at %s: %v", e.Menu, root, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
