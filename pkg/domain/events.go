package domain

import (
	"context"
	"time"
)

// Reason explains why a selection came out the way it did.
type Reason string

const (
	// ReasonFound means the relation exists and the tree holds it.
	ReasonFound Reason = "found"
	// ReasonNoTrail means neither the anchor entity nor the active trail gave a position.
	ReasonNoTrail Reason = "no_trail"
	// ReasonShallowTrail means the trail is too short for the relation.
	ReasonShallowTrail Reason = "shallow_trail"
	// ReasonNotFound means the loaded tree does not hold the relative.
	ReasonNotFound Reason = "not_found"
)

// Selection is the answer of a positional selector with its explanation.
type Selection struct {
	Relation Relation `json:"relation"`
	Trail    Trail    `json:"trail"`
	Tree     Tree     `json:"tree"`
	Reason   Reason   `json:"reason"`
}

// Empty reports whether the selection holds no element.
func (s Selection) Empty() bool {
	return s.Tree.IsEmpty()
}

// SelectionEvent is emitted after every selection.
type SelectionEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Menu      string        `json:"menu"`
	Relation  Relation      `json:"relation"`
	Reason    Reason        `json:"reason"`
	Size      int           `json:"size"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LoadEvent is emitted after every Tree Loader call.
type LoadEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Menu      string        `json:"menu"`
	Root      string        `json:"root"`
	Size      int           `json:"size"`
	Duration  time.Duration `json:"duration"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for navigator observability.
type LifecycleHooks struct {
	OnSelect func(context.Context, *SelectionEvent)
	OnLoad   func(context.Context, *LoadEvent)
}
