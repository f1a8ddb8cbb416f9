package domain

import (
	"fmt"
	"strings"
)

// Relation selects which positional view of a node is computed.
type Relation string

const (
	RelationChildren Relation = "children"
	RelationParent   Relation = "parent"
	RelationSiblings Relation = "siblings"
	RelationNext     Relation = "next"
	RelationPrevious Relation = "previous"
)

// Relations lists every supported relation.
var Relations = []Relation{
	RelationChildren,
	RelationParent,
	RelationSiblings,
	RelationNext,
	RelationPrevious,
}

func (r Relation) String() string {
	return string(r)
}

// MinDepth is the smallest trail depth for which the relation can exist.
func (r Relation) MinDepth() int {
	switch r {
	case RelationParent:
		return 2
	case RelationNext, RelationPrevious:
		return 1
	default:
		return 0
	}
}

// ParseRelation accepts a relation name, case-insensitively.
// "sibling" and "prev" are accepted as aliases.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "children", "child":
		return RelationChildren, nil
	case "parent":
		return RelationParent, nil
	case "siblings", "sibling":
		return RelationSiblings, nil
	case "next":
		return RelationNext, nil
	case "previous", "prev":
		return RelationPrevious, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRelation, s)
}
