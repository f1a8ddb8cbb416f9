package domain

import "fmt"

// LoadParameters describes which part of a menu a Tree Loader returns.
// Values are immutable: every With* method returns a modified copy.
type LoadParameters struct {
	// Root is the link whose children are loaded; RootID loads the top level.
	Root string `json:"root"`

	// ActiveTrail is node-first, as handed out by the active trail provider.
	ActiveTrail []string `json:"active_trail,omitempty"`

	OnlyEnabled bool `json:"only_enabled"`

	// MinDepth and MaxDepth are 1-based levels below Root. A MinDepth of 0 is
	// treated as 1; a MaxDepth of 0 means unlimited.
	MinDepth int `json:"min_depth"`
	MaxDepth int `json:"max_depth"`
}

// NewLoadParameters returns parameters rooted at root with no depth limits.
func NewLoadParameters(root string) LoadParameters {
	return LoadParameters{Root: root}
}

// WithActiveTrail sets the node-first active trail.
func (p LoadParameters) WithActiveTrail(ids []string) LoadParameters {
	p.ActiveTrail = append([]string(nil), ids...)
	return p
}

// WithOnlyEnabled excludes disabled links from the load.
func (p LoadParameters) WithOnlyEnabled() LoadParameters {
	p.OnlyEnabled = true
	return p
}

// WithMinDepth sets the first level returned.
func (p LoadParameters) WithMinDepth(depth int) LoadParameters {
	p.MinDepth = depth
	return p
}

// WithMaxDepth sets the last level returned.
func (p LoadParameters) WithMaxDepth(depth int) LoadParameters {
	p.MaxDepth = depth
	return p
}

// EffectiveMinDepth returns the first 1-based level to keep.
func (p LoadParameters) EffectiveMinDepth() int {
	if p.MinDepth < 1 {
		return 1
	}
	return p.MinDepth
}

// InActiveTrail reports whether id is part of the active trail.
func (p LoadParameters) InActiveTrail(id string) bool {
	if id == RootID {
		return false
	}
	for _, v := range p.ActiveTrail {
		if v == id {
			return true
		}
	}
	return false
}

// Validate checks the depth range.
func (p LoadParameters) Validate() error {
	if p.MinDepth < 0 || p.MaxDepth < 0 {
		return fmt.Errorf("%w: negative depth (min=%d, max=%d)", ErrInvalidParameters, p.MinDepth, p.MaxDepth)
	}
	if p.MaxDepth != 0 && p.MaxDepth < p.MinDepth {
		return fmt.Errorf("%w: max depth %d is below min depth %d", ErrInvalidParameters, p.MaxDepth, p.MinDepth)
	}
	return nil
}
