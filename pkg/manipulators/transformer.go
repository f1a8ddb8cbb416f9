package manipulators

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

// Names of the built-in manipulators.
const (
	CheckNodeAccess      = "checkNodeAccess"
	CheckAccess          = "checkAccess"
	FilterDisabled       = "filterDisabled"
	GenerateIndexAndSort = "generateIndexAndSort"
)

// Standard returns the pipeline applied to a tree before it is displayed.
func Standard() []string {
	return []string{CheckNodeAccess, CheckAccess, GenerateIndexAndSort}
}

// NodeRoute is the route name of links that point at a content node.
// The node id is read from the route parameter named "node".
const NodeRoute = "entity.node.canonical"

// Manipulator transforms a tree. It may modify the tree in place.
type Manipulator func(ctx context.Context, tree domain.Tree) (domain.Tree, error)

// Transformer applies named manipulators in order.
type Transformer struct {
	mu           sync.RWMutex
	manipulators map[string]Manipulator
	access       ports.AccessChecker
	nodeAccess   ports.NodeAccessChecker
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithAccessChecker sets the per-link policy used by checkAccess.
func WithAccessChecker(c ports.AccessChecker) Option {
	return func(t *Transformer) {
		t.access = c
	}
}

// WithNodeAccessChecker sets the content policy used by checkNodeAccess.
func WithNodeAccessChecker(c ports.NodeAccessChecker) Option {
	return func(t *Transformer) {
		t.nodeAccess = c
	}
}

// New creates a Transformer with the built-in manipulators registered.
// Without checkers every link is allowed.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		manipulators: make(map[string]Manipulator),
		access:       ports.AllowAll{},
		nodeAccess:   ports.AllowAll{},
	}
	for _, opt := range opts {
		opt(t)
	}

	t.manipulators[CheckNodeAccess] = t.checkNodeAccess
	t.manipulators[CheckAccess] = t.checkAccess
	t.manipulators[FilterDisabled] = filterDisabled
	t.manipulators[GenerateIndexAndSort] = generateIndexAndSort
	return t
}

// Register adds or replaces a named manipulator.
func (t *Transformer) Register(name string, m Manipulator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.manipulators[name] = m
}

// Transform applies the pipeline to a copy of tree. The input is left untouched.
func (t *Transformer) Transform(ctx context.Context, tree domain.Tree, pipeline ...string) (domain.Tree, error) {
	steps := make([]Manipulator, 0, len(pipeline))
	t.mu.RLock()
	for _, name := range pipeline {
		m, ok := t.manipulators[name]
		if !ok {
			t.mu.RUnlock()
			return domain.Tree{}, fmt.Errorf("%w: %s", domain.ErrUnknownManipulator, name)
		}
		steps = append(steps, m)
	}
	t.mu.RUnlock()

	out := tree.Clone()
	for i, step := range steps {
		var err error
		out, err = step(ctx, out)
		if err != nil {
			return domain.Tree{}, fmt.Errorf("manipulator %s: %w", pipeline[i], err)
		}
	}
	return out, nil
}

func (t *Transformer) checkNodeAccess(ctx context.Context, tree domain.Tree) (domain.Tree, error) {
	var ids []string
	collectNodeIDs(tree, &ids)
	if len(ids) == 0 {
		return tree, nil
	}

	allowed, err := t.nodeAccess.CheckNodeAccess(ctx, ids)
	if err != nil {
		return domain.Tree{}, err
	}
	return applyNodeAccess(tree, allowed), nil
}

func collectNodeIDs(tree domain.Tree, ids *[]string) {
	for _, el := range tree.All() {
		if id, ok := nodeID(el.Link); ok {
			*ids = append(*ids, id)
		}
		collectNodeIDs(el.Subtree, ids)
	}
}

func applyNodeAccess(tree domain.Tree, allowed map[string]bool) domain.Tree {
	var out domain.Tree
	for key, el := range tree.All() {
		if id, ok := nodeID(el.Link); ok {
			if !allowed[id] {
				continue
			}
			el.SetAccess(true)
		}
		el.Subtree = applyNodeAccess(el.Subtree, allowed)
		out.Set(key, el)
	}
	return out
}

func nodeID(link domain.Link) (string, bool) {
	if link.RouteName != NodeRoute {
		return "", false
	}
	id, ok := link.RouteParameters["node"]
	return id, ok && id != ""
}

func (t *Transformer) checkAccess(ctx context.Context, tree domain.Tree) (domain.Tree, error) {
	var out domain.Tree
	for key, el := range tree.All() {
		if el.Access == nil {
			ok, err := t.access.CheckAccess(ctx, el.Link)
			if err != nil {
				return domain.Tree{}, fmt.Errorf("link %s: %w", el.Link.ID, err)
			}
			el.SetAccess(ok)
		}
		if !el.AccessGranted() {
			continue
		}

		sub, err := t.checkAccess(ctx, el.Subtree)
		if err != nil {
			return domain.Tree{}, err
		}
		el.Subtree = sub
		out.Set(key, el)
	}
	return out, nil
}

func filterDisabled(_ context.Context, tree domain.Tree) (domain.Tree, error) {
	return dropDisabled(tree), nil
}

func dropDisabled(tree domain.Tree) domain.Tree {
	var out domain.Tree
	for key, el := range tree.All() {
		if !el.Link.Enabled {
			continue
		}
		el.Subtree = dropDisabled(el.Subtree)
		out.Set(key, el)
	}
	return out
}

func generateIndexAndSort(_ context.Context, tree domain.Tree) (domain.Tree, error) {
	return sortTree(tree), nil
}

// sortTree orders every level by weight, then title, then id.
func sortTree(tree domain.Tree) domain.Tree {
	elements := tree.Elements()
	keys := tree.Keys()
	index := make([]int, len(keys))
	for i := range index {
		index[i] = i
	}
	sort.SliceStable(index, func(i, j int) bool {
		a, b := elements[index[i]].Link, elements[index[j]].Link
		if a.Weight != b.Weight {
			return a.Weight < b.Weight
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ID < b.ID
	})

	var out domain.Tree
	for _, i := range index {
		el := elements[i]
		el.Subtree = sortTree(el.Subtree)
		out.Set(keys[i], el)
	}
	return out
}
