package navigation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/manipulators"
)

var (
	childrenPipeline = []string{
		manipulators.CheckNodeAccess,
		manipulators.FilterDisabled,
		manipulators.CheckAccess,
		manipulators.GenerateIndexAndSort,
	}
	relativesPipeline = []string{
		manipulators.CheckAccess,
		manipulators.GenerateIndexAndSort,
	}
)

// Select resolves the position of the request and computes relation over it.
func (n *Navigator) Select(ctx context.Context, rel domain.Relation, menuName string, anchor *domain.AnchorEntity) (domain.Selection, error) {
	pos, err := n.Resolve(ctx, menuName, anchor)
	if err != nil {
		return domain.Selection{Relation: rel}, err
	}
	return n.SelectAt(ctx, rel, menuName, pos)
}

// SelectAt computes relation for an already resolved position.
func (n *Navigator) SelectAt(ctx context.Context, rel domain.Relation, menuName string, pos Position) (domain.Selection, error) {
	start := time.Now()

	var (
		sel domain.Selection
		err error
	)
	switch rel {
	case domain.RelationChildren:
		sel, err = n.children(ctx, menuName, pos)
	case domain.RelationParent:
		sel, err = n.parent(ctx, menuName, pos)
	case domain.RelationSiblings:
		sel, err = n.siblings(ctx, menuName, pos)
	case domain.RelationNext:
		sel, err = n.neighbour(ctx, menuName, pos, false)
	case domain.RelationPrevious:
		sel, err = n.neighbour(ctx, menuName, pos, true)
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnknownRelation, rel)
	}
	sel.Relation = rel
	sel.Trail = pos.Trail

	n.logger.DebugContext(ctx, "selection",
		"menu", menuName,
		"relation", rel,
		"depth", pos.Trail.Depth(),
		"reason", sel.Reason,
		"size", sel.Tree.Len(),
		"error", err,
	)
	if n.hooks.OnSelect != nil {
		n.hooks.OnSelect(ctx, &domain.SelectionEvent{
			Timestamp: start,
			Menu:      menuName,
			Relation:  rel,
			Reason:    sel.Reason,
			Size:      sel.Tree.Len(),
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	if err != nil {
		return domain.Selection{Relation: rel, Trail: pos.Trail}, err
	}
	return sel, nil
}

// Neighbours computes next and previous concurrently over one resolved position.
func (n *Navigator) Neighbours(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (next, previous domain.Selection, err error) {
	pos, err := n.Resolve(ctx, menuName, anchor)
	if err != nil {
		return next, previous, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		next, err = n.SelectAt(gctx, domain.RelationNext, menuName, pos)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = n.SelectAt(gctx, domain.RelationPrevious, menuName, pos)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Selection{}, domain.Selection{}, err
	}
	return next, previous, nil
}

func found(tree domain.Tree) domain.Selection {
	if tree.IsEmpty() {
		return domain.Selection{Reason: domain.ReasonNotFound}
	}
	return domain.Selection{Tree: tree, Reason: domain.ReasonFound}
}

func (n *Navigator) children(ctx context.Context, menuName string, pos Position) (domain.Selection, error) {
	current, ok := pos.Trail.Current()
	if !ok {
		return domain.Selection{Reason: domain.ReasonNoTrail}, nil
	}
	if current == domain.RootID {
		current = n.frontPage
	}

	tree, err := n.loadLevel(ctx, menuName, current, pos.Active, childrenPipeline...)
	if err != nil {
		return domain.Selection{}, err
	}
	return found(tree), nil
}

func (n *Navigator) parent(ctx context.Context, menuName string, pos Position) (domain.Selection, error) {
	if pos.Trail.Depth() < domain.RelationParent.MinDepth() {
		return n.shallow(pos), nil
	}
	parent, _ := pos.Trail.Parent()
	grandparent, _ := pos.Trail.Grandparent()

	tree, err := n.loadLevel(ctx, menuName, grandparent, pos.Active, relativesPipeline...)
	if err != nil {
		return domain.Selection{}, err
	}

	_, el := tree.Find(parent)
	if el == nil {
		return found(domain.Tree{}), nil
	}
	out := domain.Tree{}
	out.Set(parent, el)
	return found(out), nil
}

func (n *Navigator) siblings(ctx context.Context, menuName string, pos Position) (domain.Selection, error) {
	if pos.Trail.Depth() < domain.RelationSiblings.MinDepth() {
		return domain.Selection{Reason: domain.ReasonNoTrail}, nil
	}
	parent, ok := pos.Trail.Parent()
	if !ok {
		parent = domain.RootID
	}

	tree, err := n.loadLevel(ctx, menuName, parent, pos.Active, relativesPipeline...)
	if err != nil {
		return domain.Selection{}, err
	}
	return found(tree), nil
}

// neighbour returns the element after the current one, or before it when
// backwards is set, keyed by the current node's id.
func (n *Navigator) neighbour(ctx context.Context, menuName string, pos Position, backwards bool) (domain.Selection, error) {
	if pos.Trail.Depth() < domain.RelationNext.MinDepth() {
		return n.shallow(pos), nil
	}
	current, _ := pos.Trail.Current()
	parent, _ := pos.Trail.Parent()

	tree, err := n.loadLevel(ctx, menuName, parent, pos.Active, relativesPipeline...)
	if err != nil {
		return domain.Selection{}, err
	}

	// next scans from the end so the last element seen before the current one
	// is its successor; previous scans from the start.
	scan := tree.Backward()
	if backwards {
		scan = tree.All()
	}

	var last *domain.Element
	for _, el := range scan {
		if el.Link.PluginID() == current {
			if last == nil {
				break
			}
			out := domain.Tree{}
			out.Set(current, last)
			return found(out), nil
		}
		last = el
	}
	return found(domain.Tree{}), nil
}

func (n *Navigator) shallow(pos Position) domain.Selection {
	if pos.Trail.Depth() < 0 {
		return domain.Selection{Reason: domain.ReasonNoTrail}
	}
	return domain.Selection{Reason: domain.ReasonShallowTrail}
}
