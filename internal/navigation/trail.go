package navigation

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/menutrail/pkg/domain"
)

// ResolveEntityTrail looks for a link of menuName bound to the anchor entity.
// It returns the node-first trail (link, ancestors, RootID sentinel) and true
// on a match. Candidates are the node's menu defaults first, then menu_link
// fields in declaration order; the first link of menuName wins.
func (n *Navigator) ResolveEntityTrail(ctx context.Context, menuName string, anchor *domain.AnchorEntity) ([]string, bool, error) {
	if anchor == nil || !anchor.Fieldable || n.links == nil {
		return nil, false, nil
	}

	if anchor.TypeID == domain.EntityTypeNode && anchor.MenuDefaults != nil {
		d := anchor.MenuDefaults
		if d.MenuName == menuName && d.LinkID != "" {
			ids, ok, err := n.linkTrail(ctx, d.LinkID)
			if err != nil || ok {
				return ids, ok, err
			}
		}
	}

	for _, field := range anchor.Fields {
		if field.Type != domain.FieldTypeMenuLink || len(field.MenuLinkIDs) == 0 {
			continue
		}
		id := field.MenuLinkIDs[0]

		link, err := n.links.Definition(ctx, id)
		if errors.Is(err, domain.ErrLinkNotFound) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if link.MenuName != menuName {
			continue
		}

		ids, ok, err := n.linkTrail(ctx, id)
		if err != nil || ok {
			return ids, ok, err
		}
	}

	return nil, false, nil
}

func (n *Navigator) linkTrail(ctx context.Context, id string) ([]string, bool, error) {
	ids, err := n.links.ParentIDs(ctx, id)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("parents of %s: %w", id, err)
	}
	return append(ids, domain.RootID), true, nil
}

// Position is the resolved input of every selector.
type Position struct {
	// Trail is root-first.
	Trail domain.Trail
	// Active is the provider's node-first active trail, passed to every load.
	Active []string
	// FromEntity reports whether Trail came from the anchor entity.
	FromEntity bool
}

// Resolve computes the position of the request inside menuName: the anchor
// entity trail when one matches, the active trail otherwise.
func (n *Navigator) Resolve(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (Position, error) {
	active, err := n.trails.ActiveTrailIDs(ctx, menuName)
	if err != nil {
		return Position{}, fmt.Errorf("active trail of %s: %w", menuName, err)
	}

	ids, ok, err := n.ResolveEntityTrail(ctx, menuName, anchor)
	if err != nil {
		return Position{}, err
	}
	if !ok {
		return Position{Trail: domain.TrailFromActive(active), Active: active}, nil
	}
	return Position{Trail: domain.TrailFromActive(ids), Active: active, FromEntity: true}, nil
}
