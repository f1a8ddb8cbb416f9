package http

import (
	"context"
	"fmt"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

type trailKey struct{}

// ContextWithTrail attaches a node-first active trail to ctx.
func ContextWithTrail(ctx context.Context, ids []string) context.Context {
	return context.WithValue(ctx, trailKey{}, ids)
}

// ContextTrail implements ports.ActiveTrailProvider from the trail attached
// to the request context, falling back to Fallback, then to the bare root.
type ContextTrail struct {
	Fallback ports.ActiveTrailProvider
}

// ActiveTrailIDs implements ports.ActiveTrailProvider.
func (c ContextTrail) ActiveTrailIDs(ctx context.Context, menuName string) ([]string, error) {
	if ids, ok := ctx.Value(trailKey{}).([]string); ok {
		return append([]string(nil), ids...), nil
	}
	if c.Fallback != nil {
		return c.Fallback.ActiveTrailIDs(ctx, menuName)
	}
	return []string{domain.RootID}, nil
}

// TrailOf returns the node-first active trail of the link current: the link,
// its ancestors and the root. An empty current is the bare root.
func TrailOf(ctx context.Context, links ports.LinkManager, current string) ([]string, error) {
	if current == "" {
		return []string{domain.RootID}, nil
	}
	if links == nil {
		return nil, fmt.Errorf("cannot resolve %q: no link manager", current)
	}
	ids, err := links.ParentIDs(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("link %q: %w", current, err)
	}
	return append(ids, domain.RootID), nil
}
