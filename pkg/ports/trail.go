package ports

import "context"

// ActiveTrailProvider hands out the active trail of the current request.
type ActiveTrailProvider interface {
	// ActiveTrailIDs returns node-first ids: index 0 is the current node,
	// increasing index are ancestors, terminated by the RootID sentinel.
	ActiveTrailIDs(ctx context.Context, menuName string) ([]string, error)
}

// ActiveTrailFunc adapts a function to ActiveTrailProvider.
type ActiveTrailFunc func(ctx context.Context, menuName string) ([]string, error)

// ActiveTrailIDs calls f.
func (f ActiveTrailFunc) ActiveTrailIDs(ctx context.Context, menuName string) ([]string, error) {
	return f(ctx, menuName)
}
