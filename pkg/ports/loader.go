package ports

import (
	"context"

	"github.com/aretw0/menutrail/pkg/domain"
)

// TreeLoader defines how the navigator retrieves menu trees.
// This allows the storage layer (Loam, Redis, Memory) to be decoupled.
type TreeLoader interface {
	// Load returns the children of params.Root (levels MinDepth..MaxDepth below
	// it), keyed by link id in store order. An unknown root yields an empty tree.
	Load(ctx context.Context, menuName string, params domain.LoadParameters) (domain.Tree, error)
}

// Watchable defines an interface for stores that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled with the changed document id.
	Watch(ctx context.Context) (<-chan string, error)
}
