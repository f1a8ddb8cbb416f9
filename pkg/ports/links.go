package ports

import (
	"context"

	"github.com/aretw0/menutrail/pkg/domain"
)

// LinkManager resolves menu link definitions.
type LinkManager interface {
	// Definition returns the link with the given plugin id.
	// Returns domain.ErrLinkNotFound if the link does not exist.
	Definition(ctx context.Context, id string) (domain.Link, error)

	// ParentIDs returns the link's own id followed by its ancestors, nearest
	// first, up to the top-level link. The RootID sentinel is not included.
	ParentIDs(ctx context.Context, id string) ([]string, error)
}

// LinkStore is a writable menu store.
type LinkStore interface {
	TreeLoader
	LinkManager

	// Save creates or replaces a link. New links are appended to the store order.
	Save(ctx context.Context, link domain.Link) error

	// Delete removes a link. Its children are left dangling.
	Delete(ctx context.Context, id string) error

	// Links lists the links of a menu in store order.
	Links(ctx context.Context, menuName string) ([]domain.Link, error)
}
