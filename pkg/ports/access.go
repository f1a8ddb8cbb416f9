package ports

import (
	"context"

	"github.com/aretw0/menutrail/pkg/domain"
)

// AccessChecker decides whether the current user may see a single link.
type AccessChecker interface {
	CheckAccess(ctx context.Context, link domain.Link) (bool, error)
}

// NodeAccessChecker decides, in one batch, which content nodes the current
// user may see. The result maps node id to the verdict; missing ids are denied.
type NodeAccessChecker interface {
	CheckNodeAccess(ctx context.Context, nodeIDs []string) (map[string]bool, error)
}

// AccessFunc adapts a function to AccessChecker.
type AccessFunc func(ctx context.Context, link domain.Link) (bool, error)

// CheckAccess calls f.
func (f AccessFunc) CheckAccess(ctx context.Context, link domain.Link) (bool, error) {
	return f(ctx, link)
}

// AllowAll grants access to every link and node.
type AllowAll struct{}

// CheckAccess always allows.
func (AllowAll) CheckAccess(context.Context, domain.Link) (bool, error) {
	return true, nil
}

// CheckNodeAccess always allows.
func (AllowAll) CheckNodeAccess(_ context.Context, nodeIDs []string) (map[string]bool, error) {
	out := make(map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		out[id] = true
	}
	return out, nil
}
