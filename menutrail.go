package menutrail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/loam"

	"github.com/aretw0/menutrail/internal/navigation"
	loamAdapter "github.com/aretw0/menutrail/pkg/adapters/loam"
	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/manipulators"
	"github.com/aretw0/menutrail/pkg/ports"
)

// Navigator is the high-level entry point of the library.
// It wraps the internal navigation core and the tree transformer.
type Navigator struct {
	nav         *navigation.Navigator
	transformer *manipulators.Transformer
	loader      ports.TreeLoader
	links       ports.LinkManager
	trails      ports.ActiveTrailProvider
	access      ports.AccessChecker
	nodeAccess  ports.NodeAccessChecker
	renderer    ports.EntityRenderer
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	frontPage   string
	Name        string
}

// Option defines a functional option for configuring the Navigator.
type Option func(*Navigator)

// WithTreeLoader injects a custom TreeLoader, bypassing the default Loam initialization.
func WithTreeLoader(l ports.TreeLoader) Option {
	return func(n *Navigator) {
		n.loader = l
	}
}

// WithLinkManager sets the link lookup used to resolve entity trails.
func WithLinkManager(l ports.LinkManager) Option {
	return func(n *Navigator) {
		n.links = l
	}
}

// WithStore uses one store as both TreeLoader and LinkManager.
func WithStore(s interface {
	ports.TreeLoader
	ports.LinkManager
}) Option {
	return func(n *Navigator) {
		n.loader = s
		n.links = s
	}
}

// WithActiveTrail sets the provider of the current request's active trail.
func WithActiveTrail(p ports.ActiveTrailProvider) Option {
	return func(n *Navigator) {
		n.trails = p
	}
}

// WithAccessChecker sets the per-link access policy (default: allow all).
func WithAccessChecker(c ports.AccessChecker) Option {
	return func(n *Navigator) {
		n.access = c
	}
}

// WithNodeAccessChecker sets the content node access policy (default: allow all).
func WithNodeAccessChecker(c ports.NodeAccessChecker) Option {
	return func(n *Navigator) {
		n.nodeAccess = c
	}
}

// WithEntityRenderer renders entities bound to block elements.
func WithEntityRenderer(r ports.EntityRenderer) Option {
	return func(n *Navigator) {
		n.renderer = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the navigator.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithFrontPage sets the link whose children are shown at the menu root
// (default: "standard.front_page").
func WithFrontPage(id string) Option {
	return func(n *Navigator) {
		n.frontPage = id
	}
}

// New initializes a Navigator.
// By default, it reads menu links from a Loam repository at the given path.
// If WithTreeLoader or WithStore is provided, repoPath can be empty and Loam is skipped.
// An active trail provider is always required.
func New(repoPath string, opts ...Option) (*Navigator, error) {
	n := &Navigator{}

	for _, opt := range opts {
		opt(n)
	}

	if n.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		n.Name = filepath.Base(absPath)

		// Strict mode keeps numbers as json.Number across formats; the
		// navigator never writes, so the repository is opened read-only.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.LinkMetadata](repo))
		n.loader = loader
		if n.links == nil {
			n.links = loader
		}
	} else if repoPath != "" {
		n.Name = filepath.Base(repoPath)
	}

	if n.trails == nil {
		return nil, fmt.Errorf("an active trail provider is required")
	}

	if n.logger == nil {
		n.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if n.Name != "" {
		n.logger = n.logger.With("source", n.Name)
	}

	var topts []manipulators.Option
	if n.access != nil {
		topts = append(topts, manipulators.WithAccessChecker(n.access))
	}
	if n.nodeAccess != nil {
		topts = append(topts, manipulators.WithNodeAccessChecker(n.nodeAccess))
	}
	n.transformer = manipulators.New(topts...)

	navOpts := []navigation.Option{
		navigation.WithTransformer(n.transformer),
		navigation.WithLogger(n.logger),
		navigation.WithLifecycleHooks(n.hooks),
		navigation.WithFrontPage(n.frontPage),
	}
	if n.links != nil {
		navOpts = append(navOpts, navigation.WithLinkManager(n.links))
	}
	n.nav = navigation.New(n.loader, n.trails, navOpts...)

	return n, nil
}

// Children returns the enabled, accessible children of the current node.
func (n *Navigator) Children(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	return n.Select(ctx, domain.RelationChildren, menuName, anchor)
}

// Parent returns the current node's parent as a single-entry tree.
func (n *Navigator) Parent(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	return n.Select(ctx, domain.RelationParent, menuName, anchor)
}

// Siblings returns every accessible child of the current node's parent,
// the current node included.
func (n *Navigator) Siblings(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	return n.Select(ctx, domain.RelationSiblings, menuName, anchor)
}

// Next returns the sibling right after the current node, keyed by the current node's id.
func (n *Navigator) Next(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	return n.Select(ctx, domain.RelationNext, menuName, anchor)
}

// Previous returns the sibling right before the current node, keyed by the current node's id.
func (n *Navigator) Previous(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	return n.Select(ctx, domain.RelationPrevious, menuName, anchor)
}

// Select computes any relation. Absent relatives are an empty tree and a nil error.
func (n *Navigator) Select(ctx context.Context, rel domain.Relation, menuName string, anchor *domain.AnchorEntity) (domain.Tree, error) {
	sel, err := n.Explain(ctx, rel, menuName, anchor)
	if err != nil {
		return domain.Tree{}, err
	}
	return sel.Tree, nil
}

// Explain computes a relation and reports why the result came out as it did.
func (n *Navigator) Explain(ctx context.Context, rel domain.Relation, menuName string, anchor *domain.AnchorEntity) (domain.Selection, error) {
	return n.nav.Select(ctx, rel, menuName, anchor)
}

// Trail returns the root-first trail the selectors would use.
func (n *Navigator) Trail(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (domain.Trail, error) {
	pos, err := n.nav.Resolve(ctx, menuName, anchor)
	if err != nil {
		return nil, err
	}
	return pos.Trail, nil
}

// Neighbours computes Next and Previous concurrently.
func (n *Navigator) Neighbours(ctx context.Context, menuName string, anchor *domain.AnchorEntity) (next, previous domain.Tree, err error) {
	ns, ps, err := n.nav.Neighbours(ctx, menuName, anchor)
	if err != nil {
		return domain.Tree{}, domain.Tree{}, err
	}
	return ns.Tree, ps.Tree, nil
}

// Watch returns a channel that signals when the underlying menu changes.
// Returns error if the loader does not support watching.
func (n *Navigator) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := n.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying TreeLoader.
func (n *Navigator) Loader() ports.TreeLoader {
	return n.loader
}

// LinkManager returns the link lookup, nil when entity trails are disabled.
func (n *Navigator) LinkManager() ports.LinkManager {
	return n.links
}

// Transformer returns the tree transform pipeline, to register custom manipulators.
func (n *Navigator) Transformer() *manipulators.Transformer {
	return n.transformer
}
