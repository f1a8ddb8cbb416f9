package navigation

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/manipulators"
	"github.com/aretw0/menutrail/pkg/ports"
)

// DefaultFrontPage is the root used by the children selector when the
// current position is the menu root itself.
const DefaultFrontPage = "standard.front_page"

// Navigator computes positional views of a node inside a menu tree.
// It holds no per-request state and is safe for concurrent use when its
// collaborators are.
type Navigator struct {
	loader      ports.TreeLoader
	trails      ports.ActiveTrailProvider
	links       ports.LinkManager
	transformer *manipulators.Transformer
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	frontPage   string
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLinkManager enables entity trail resolution.
func WithLinkManager(l ports.LinkManager) Option {
	return func(n *Navigator) {
		n.links = l
	}
}

// WithTransformer sets the tree transform pipeline.
func WithTransformer(t *manipulators.Transformer) Option {
	return func(n *Navigator) {
		n.transformer = t
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Navigator) {
		n.hooks = hooks
	}
}

// WithFrontPage overrides DefaultFrontPage.
func WithFrontPage(id string) Option {
	return func(n *Navigator) {
		if id != "" {
			n.frontPage = id
		}
	}
}

// New creates a navigator reading trees from loader and the active trail from trails.
func New(loader ports.TreeLoader, trails ports.ActiveTrailProvider, opts ...Option) *Navigator {
	n := &Navigator{
		loader:    loader,
		trails:    trails,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		frontPage: DefaultFrontPage,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.transformer == nil {
		n.transformer = manipulators.New()
	}
	return n
}

// Transformer returns the transform pipeline used by the selectors.
func (n *Navigator) Transformer() *manipulators.Transformer {
	return n.transformer
}

// load calls the Tree Loader, wrapping failures and emitting a LoadEvent.
func (n *Navigator) load(ctx context.Context, menuName string, params domain.LoadParameters) (domain.Tree, error) {
	start := time.Now()
	tree, err := n.loader.Load(ctx, menuName, params)
	if err != nil {
		err = &domain.LoadError{Menu: menuName, Root: params.Root, Cause: err}
	}

	if n.hooks.OnLoad != nil {
		n.hooks.OnLoad(ctx, &domain.LoadEvent{
			Timestamp: start,
			Menu:      menuName,
			Root:      params.Root,
			Size:      tree.Len(),
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	if err != nil {
		return domain.Tree{}, err
	}
	return tree, nil
}

// loadLevel loads the enabled children of root and runs the pipeline over them.
func (n *Navigator) loadLevel(ctx context.Context, menuName, root string, active []string, pipeline ...string) (domain.Tree, error) {
	params := domain.NewLoadParameters(root).
		WithActiveTrail(active).
		WithOnlyEnabled().
		WithMinDepth(0).
		WithMaxDepth(1)

	tree, err := n.load(ctx, menuName, params)
	if err != nil {
		return domain.Tree{}, err
	}
	return n.transformer.Transform(ctx, tree, pipeline...)
}
