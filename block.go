package menutrail

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/manipulators"
)

// canonicalRoute matches the canonical route of an entity type, e.g. "entity.node.canonical".
var canonicalRoute = regexp.MustCompile(`^entity\.(.+?)\.canonical$`)

// BlockConfig configures how a selection is displayed as a block.
type BlockConfig struct {
	Relation domain.Relation `json:"relation" yaml:"relation" mapstructure:"relation"`

	// ShowEmpty keeps the block when the selection is empty.
	ShowEmpty bool `json:"show_empty" yaml:"show_empty" mapstructure:"show_empty"`

	// Title overrides the title of every displayed link.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// ViewModes maps an entity type to the view mode its bound entities are rendered in.
	ViewModes map[string]string `json:"view_modes" yaml:"view_modes" mapstructure:"view_modes"`
}

// CacheMetadata describes what invalidates a block and what it varies by.
type CacheMetadata struct {
	Tags     []string `json:"tags"`
	Contexts []string `json:"contexts"`
}

// Block is a selection prepared for display.
type Block struct {
	MenuName string          `json:"menu"`
	Relation domain.Relation `json:"relation"`
	Reason   domain.Reason   `json:"reason"`
	Tree     domain.Tree     `json:"tree"`
	Empty    bool            `json:"empty"`
	Cache    CacheMetadata   `json:"cache"`
}

// CacheMetadataFor returns the cache metadata of every block of menuName.
// Even an empty block depends on the menu configuration and the active trail.
func CacheMetadataFor(menuName string) CacheMetadata {
	return CacheMetadata{
		Tags:     []string{"config:system.menu." + menuName},
		Contexts: []string{"route.menu_active_trails:" + menuName},
	}
}

// CacheMetadata returns the cache metadata of blocks of menuName.
func (n *Navigator) CacheMetadata(menuName string) CacheMetadata {
	return CacheMetadataFor(menuName)
}

// Build runs the configured relation and converts the result for display.
// It returns nil when the result is empty and cfg.ShowEmpty is not set.
func (n *Navigator) Build(ctx context.Context, cfg BlockConfig, menuName string, anchor *domain.AnchorEntity) (*Block, error) {
	rel := cfg.Relation
	if rel == "" {
		rel = domain.RelationChildren
	}

	sel, err := n.Explain(ctx, rel, menuName, anchor)
	if err != nil {
		return nil, err
	}

	tree, err := n.transformer.Transform(ctx, sel.Tree, manipulators.Standard()...)
	if err != nil {
		return nil, err
	}

	block := &Block{
		MenuName: menuName,
		Relation: rel,
		Reason:   sel.Reason,
		Empty:    tree.IsEmpty(),
		Cache:    CacheMetadataFor(menuName),
	}
	if block.Empty {
		if !cfg.ShowEmpty {
			return nil, nil
		}
		return block, nil
	}

	if err := n.convert(ctx, cfg, tree); err != nil {
		return nil, err
	}
	block.Tree = tree
	return block, nil
}

// convert applies the block configuration to every element, subtrees first.
func (n *Navigator) convert(ctx context.Context, cfg BlockConfig, tree domain.Tree) error {
	for _, el := range tree.All() {
		if err := n.convert(ctx, cfg, el.Subtree); err != nil {
			return err
		}

		if cfg.Title != "" {
			el.Link.Title = cfg.Title
		}

		ref, ok := boundEntity(cfg, el.Link)
		if !ok {
			continue
		}
		el.BoundEntity = &ref

		if n.renderer == nil {
			continue
		}
		content, err := n.renderer.RenderEntity(ctx, ref)
		if err != nil {
			return fmt.Errorf("render %s %s: %w", ref.Type, ref.ID, err)
		}
		el.RenderedContent = content
	}
	return nil
}

func boundEntity(cfg BlockConfig, link domain.Link) (domain.EntityRef, bool) {
	m := canonicalRoute.FindStringSubmatch(link.RouteName)
	if m == nil {
		return domain.EntityRef{}, false
	}
	entityType := m[1]

	viewMode := cfg.ViewModes[entityType]
	if viewMode == "" {
		return domain.EntityRef{}, false
	}
	id, ok := link.RouteParameters[entityType]
	if !ok || id == "" {
		return domain.EntityRef{}, false
	}
	return domain.EntityRef{Type: entityType, ID: id, ViewMode: viewMode}, true
}
