package dsl

import (
	"fmt"

	"github.com/aretw0/menutrail/internal/validator"
	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

// links is shared between builders of different menus so Build sees
// every link in declaration order.
type links struct {
	order []*LinkBuilder
	byID  map[string]*LinkBuilder
}

// Builder manages the construction of one menu.
type Builder struct {
	menu  string
	links *links
}

// New creates a builder for menuName.
func New(menuName string) *Builder {
	return &Builder{
		menu: menuName,
		links: &links{
			byID: make(map[string]*LinkBuilder),
		},
	}
}

// Menu returns a builder for another menu sharing the same link set.
func (b *Builder) Menu(menuName string) *Builder {
	return &Builder{menu: menuName, links: b.links}
}

// Add creates a new enabled link in the menu.
// If the link already exists, it returns the existing builder.
func (b *Builder) Add(id string) *LinkBuilder {
	if lb, ok := b.links.byID[id]; ok {
		return lb
	}
	lb := &LinkBuilder{
		link: domain.Link{
			ID:       id,
			MenuName: b.menu,
			Title:    id,
			Enabled:  true,
		},
	}
	b.links.byID[id] = lb
	b.links.order = append(b.links.order, lb)
	return lb
}

// Links returns the declared links in declaration order.
func (b *Builder) Links() []domain.Link {
	out := make([]domain.Link, 0, len(b.links.order))
	for _, lb := range b.links.order {
		out = append(out, lb.link)
	}
	return out
}

// Build validates every menu and compiles it into an in-memory store.
func (b *Builder) Build() (*memory.Store, error) {
	all := b.Links()
	if err := validator.Validate(all); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}
	return memory.NewStore(all...), nil
}
