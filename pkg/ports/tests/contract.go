package tests

import (
	"context"
	"testing"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Store is what a menu store adapter must offer to the navigator.
type Store interface {
	ports.TreeLoader
	ports.LinkManager
}

// Factory builds a store holding exactly the given links, in that order.
type Factory func(t *testing.T, links []domain.Link) Store

// FixtureMenu is the menu name used by FixtureLinks.
const FixtureMenu = "main"

// FixtureLinks returns the reference menu used by the contract suite:
//
//	home
//	about
//	  team
//	    lead
//	  history (disabled)
//	  careers
//	contact
//
// plus one link of another menu.
func FixtureLinks() []domain.Link {
	link := func(id, parent string, weight int, enabled bool) domain.Link {
		return domain.Link{
			ID:        id,
			MenuName:  FixtureMenu,
			Parent:    parent,
			Title:     id,
			Weight:    weight,
			RouteName: "menutrail.static",
			Enabled:   enabled,
		}
	}
	return []domain.Link{
		link("home", domain.RootID, 0, true),
		link("about", domain.RootID, 1, true),
		link("team", "about", 0, true),
		link("lead", "team", 0, true),
		link("history", "about", 1, false),
		link("careers", "about", 2, true),
		link("contact", domain.RootID, 2, true),
		{ID: "footer.legal", MenuName: "footer", Title: "Legal", Enabled: true},
	}
}

// MenuStoreContractTest is a reusable test suite that verifies if an adapter
// complies with ports.TreeLoader and ports.LinkManager.
func MenuStoreContractTest(t *testing.T, factory Factory) {
	t.Helper()

	ctx := context.Background()
	store := factory(t, FixtureLinks())

	t.Run("Load_TopLevel", func(t *testing.T) {
		tree, err := store.Load(ctx, FixtureMenu, domain.NewLoadParameters(domain.RootID).WithMaxDepth(1))
		require.NoError(t, err)
		assert.Equal(t, []string{"home", "about", "contact"}, tree.Keys())

		about, ok := tree.Get("about")
		require.True(t, ok)
		assert.Equal(t, 1, about.Depth)
		assert.True(t, about.HasChildren)
		assert.True(t, about.Subtree.IsEmpty(), "max depth 1 must not load grandchildren")
	})

	t.Run("Load_Children_OnlyEnabled", func(t *testing.T) {
		params := domain.NewLoadParameters("about").WithOnlyEnabled().WithMinDepth(0).WithMaxDepth(1)
		tree, err := store.Load(ctx, FixtureMenu, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"team", "careers"}, tree.Keys())
	})

	t.Run("Load_IncludesDisabled", func(t *testing.T) {
		tree, err := store.Load(ctx, FixtureMenu, domain.NewLoadParameters("about").WithMaxDepth(1))
		require.NoError(t, err)
		assert.Equal(t, []string{"team", "history", "careers"}, tree.Keys())
	})

	t.Run("Load_Unlimited", func(t *testing.T) {
		tree, err := store.Load(ctx, FixtureMenu, domain.NewLoadParameters("about"))
		require.NoError(t, err)
		team, ok := tree.Get("team")
		require.True(t, ok)
		lead, ok := team.Subtree.Get("lead")
		require.True(t, ok)
		assert.Equal(t, 2, lead.Depth)
	})

	t.Run("Load_MinDepthLiftsLevels", func(t *testing.T) {
		params := domain.NewLoadParameters(domain.RootID).WithMinDepth(2).WithMaxDepth(2)
		tree, err := store.Load(ctx, FixtureMenu, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"team", "history", "careers"}, tree.Keys())
	})

	t.Run("Load_ActiveTrail", func(t *testing.T) {
		params := domain.NewLoadParameters("about").WithActiveTrail([]string{"team", "about", ""})
		tree, err := store.Load(ctx, FixtureMenu, params)
		require.NoError(t, err)
		team, _ := tree.Get("team")
		careers, _ := tree.Get("careers")
		require.NotNil(t, team)
		require.NotNil(t, careers)
		assert.True(t, team.InActiveTrail)
		assert.False(t, careers.InActiveTrail)
	})

	t.Run("Load_UnknownRoot", func(t *testing.T) {
		tree, err := store.Load(ctx, FixtureMenu, domain.NewLoadParameters("nope"))
		require.NoError(t, err)
		assert.True(t, tree.IsEmpty())
	})

	t.Run("Load_OtherMenu", func(t *testing.T) {
		tree, err := store.Load(ctx, "footer", domain.NewLoadParameters(domain.RootID))
		require.NoError(t, err)
		assert.Equal(t, []string{"footer.legal"}, tree.Keys())
	})

	t.Run("Definition", func(t *testing.T) {
		link, err := store.Definition(ctx, "careers")
		require.NoError(t, err)
		assert.Equal(t, "about", link.Parent)
		assert.Equal(t, FixtureMenu, link.MenuName)

		_, err = store.Definition(ctx, "non-existent-link")
		assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	})

	t.Run("ParentIDs", func(t *testing.T) {
		ids, err := store.ParentIDs(ctx, "lead")
		require.NoError(t, err)
		assert.Equal(t, []string{"lead", "team", "about"}, ids)

		ids, err = store.ParentIDs(ctx, "home")
		require.NoError(t, err)
		assert.Equal(t, []string{"home"}, ids)

		_, err = store.ParentIDs(ctx, "non-existent-link")
		assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	})
}
