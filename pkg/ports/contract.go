package ports

import (
	"context"
	"testing"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLinkStoreContract runs a suite of tests to verify that a LinkStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunLinkStoreContract(t *testing.T, store LinkStore) {
	ctx := context.Background()
	menu := "contract-menu"

	t.Run("Save and Definition", func(t *testing.T) {
		link := domain.Link{
			ID:              "contract.a",
			MenuName:        menu,
			Title:           "A",
			Weight:          3,
			RouteName:       "entity.node.canonical",
			RouteParameters: map[string]string{"node": "7"},
			Enabled:         true,
		}
		require.NoError(t, store.Save(ctx, link), "Save should not return error")

		loaded, err := store.Definition(ctx, "contract.a")
		require.NoError(t, err, "Definition should not return error")
		assert.Equal(t, link.MenuName, loaded.MenuName)
		assert.Equal(t, link.Title, loaded.Title)
		assert.Equal(t, link.Weight, loaded.Weight)
		assert.Equal(t, "7", loaded.RouteParameters["node"])
		assert.True(t, loaded.Enabled)
	})

	t.Run("Definition Non-Existent", func(t *testing.T) {
		_, err := store.Definition(ctx, "contract.missing")
		assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	})

	t.Run("Links keep store order", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.Link{ID: "contract.c", MenuName: menu, Enabled: true}))
		require.NoError(t, store.Save(ctx, domain.Link{ID: "contract.b", MenuName: menu, Enabled: true}))
		// Replacing keeps the original position.
		require.NoError(t, store.Save(ctx, domain.Link{ID: "contract.a", MenuName: menu, Title: "A2", Enabled: true}))

		links, err := store.Links(ctx, menu)
		require.NoError(t, err)
		ids := make([]string, 0, len(links))
		for _, l := range links {
			ids = append(ids, l.ID)
		}
		assert.Equal(t, []string{"contract.a", "contract.c", "contract.b"}, ids)
		assert.Equal(t, "A2", links[0].Title)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "contract.c"), "Delete should not return error")

		_, err := store.Definition(ctx, "contract.c")
		assert.ErrorIs(t, err, domain.ErrLinkNotFound, "Definition after Delete should return ErrLinkNotFound")

		tree, err := store.Load(ctx, menu, domain.NewLoadParameters(domain.RootID))
		require.NoError(t, err)
		assert.Equal(t, []string{"contract.a", "contract.b"}, tree.Keys())
	})

	t.Run("Unknown menu is empty", func(t *testing.T) {
		links, err := store.Links(ctx, "contract-nothing")
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
