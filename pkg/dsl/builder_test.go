package dsl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail/pkg/domain"
)

func TestBuilder_Menu(t *testing.T) {
	b := New("main")

	b.Add("about").Title("About us")
	b.Add("history").Title("History").Under("about").Weight(1)
	b.Add("team").Title("Team").Under("about")
	b.Add("post").Title("Post").Node("42")
	b.Add("old").Disabled()
	b.Menu("footer").Add("legal").Title("Legal")

	store, err := b.Build()
	require.NoError(t, err)
	ctx := context.Background()

	tree, err := store.Load(ctx, "main", domain.NewLoadParameters("about"))
	require.NoError(t, err)
	assert.Equal(t, []string{"history", "team"}, tree.Keys(), "the store keeps declaration order")

	post, err := store.Definition(ctx, "post")
	require.NoError(t, err)
	assert.Equal(t, "entity.node.canonical", post.RouteName)
	assert.Equal(t, "42", post.RouteParameters["node"])

	old, err := store.Definition(ctx, "old")
	require.NoError(t, err)
	assert.False(t, old.Enabled)
	assert.Equal(t, "old", old.Title, "the id is the default title")

	legal, err := store.Definition(ctx, "legal")
	require.NoError(t, err)
	assert.Equal(t, "footer", legal.MenuName)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New("main")
	b.Add("home").Title("Home")
	b.Add("home").Weight(3)

	links := b.Links()
	require.Len(t, links, 1)
	assert.Equal(t, "Home", links[0].Title)
	assert.Equal(t, 3, links[0].Weight)
}

func TestBuilder_Invalid(t *testing.T) {
	b := New("main")
	b.Add("team").Under("about")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing parent")
}

func TestLinkBuilder_RouteIgnoresOddParameter(t *testing.T) {
	l := New("main").Add("x").Route("entity.user.canonical", "user", "1", "dangling")
	assert.Equal(t, map[string]string{"user": "1"}, l.Link().RouteParameters)
}
