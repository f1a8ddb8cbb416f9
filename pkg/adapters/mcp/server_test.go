package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail"
	httpadapter "github.com/aretw0/menutrail/pkg/adapters/http"
	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	link := func(id, menu, parent string, weight int) domain.Link {
		return domain.Link{ID: id, MenuName: menu, Parent: parent, Title: id, Weight: weight, Enabled: true}
	}
	store := memory.NewStore(
		link("R", "main", "", 0),
		link("A", "main", "R", 0),
		link("B", "main", "R", 1),
		link("C", "main", "R", 2),
		link("legal", "footer", "", 0),
	)
	nav, err := menutrail.New("",
		menutrail.WithStore(store),
		menutrail.WithActiveTrail(httpadapter.ContextTrail{}),
	)
	require.NoError(t, err)
	return NewServer(nav)
}

func TestHandleSelect_Current(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "previous",
		"current":  "B",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonFound, resp.Reason)
	assert.Equal(t, domain.Trail{"", "R", "B"}, resp.Trail)
	el, ok := resp.Tree.Get("B")
	require.True(t, ok)
	assert.Equal(t, "A", el.Link.ID)
}

func TestHandleSelect_Trail(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "siblings",
		"trail":    "C,R,",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, resp.Tree.Keys())
}

func TestHandleSelect_UnknownRelation(t *testing.T) {
	s := newServer(t)

	_, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "cousins",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownRelation)
}

func TestHandleSelect_Entity(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "next",
		"entity": map[string]interface{}{
			"type":          "node",
			"id":            "1",
			"fieldable":     true,
			"menu_defaults": map[string]interface{}{"menu_name": "main", "link_id": "A"},
		},
	})
	require.NoError(t, err)
	el, ok := resp.Tree.Get("A")
	require.True(t, ok)
	assert.Equal(t, "B", el.Link.ID)
}

func TestHandleSelect_EntityAsJSON(t *testing.T) {
	s := newServer(t)

	entity, err := json.Marshal(domain.AnchorEntity{
		TypeID:    "article",
		ID:        "7",
		Fieldable: true,
		Fields: []domain.EntityField{
			{Name: "field_menu", Type: domain.FieldTypeMenuLink, MenuLinkIDs: []string{"C"}},
		},
	})
	require.NoError(t, err)

	resp, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "parent",
		"entity":   string(entity),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Trail{"", "R", "C"}, resp.Trail)
	assert.Equal(t, []string{"R"}, resp.Tree.Keys())
}

func TestHandleSelect_InvalidEntity(t *testing.T) {
	s := newServer(t)

	_, err := s.handleSelect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":     "main",
		"relation": "next",
		"entity":   map[string]interface{}{"colour": "blue"},
	})
	assert.ErrorContains(t, err, "invalid entity")
}

func TestHandleBlock(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleBlock(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":    "main",
		"current": "R",
		"config":  map[string]interface{}{"relation": "children", "title": "More"},
	})
	require.NoError(t, err)
	require.False(t, resp.Dropped)
	require.NotNil(t, resp.Block)
	assert.Equal(t, []string{"A", "B", "C"}, resp.Block.Tree.Keys())
	for _, el := range resp.Block.Tree.Elements() {
		assert.Equal(t, "More", el.Link.Title)
	}
}

func TestHandleBlock_DroppedWhenEmpty(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleBlock(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"menu":    "main",
		"current": "C",
		"config":  `{"relation":"next"}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Dropped)
	assert.Nil(t, resp.Block)
}

func TestHandleTrail(t *testing.T) {
	s := newServer(t)

	resp, err := s.handleTrail(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"current": "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "R", ""}, resp.Trail)

	_, err = s.handleTrail(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"current": "missing"})
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestReadMenus(t *testing.T) {
	s := newServer(t)

	contents, err := s.readMenus(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.JSONEq(t, `["main","footer"]`, text.Text)
}
