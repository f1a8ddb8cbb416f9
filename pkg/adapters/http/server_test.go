package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail"
	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	link := func(id, parent string, weight int) domain.Link {
		return domain.Link{ID: id, MenuName: "main", Parent: parent, Title: id, Weight: weight, Enabled: true}
	}
	store := memory.NewStore(
		link("R", "", 0),
		link("A", "R", 0),
		link("B", "R", 1),
		link("C", "R", 2),
	)
	nav, err := menutrail.New("",
		menutrail.WithStore(store),
		menutrail.WithActiveTrail(ContextTrail{}),
	)
	require.NoError(t, err)
	return NewHandler(nav, WithMetricsHandler(http.NotFoundHandler()))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) SelectionResponse {
	t.Helper()
	var resp SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetSelection_Current(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/menus/main/next?current=B", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Equal(t, domain.RelationNext, resp.Relation)
	assert.Equal(t, domain.ReasonFound, resp.Reason)
	assert.Equal(t, domain.Trail{"", "R", "B"}, resp.Trail)
	el, ok := resp.Tree.Get("B")
	require.True(t, ok)
	assert.Equal(t, "C", el.Link.ID)
}

func TestGetSelection_TrailKeepsOrder(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/menus/main/siblings?trail=B,R,", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, []string{"A", "B", "C"}, decode(t, w).Tree.Keys())
	assert.True(t, strings.Index(w.Body.String(), `"A"`) < strings.Index(w.Body.String(), `"C"`))
}

func TestGetSelection_NoPosition(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/menus/main/parent", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ReasonShallowTrail, decode(t, w).Reason)
}

func TestGetSelection_Errors(t *testing.T) {
	h := newHandler(t)

	cases := map[string]int{
		"/menus/main/cousins?current=B":  http.StatusBadRequest,
		"/menus/main/next?current=ghost": http.StatusNotFound,
	}
	for url, code := range cases {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", url, nil))
		assert.Equal(t, code, w.Code, url)
	}
}

func TestPostSelection_Entity(t *testing.T) {
	h := newHandler(t)

	body, _ := json.Marshal(Position{
		Entity: &domain.AnchorEntity{
			TypeID:    "node",
			ID:        "1",
			Fieldable: true,
			Fields: []domain.EntityField{
				{Name: "field_menu", Type: domain.FieldTypeMenuLink, MenuLinkIDs: []string{"C"}},
			},
		},
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/menus/main/previous", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	el, ok := decode(t, w).Tree.Get("C")
	require.True(t, ok)
	assert.Equal(t, "B", el.Link.ID)
}

func TestPostSelection_InvalidBody(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/menus/main/next", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostBlock(t *testing.T) {
	h := newHandler(t)

	body, _ := json.Marshal(BlockRequest{
		Position: Position{Current: "R"},
		Config:   menutrail.BlockConfig{Relation: "child", Title: "Go"},
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/menus/main/block", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var block menutrail.Block
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &block))
	assert.Equal(t, domain.RelationChildren, block.Relation)
	assert.Equal(t, []string{"A", "B", "C"}, block.Tree.Keys())
	el, _ := block.Tree.Get("A")
	assert.Equal(t, "Go", el.Link.Title)
	assert.Equal(t, []string{"config:system.menu.main"}, block.Cache.Tags)

	// An empty block without show_empty is dropped.
	body, _ = json.Marshal(BlockRequest{Position: Position{Current: "A"}})
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/menus/main/block", bytes.NewReader(body)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetTrail(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/menus/main/trail?current=A", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"trail":["A","R",""]}`, w.Body.String())
}

func TestHealthAndInfo(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	assert.Contains(t, w.Body.String(), `"app":"menutrail-http"`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/menus/main/next", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

type watchNavigator struct {
	Navigator
	events []string
}

func (n watchNavigator) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, len(n.events))
	for _, e := range n.events {
		ch <- e
	}
	close(ch)
	return ch, nil
}

func TestSubscribeEvents(t *testing.T) {
	h := NewHandler(watchNavigator{events: []string{"main/about"}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event: ping")
	assert.Contains(t, w.Body.String(), "data: main/about")
}

func TestSubscribeEvents_Unsupported(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestContextTrail(t *testing.T) {
	ctx := context.Background()

	ids, err := ContextTrail{}.ActiveTrailIDs(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, ids)

	ids, err = ContextTrail{Fallback: memory.StaticTrail{"main": {"x", ""}}}.ActiveTrailIDs(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", ""}, ids)

	ids, err = ContextTrail{}.ActiveTrailIDs(ContextWithTrail(ctx, []string{"y", ""}), "main")
	require.NoError(t, err)
	assert.Equal(t, []string{"y", ""}, ids)
}
