package manipulators_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/manipulators"
	"github.com/aretw0/menutrail/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(id string, weight int, title string) *domain.Element {
	return &domain.Element{Link: domain.Link{ID: id, Weight: weight, Title: title, Enabled: true}}
}

func nodeEl(id, node string) *domain.Element {
	e := el(id, 0, id)
	e.Link.RouteName = manipulators.NodeRoute
	e.Link.RouteParameters = map[string]string{"node": node}
	return e
}

type nodePolicy map[string]bool

func (p nodePolicy) CheckNodeAccess(_ context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range ids {
		if p[id] {
			out[id] = true
		}
	}
	return out, nil
}

func TestGenerateIndexAndSort(t *testing.T) {
	parent := el("p", 0, "P")
	parent.Subtree = domain.NewTree(el("p2", 5, "B"), el("p1", 5, "A"))
	tree := domain.NewTree(el("c", 2, "C"), el("b", -1, "Z"), el("a", 2, "A"), parent)

	out, err := manipulators.New().Transform(context.Background(), tree, manipulators.GenerateIndexAndSort)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "p", "a", "c"}, out.Keys())
	p, _ := out.Get("p")
	assert.Equal(t, []string{"p1", "p2"}, p.Subtree.Keys())

	// The input tree is not reordered.
	assert.Equal(t, []string{"c", "b", "a", "p"}, tree.Keys())
}

func TestGenerateIndexAndSort_TieBreaksOnID(t *testing.T) {
	tree := domain.NewTree(el("y", 0, "Same"), el("x", 0, "Same"))
	out, err := manipulators.New().Transform(context.Background(), tree, manipulators.GenerateIndexAndSort)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, out.Keys())
}

func TestCheckAccess(t *testing.T) {
	deny := map[string]bool{"secret": true, "hidden-child": true}
	checker := ports.AccessFunc(func(_ context.Context, link domain.Link) (bool, error) {
		return !deny[link.ID], nil
	})

	parent := el("public", 0, "Public")
	parent.Subtree = domain.NewTree(el("hidden-child", 0, "H"), el("visible-child", 1, "V"))
	tree := domain.NewTree(parent, el("secret", 1, "S"))

	tr := manipulators.New(manipulators.WithAccessChecker(checker))
	out, err := tr.Transform(context.Background(), tree, manipulators.CheckAccess)
	require.NoError(t, err)

	assert.Equal(t, []string{"public"}, out.Keys())
	p, _ := out.Get("public")
	assert.Equal(t, []string{"visible-child"}, p.Subtree.Keys())
	require.NotNil(t, p.Access)
	assert.True(t, *p.Access)
}

func TestCheckAccess_PropagatesErrors(t *testing.T) {
	boom := errors.New("policy backend down")
	checker := ports.AccessFunc(func(context.Context, domain.Link) (bool, error) {
		return false, boom
	})

	tr := manipulators.New(manipulators.WithAccessChecker(checker))
	_, err := tr.Transform(context.Background(), domain.NewTree(el("a", 0, "A")), manipulators.CheckAccess)
	assert.ErrorIs(t, err, boom)
}

func TestCheckNodeAccess_DropsDeniedSubtrees(t *testing.T) {
	denied := nodeEl("n2", "2")
	denied.Subtree = domain.NewTree(el("under-denied", 0, "U"))
	tree := domain.NewTree(nodeEl("n1", "1"), denied, el("static", 0, "S"))

	tr := manipulators.New(manipulators.WithNodeAccessChecker(nodePolicy{"1": true}))
	out, err := tr.Transform(context.Background(), tree, manipulators.CheckNodeAccess)
	require.NoError(t, err)

	assert.Equal(t, []string{"n1", "static"}, out.Keys())
	n1, _ := out.Get("n1")
	require.NotNil(t, n1.Access)
	static, _ := out.Get("static")
	assert.Nil(t, static.Access, "links without a node route stay undecided")
}

func TestCheckNodeAccess_ThenCheckAccessSkipsDecided(t *testing.T) {
	calls := 0
	checker := ports.AccessFunc(func(context.Context, domain.Link) (bool, error) {
		calls++
		return true, nil
	})

	tree := domain.NewTree(nodeEl("n1", "1"), el("static", 0, "S"))
	tr := manipulators.New(
		manipulators.WithAccessChecker(checker),
		manipulators.WithNodeAccessChecker(nodePolicy{"1": true}),
	)
	out, err := tr.Transform(context.Background(), tree, manipulators.CheckNodeAccess, manipulators.CheckAccess)
	require.NoError(t, err)

	assert.Equal(t, []string{"n1", "static"}, out.Keys())
	assert.Equal(t, 1, calls, "node links already decided must not be re-checked")
}

func TestFilterDisabled(t *testing.T) {
	off := el("off", 0, "Off")
	off.Link.Enabled = false
	tree := domain.NewTree(el("on", 0, "On"), off)

	out, err := manipulators.New().Transform(context.Background(), tree, manipulators.FilterDisabled)
	require.NoError(t, err)
	assert.Equal(t, []string{"on"}, out.Keys())
}

func TestTransform_UnknownManipulator(t *testing.T) {
	_, err := manipulators.New().Transform(context.Background(), domain.Tree{}, "explode")
	assert.ErrorIs(t, err, domain.ErrUnknownManipulator)
}

func TestRegister(t *testing.T) {
	tr := manipulators.New()
	tr.Register("reverse", func(_ context.Context, tree domain.Tree) (domain.Tree, error) {
		var out domain.Tree
		for k, v := range tree.Backward() {
			out.Set(k, v)
		}
		return out, nil
	})

	out, err := tr.Transform(context.Background(), domain.NewTree(el("a", 0, "A"), el("b", 0, "B")), "reverse")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, out.Keys())
}
