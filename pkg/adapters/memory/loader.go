package memory

import "github.com/aretw0/menutrail/pkg/domain"

// BuildTree assembles the tree described by params out of the links of a
// single menu, given in store order. It is shared by every adapter that can
// list the links of a menu.
func BuildTree(links []domain.Link, params domain.LoadParameters) domain.Tree {
	children := make(map[string][]domain.Link)
	known := make(map[string]bool, len(links))
	for _, l := range links {
		known[l.ID] = true
		children[l.Parent] = append(children[l.Parent], l)
	}

	if params.Root != domain.RootID && !known[params.Root] {
		return domain.Tree{}
	}

	b := &treeBuilder{
		children: children,
		params:   params,
		minDepth: params.EffectiveMinDepth(),
		visited:  make(map[string]bool),
	}
	b.visited[params.Root] = true

	var tree domain.Tree
	for _, el := range b.collect(params.Root, 1) {
		tree.Set(el.Link.ID, el)
	}
	return tree
}

type treeBuilder struct {
	children map[string][]domain.Link
	params   domain.LoadParameters
	minDepth int
	visited  map[string]bool
}

// collect returns the elements found level levels below parent. Levels above
// minDepth are skipped and their descendants lifted to the top of the result.
func (b *treeBuilder) collect(parent string, level int) []*domain.Element {
	if b.params.MaxDepth > 0 && level > b.params.MaxDepth {
		return nil
	}

	var out []*domain.Element
	for _, link := range b.visible(parent) {
		if b.visited[link.ID] {
			continue
		}
		b.visited[link.ID] = true

		if level < b.minDepth {
			out = append(out, b.collect(link.ID, level+1)...)
			continue
		}

		el := &domain.Element{
			Link:          copyLink(link),
			Depth:         level,
			HasChildren:   len(b.visible(link.ID)) > 0,
			InActiveTrail: b.params.InActiveTrail(link.ID),
		}
		for _, child := range b.collect(link.ID, level+1) {
			el.Subtree.Set(child.Link.ID, child)
		}
		out = append(out, el)
	}
	return out
}

func (b *treeBuilder) visible(parent string) []domain.Link {
	links := b.children[parent]
	if !b.params.OnlyEnabled {
		return links
	}
	out := make([]domain.Link, 0, len(links))
	for _, l := range links {
		if l.Enabled {
			out = append(out, l)
		}
	}
	return out
}

// ParentIDs walks the parent chain of id inside links, self first.
func ParentIDs(links map[string]domain.Link, id string) ([]string, error) {
	link, ok := links[id]
	if !ok {
		return nil, domain.ErrLinkNotFound
	}

	ids := []string{link.ID}
	seen := map[string]bool{link.ID: true}
	for link.Parent != domain.RootID {
		parent, ok := links[link.Parent]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		ids = append(ids, parent.ID)
		link = parent
	}
	return ids, nil
}

func copyLink(l domain.Link) domain.Link {
	if l.RouteParameters != nil {
		params := make(map[string]string, len(l.RouteParameters))
		for k, v := range l.RouteParameters {
			params[k] = v
		}
		l.RouteParameters = params
	}
	return l
}
