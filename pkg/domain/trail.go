package domain

// Trail is a root-first path of node ids.
// Index 0 is the outermost entry (normally the RootID sentinel) and the last
// index is the current node.
type Trail []string

// TrailFromActive adapts a node-first trail (index 0 = current node, increasing
// index = ancestors, terminated by the RootID sentinel) to root-first order.
func TrailFromActive(ids []string) Trail {
	t := make(Trail, len(ids))
	for i, id := range ids {
		t[len(ids)-1-i] = id
	}
	return t
}

// NodeFirst returns the trail in node-first order, as handed out by an
// active trail provider.
func (t Trail) NodeFirst() []string {
	out := make([]string, len(t))
	for i, id := range t {
		out[len(t)-1-i] = id
	}
	return out
}

// Depth is the index of the current node; -1 for an empty trail.
func (t Trail) Depth() int {
	return len(t) - 1
}

// At returns the id at index i.
func (t Trail) At(i int) (string, bool) {
	if i < 0 || i >= len(t) {
		return "", false
	}
	return t[i], true
}

// Current returns the id of the current node.
func (t Trail) Current() (string, bool) {
	return t.At(t.Depth())
}

// Parent returns the id directly above the current node.
func (t Trail) Parent() (string, bool) {
	return t.At(t.Depth() - 1)
}

// Grandparent returns the id two levels above the current node.
func (t Trail) Grandparent() (string, bool) {
	return t.At(t.Depth() - 2)
}

// Contains reports whether id is part of the trail.
func (t Trail) Contains(id string) bool {
	for _, v := range t {
		if v == id {
			return true
		}
	}
	return false
}
