package dsl

import "github.com/aretw0/menutrail/pkg/domain"

// LinkBuilder provides a fluent API for configuring a link.
type LinkBuilder struct {
	link domain.Link
}

// Title sets the displayed title.
func (l *LinkBuilder) Title(title string) *LinkBuilder {
	l.link.Title = title
	return l
}

// Under places the link below parent.
func (l *LinkBuilder) Under(parent string) *LinkBuilder {
	l.link.Parent = parent
	return l
}

// Weight sets the sort weight; lighter links come first.
func (l *LinkBuilder) Weight(w int) *LinkBuilder {
	l.link.Weight = w
	return l
}

// Route points the link at a named route with alternating key/value parameters.
func (l *LinkBuilder) Route(name string, params ...string) *LinkBuilder {
	l.link.RouteName = name
	if len(params) > 1 {
		l.link.RouteParameters = make(map[string]string, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			l.link.RouteParameters[params[i]] = params[i+1]
		}
	}
	return l
}

// Node points the link at the canonical route of a content node.
func (l *LinkBuilder) Node(id string) *LinkBuilder {
	return l.Route("entity.node.canonical", "node", id)
}

// Disabled marks the link as administratively disabled.
func (l *LinkBuilder) Disabled() *LinkBuilder {
	l.link.Enabled = false
	return l
}

// Link returns the configured link.
func (l *LinkBuilder) Link() domain.Link {
	return l.link
}
