package domain

// RootID is the parent id of top-level links and the root sentinel of every trail.
const RootID = ""

// Link is a menu link definition as exposed by a Menu Store.
type Link struct {
	// ID is the plugin id of the link, unique within its menu.
	ID string `json:"id" yaml:"id"`

	// MenuName is the menu that defines the link.
	MenuName string `json:"menu_name" yaml:"menu_name"`

	// Parent is the plugin id of the parent link, or RootID for top-level links.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	Title  string `json:"title" yaml:"title"`
	Weight int    `json:"weight" yaml:"weight"`

	RouteName       string            `json:"route_name,omitempty" yaml:"route_name,omitempty"`
	RouteParameters map[string]string `json:"route_parameters,omitempty" yaml:"route_parameters,omitempty"`

	// Enabled is false for administratively disabled links.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// PluginID returns the id used to match the link against trail entries.
func (l Link) PluginID() string {
	return l.ID
}

// EntityRef identifies a content entity bound to a menu element for presentation.
type EntityRef struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	ViewMode string `json:"view_mode,omitempty"`
}

// Element is a single node of a loaded menu tree.
type Element struct {
	Link Link `json:"link"`

	// Subtree holds the loaded children, in sibling order.
	Subtree Tree `json:"subtree"`

	// Depth is 1-based relative to the root of the load.
	Depth int `json:"depth"`

	// HasChildren reports whether the store knows children for the link,
	// even when they were cut off by the max depth.
	HasChildren bool `json:"has_children"`

	InActiveTrail bool `json:"in_active_trail"`

	// Access is nil until an access manipulator has decided.
	Access *bool `json:"access,omitempty"`

	// BoundEntity and RenderedContent are filled by block building only.
	BoundEntity     *EntityRef `json:"bound_entity,omitempty"`
	RenderedContent string     `json:"rendered_content,omitempty"`
}

// AccessGranted reports whether no manipulator has denied access to the element.
func (e *Element) AccessGranted() bool {
	return e.Access == nil || *e.Access
}

// SetAccess records an access verdict on the element.
func (e *Element) SetAccess(allowed bool) {
	e.Access = &allowed
}

// Clone returns a deep copy of the element and its subtree.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	if e.Link.RouteParameters != nil {
		c.Link.RouteParameters = make(map[string]string, len(e.Link.RouteParameters))
		for k, v := range e.Link.RouteParameters {
			c.Link.RouteParameters[k] = v
		}
	}
	if e.Access != nil {
		allowed := *e.Access
		c.Access = &allowed
	}
	if e.BoundEntity != nil {
		ref := *e.BoundEntity
		c.BoundEntity = &ref
	}
	c.Subtree = e.Subtree.Clone()
	return &c
}
