package domain

// FieldTypeMenuLink is the field type that references a menu link.
const FieldTypeMenuLink = "menu_link"

// EntityTypeNode is the only entity type that carries menu link defaults.
const EntityTypeNode = "node"

// MenuLinkDefaults is the default menu link stored in an entity's menu settings.
type MenuLinkDefaults struct {
	MenuName string `json:"menu_name" yaml:"menu_name" mapstructure:"menu_name"`
	LinkID   string `json:"link_id" yaml:"link_id" mapstructure:"link_id"`
}

// EntityField is a field declared on an entity, in declaration order.
type EntityField struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Type string `json:"type" yaml:"type" mapstructure:"type"`

	// MenuLinkIDs holds the referenced link plugin ids for menu_link fields.
	MenuLinkIDs []string `json:"menu_link_ids,omitempty" yaml:"menu_link_ids,omitempty" mapstructure:"menu_link_ids"`
}

// AnchorEntity is the content entity bound to the current request, if any.
type AnchorEntity struct {
	TypeID string `json:"type" yaml:"type" mapstructure:"type"`
	ID     string `json:"id" yaml:"id" mapstructure:"id"`

	// Fieldable entities are the only ones searched for menu links.
	Fieldable bool `json:"fieldable" yaml:"fieldable" mapstructure:"fieldable"`

	MenuDefaults *MenuLinkDefaults `json:"menu_defaults,omitempty" yaml:"menu_defaults,omitempty" mapstructure:"menu_defaults"`
	Fields       []EntityField     `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}
