package loam

// LinkMetadata is the frontmatter of a menu link document.
// It uses "mapstructure" tags to match the YAML/JSON keys written by authors.
type LinkMetadata struct {
	ID     string `json:"id" mapstructure:"id"`
	Menu   string `json:"menu" mapstructure:"menu"`
	Parent string `json:"parent" mapstructure:"parent"`
	Title  string `json:"title" mapstructure:"title"`

	// Weight is decoded loosely: strict mode yields json.Number, YAML yields ints.
	Weight any `json:"weight" mapstructure:"weight"`

	Route           string         `json:"route" mapstructure:"route"`
	RouteParameters map[string]any `json:"route_parameters" mapstructure:"route_parameters"`

	// Enabled defaults to true when absent.
	Enabled *bool `json:"enabled" mapstructure:"enabled"`
}
