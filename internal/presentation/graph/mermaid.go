package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/menutrail/pkg/domain"
)

// GraphOverlay contains request data to visualize on the menu.
type GraphOverlay struct {
	// Trail is the root-first trail; its last entry is drawn as current.
	Trail domain.Trail
	// Selected are the ids returned by a selection.
	Selected []string
}

// rootID is the mermaid id of the menu root sentinel.
const rootID = "menu_root"

// GenerateMermaid produces a Mermaid flowchart of a menu tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Disabled links: dashed edge and (Rounded) shape
// - Links routed to an entity: [[Subroutine]]
// - Default: [Rectangle]
// It also applies overlay styles (trail/current/selected) if provided.
func GenerateMermaid(menuName string, tree domain.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", rootID, escape(menuName))

	writeLevel(&sb, rootID, tree)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef trail fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")

		current, _ := overlay.Trail.Current()
		styled := make(map[string]bool)
		for _, id := range overlay.Trail {
			if id == domain.RootID || id == current || styled[id] {
				continue
			}
			styled[id] = true
			fmt.Fprintf(&sb, "    class %s trail;\n", sanitizeMermaidID(id))
		}
		for _, id := range overlay.Selected {
			if id == current || styled[id] {
				continue
			}
			styled[id] = true
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(id))
		}
		if current != domain.RootID {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(current))
		}
	}

	return sb.String()
}

func writeLevel(sb *strings.Builder, parent string, tree domain.Tree) {
	for _, el := range tree.All() {
		safeID := sanitizeMermaidID(el.Link.ID)

		opener, closer := "[", "]"
		switch {
		case !el.Link.Enabled:
			opener, closer = "(", ")"
		case strings.HasPrefix(el.Link.RouteName, "entity."):
			opener, closer = "[[", "]]"
		}

		label := el.Link.Title
		if label == "" {
			label = el.Link.ID
		}
		fmt.Fprintf(sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(label), closer)

		arrow := "-->"
		if !el.Link.Enabled {
			arrow = "-.->"
		}
		fmt.Fprintf(sb, "    %s %s %s\n", parent, arrow, safeID)

		writeLevel(sb, safeID, el.Subtree)
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
