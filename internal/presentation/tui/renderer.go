package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/menutrail/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)

	return func(markdown string) (string, error) {
		if err != nil {
			return "", err
		}
		return r.Render(markdown)
	}
}

// Markdown describes a selection of menuName as a markdown document.
func Markdown(menuName string, sel domain.Selection) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s of `%s`\n\n", titleCase(sel.Relation.String()), menuName)
	fmt.Fprintf(&sb, "**Trail:** %s\n\n", trailLine(sel.Trail))

	if sel.Empty() {
		fmt.Fprintf(&sb, "_Nothing to show (%s)._\n", sel.Reason)
		return sb.String()
	}

	writeItems(&sb, sel.Tree, 0)
	return sb.String()
}

// Plain describes a selection as indented text, one link per line.
func Plain(sel domain.Selection) string {
	var sb strings.Builder
	var walk func(tree domain.Tree, depth int)
	walk = func(tree domain.Tree, depth int) {
		for key, el := range tree.All() {
			fmt.Fprintf(&sb, "%s%s\t%s\n", strings.Repeat("  ", depth), key, el.Link.ID)
			walk(el.Subtree, depth+1)
		}
	}
	walk(sel.Tree, 0)
	return sb.String()
}

func writeItems(sb *strings.Builder, tree domain.Tree, depth int) {
	for key, el := range tree.All() {
		title := el.Link.Title
		if title == "" {
			title = el.Link.ID
		}
		line := fmt.Sprintf("%s- **%s** `%s`", strings.Repeat("  ", depth), title, el.Link.ID)
		if key != el.Link.ID {
			line += fmt.Sprintf(" (relative of `%s`)", key)
		}
		if el.InActiveTrail {
			line += " _(active)_"
		}
		if el.BoundEntity != nil {
			line += fmt.Sprintf(" → %s/%s", el.BoundEntity.Type, el.BoundEntity.ID)
		}
		sb.WriteString(line + "\n")
		writeItems(sb, el.Subtree, depth+1)
	}
}

func trailLine(t domain.Trail) string {
	if len(t) == 0 {
		return "_none_"
	}
	parts := make([]string, len(t))
	for i, id := range t {
		if id == domain.RootID {
			parts[i] = "⌂"
			continue
		}
		parts[i] = "`" + id + "`"
	}
	return strings.Join(parts, " › ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
