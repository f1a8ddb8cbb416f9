package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/menutrail/pkg/domain"
)

// Kind classifies a menu inconsistency.
type Kind string

const (
	KindDuplicate      Kind = "duplicate"
	KindDanglingParent Kind = "dangling_parent"
	KindCrossMenu      Kind = "cross_menu_parent"
	KindCycle          Kind = "cycle"
)

// Issue is one inconsistency found in a set of links.
type Issue struct {
	Kind   Kind   `json:"kind"`
	LinkID string `json:"link_id"`
	Detail string `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: '%s' %s", i.Kind, i.LinkID, i.Detail)
}

// LinkSource lists the links of a menu.
type LinkSource interface {
	Links(ctx context.Context, menuName string) ([]domain.Link, error)
}

// Check reports every issue in links. Links of several menus may be mixed.
// Issues are sorted by link id, then kind.
func Check(links []domain.Link) []Issue {
	var issues []Issue
	byID := make(map[string]domain.Link, len(links))

	for _, l := range links {
		if _, ok := byID[l.ID]; ok {
			issues = append(issues, Issue{Kind: KindDuplicate, LinkID: l.ID, Detail: "is defined more than once"})
			continue
		}
		byID[l.ID] = l
	}

	for _, l := range byID {
		if l.Parent == domain.RootID {
			continue
		}
		parent, ok := byID[l.Parent]
		if !ok {
			issues = append(issues, Issue{Kind: KindDanglingParent, LinkID: l.ID, Detail: fmt.Sprintf("has missing parent '%s'", l.Parent)})
			continue
		}
		if parent.MenuName != l.MenuName {
			issues = append(issues, Issue{Kind: KindCrossMenu, LinkID: l.ID, Detail: fmt.Sprintf("in menu '%s' has parent '%s' in menu '%s'", l.MenuName, parent.ID, parent.MenuName)})
		}
	}

	issues = append(issues, cycles(byID)...)

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].LinkID != issues[j].LinkID {
			return issues[i].LinkID < issues[j].LinkID
		}
		return issues[i].Kind < issues[j].Kind
	})
	return issues
}

// cycles reports each cycle once, on its smallest link id.
func cycles(byID map[string]domain.Link) []Issue {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var issues []Issue
	done := make(map[string]bool, len(ids))

	for _, id := range ids {
		var path []string
		onPath := make(map[string]int)

		for cur := id; !done[cur]; {
			if i, ok := onPath[cur]; ok {
				loop := path[i:]
				first := loop[0]
				for _, v := range loop {
					first = min(first, v)
				}
				issues = append(issues, Issue{Kind: KindCycle, LinkID: first, Detail: "is part of cycle " + strings.Join(loop, " -> ")})
				break
			}
			l, ok := byID[cur]
			if !ok || l.Parent == domain.RootID {
				break
			}
			onPath[cur] = len(path)
			path = append(path, cur)
			cur = l.Parent
		}

		for _, v := range path {
			done[v] = true
		}
	}
	return issues
}

// Validate returns an error listing every issue, or nil.
func Validate(links []domain.Link) error {
	issues := Check(links)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, is := range issues {
		lines[i] = is.String()
	}
	return fmt.Errorf("found %d errors:\n- %s", len(issues), strings.Join(lines, "\n- "))
}

// ValidateMenus loads every menu from src and validates them together, so
// parents pointing into another menu are caught.
func ValidateMenus(ctx context.Context, src LinkSource, menus ...string) error {
	var all []domain.Link
	for _, m := range menus {
		links, err := src.Links(ctx, m)
		if err != nil {
			return fmt.Errorf("menu '%s': %w", m, err)
		}
		all = append(all, links...)
	}
	return Validate(all)
}
