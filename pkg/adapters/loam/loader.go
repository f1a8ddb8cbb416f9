package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

// Loader adapts a Loam repository of link documents to the menu store ports.
// Every document is one link; siblings are ordered by weight, then id.
//
// Loam does not list documents whose file stem contains a dot, so a dotted
// link id such as "standard.front_page" must live in a file named by
// FileStem (standard_front_page.md) and declare its id in the metadata.
type Loader struct {
	Repo *loam.TypedRepository[LinkMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[LinkMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Load implements ports.TreeLoader.
func (l *Loader) Load(ctx context.Context, menuName string, params domain.LoadParameters) (domain.Tree, error) {
	if err := params.Validate(); err != nil {
		return domain.Tree{}, err
	}
	links, err := l.Links(ctx, menuName)
	if err != nil {
		return domain.Tree{}, err
	}
	return memory.BuildTree(links, params), nil
}

// Definition implements ports.LinkManager.
func (l *Loader) Definition(ctx context.Context, id string) (domain.Link, error) {
	all, _, err := l.index(ctx)
	if err != nil {
		return domain.Link{}, err
	}
	link, ok := all[id]
	if !ok {
		return domain.Link{}, domain.ErrLinkNotFound
	}
	return link, nil
}

// ParentIDs implements ports.LinkManager.
func (l *Loader) ParentIDs(ctx context.Context, id string) ([]string, error) {
	all, _, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return memory.ParentIDs(all, id)
}

// Links returns the links of menuName ordered by weight, then id.
func (l *Loader) Links(ctx context.Context, menuName string) ([]domain.Link, error) {
	_, ordered, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Link, 0, len(ordered))
	for _, link := range ordered {
		if link.MenuName == menuName {
			out = append(out, link)
		}
	}
	return out, nil
}

// Menus lists the menu names present in the repository, sorted.
func (l *Loader) Menus(ctx context.Context) ([]string, error) {
	_, ordered, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var menus []string
	for _, link := range ordered {
		if !seen[link.MenuName] {
			seen[link.MenuName] = true
			menus = append(menus, link.MenuName)
		}
	}
	sort.Strings(menus)
	return menus, nil
}

// index reads every document. The repository is the source of truth, so
// nothing is cached between calls.
func (l *Loader) index(ctx context.Context) (map[string]domain.Link, []domain.Link, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	byID := make(map[string]domain.Link, len(docs))
	ordered := make([]domain.Link, 0, len(docs))

	for _, doc := range docs {
		link, err := toLink(doc.ID, doc.Data)
		if err != nil {
			return nil, nil, err
		}

		// Collision Detection
		if existing, ok := seen[link.ID]; ok {
			return nil, nil, fmt.Errorf("collision detected: link '%s' is defined in both '%s' and '%s'", link.ID, existing, doc.ID)
		}
		seen[link.ID] = doc.ID
		byID[link.ID] = link
		ordered = append(ordered, link)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Weight != ordered[j].Weight {
			return ordered[i].Weight < ordered[j].Weight
		}
		return ordered[i].ID < ordered[j].ID
	})
	return byID, ordered, nil
}

func toLink(docID string, meta LinkMetadata) (domain.Link, error) {
	rel := trimExtension(docID)

	id := meta.ID
	if id == "" {
		id = path.Base(rel)
	}

	// Links without an explicit menu take it from their top-level directory.
	menuName := meta.Menu
	if menuName == "" {
		if dir, _, ok := strings.Cut(rel, "/"); ok {
			menuName = dir
		}
	}
	if menuName == "" {
		return domain.Link{}, fmt.Errorf("link %s (%s): no menu", id, docID)
	}

	weight, err := toInt(meta.Weight)
	if err != nil {
		return domain.Link{}, fmt.Errorf("link %s: weight: %w", id, err)
	}

	link := domain.Link{
		ID:        id,
		MenuName:  menuName,
		Parent:    meta.Parent,
		Title:     meta.Title,
		Weight:    weight,
		RouteName: meta.Route,
		Enabled:   meta.Enabled == nil || *meta.Enabled,
	}
	if link.Title == "" {
		link.Title = id
	}
	if len(meta.RouteParameters) > 0 {
		link.RouteParameters = make(map[string]string, len(meta.RouteParameters))
		for k, v := range meta.RouteParameters {
			link.RouteParameters[k] = fmt.Sprintf("%v", v)
		}
	}
	return link, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// FileStem returns the file name, without extension, under which loam lists
// the document of a link id. Dots are replaced by underscores.
func FileStem(id string) string {
	return strings.ReplaceAll(id, ".", "_")
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
