package memory

import (
	"context"
	"sync"

	"github.com/aretw0/menutrail/pkg/domain"
)

// Store implements ports.LinkStore in memory.
// Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	links map[string]domain.Link
	order []string
}

// NewStore creates a new in-memory store holding links, in the given order.
func NewStore(links ...domain.Link) *Store {
	s := &Store{
		links: make(map[string]domain.Link),
	}
	for _, l := range links {
		s.put(l)
	}
	return s
}

func (s *Store) put(link domain.Link) {
	if _, ok := s.links[link.ID]; !ok {
		s.order = append(s.order, link.ID)
	}
	s.links[link.ID] = copyLink(link)
}

// Save stores the link, replacing an existing definition in place.
func (s *Store) Save(ctx context.Context, link domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(link)
	return nil
}

// Delete removes the link.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[id]; !ok {
		return nil
	}
	delete(s.links, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Links returns the links of a menu in store order.
func (s *Store) Links(ctx context.Context, menuName string) ([]domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menuLinks(menuName), nil
}

// Menus returns the names of all menus, in order of first appearance.
func (s *Store) Menus(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var menus []string
	for _, id := range s.order {
		name := s.links[id].MenuName
		if !seen[name] {
			seen[name] = true
			menus = append(menus, name)
		}
	}
	return menus, nil
}

func (s *Store) menuLinks(menuName string) []domain.Link {
	out := make([]domain.Link, 0)
	for _, id := range s.order {
		if l := s.links[id]; l.MenuName == menuName {
			out = append(out, copyLink(l))
		}
	}
	return out
}

// Load builds the requested tree from a snapshot of the menu.
func (s *Store) Load(ctx context.Context, menuName string, params domain.LoadParameters) (domain.Tree, error) {
	if err := params.Validate(); err != nil {
		return domain.Tree{}, err
	}
	s.mu.RLock()
	links := s.menuLinks(menuName)
	s.mu.RUnlock()

	return BuildTree(links, params), nil
}

// Definition returns the link with the given id.
func (s *Store) Definition(ctx context.Context, id string) (domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[id]
	if !ok {
		return domain.Link{}, domain.ErrLinkNotFound
	}
	return copyLink(link), nil
}

// ParentIDs returns the link id followed by its ancestors.
func (s *Store) ParentIDs(ctx context.Context, id string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ParentIDs(s.links, id)
}
