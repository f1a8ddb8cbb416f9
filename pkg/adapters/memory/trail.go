package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
)

// ActiveTrail implements ports.ActiveTrailProvider from a per-menu current link.
// Safe for concurrent use.
type ActiveTrail struct {
	links   ports.LinkManager
	mu      sync.RWMutex
	current map[string]string
}

// NewActiveTrail creates a provider resolving ancestors through links.
func NewActiveTrail(links ports.LinkManager) *ActiveTrail {
	return &ActiveTrail{
		links:   links,
		current: make(map[string]string),
	}
}

// SetCurrent marks linkID as the current node of menuName. An empty id
// clears the position.
func (a *ActiveTrail) SetCurrent(menuName, linkID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if linkID == "" {
		delete(a.current, menuName)
		return
	}
	a.current[menuName] = linkID
}

// ActiveTrailIDs returns the current link and its ancestors followed by the
// RootID sentinel. Without a current link the trail is just the sentinel.
func (a *ActiveTrail) ActiveTrailIDs(ctx context.Context, menuName string) ([]string, error) {
	a.mu.RLock()
	id, ok := a.current[menuName]
	a.mu.RUnlock()

	if !ok {
		return []string{domain.RootID}, nil
	}

	ids, err := a.links.ParentIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("active trail for %s: %w", menuName, err)
	}
	return append(ids, domain.RootID), nil
}

// StaticTrail is an ActiveTrailProvider returning fixed node-first trails per menu.
type StaticTrail map[string][]string

// ActiveTrailIDs returns the configured trail, or the bare RootID sentinel.
func (s StaticTrail) ActiveTrailIDs(ctx context.Context, menuName string) ([]string, error) {
	if ids, ok := s[menuName]; ok {
		return append([]string(nil), ids...), nil
	}
	return []string{domain.RootID}, nil
}
