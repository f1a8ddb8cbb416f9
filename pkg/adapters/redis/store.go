package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/menutrail/pkg/adapters/memory"
	"github.com/aretw0/menutrail/pkg/domain"
)

const (
	defaultPrefix  = "menutrail:"
	defaultLockTTL = 5 * time.Second
)

// Store implements ports.LinkStore on Redis.
//
// Layout, relative to the prefix:
//
//	link:<id>    JSON encoded link
//	menu:<name>  sorted set of link ids, scored by insertion sequence
//	menus        set of menu names
//	seq          insertion counter
type Store struct {
	client *backend.Client
	locker *Locker
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets a time-to-live for link keys. Expired links disappear from
// their menu lazily, on the next read.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets a custom key prefix (default: "menutrail:").
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the Redis server at addr.
func New(addr, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.locker = NewLocker(client, s.prefix)
	return s
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) linkKey(id string) string {
	return s.prefix + "link:" + id
}

func (s *Store) menuKey(name string) string {
	return s.prefix + "menu:" + name
}

func (s *Store) menusKey() string {
	return s.prefix + "menus"
}

func (s *Store) seqKey() string {
	return s.prefix + "seq"
}

// Save stores the link. A replaced link keeps its position unless it moves
// to another menu.
func (s *Store) Save(ctx context.Context, link domain.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	unlock, err := s.locker.Lock(ctx, "link:"+link.ID, defaultLockTTL)
	if err != nil {
		return err
	}
	defer unlock(context.WithoutCancel(ctx))

	previous, err := s.Definition(ctx, link.ID)
	if err != nil && !errors.Is(err, domain.ErrLinkNotFound) {
		return err
	}
	moved := err == nil && previous.MenuName != link.MenuName

	seq, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("redis error allocating sequence: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Set(ctx, s.linkKey(link.ID), data, s.ttl)
		if moved {
			pipe.ZRem(ctx, s.menuKey(previous.MenuName), link.ID)
		}
		pipe.ZAddNX(ctx, s.menuKey(link.MenuName), backend.Z{Score: float64(seq), Member: link.ID})
		pipe.SAdd(ctx, s.menusKey(), link.MenuName)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error saving link %s: %w", link.ID, err)
	}
	return nil
}

// Delete removes the link. Deleting a missing link is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	unlock, err := s.locker.Lock(ctx, "link:"+id, defaultLockTTL)
	if err != nil {
		return err
	}
	defer unlock(context.WithoutCancel(ctx))

	link, err := s.Definition(ctx, id)
	if errors.Is(err, domain.ErrLinkNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.Del(ctx, s.linkKey(id))
		pipe.ZRem(ctx, s.menuKey(link.MenuName), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error deleting link %s: %w", id, err)
	}
	return nil
}

// Definition implements ports.LinkManager.
func (s *Store) Definition(ctx context.Context, id string) (domain.Link, error) {
	data, err := s.client.Get(ctx, s.linkKey(id)).Bytes()
	if errors.Is(err, backend.Nil) {
		return domain.Link{}, domain.ErrLinkNotFound
	}
	if err != nil {
		return domain.Link{}, fmt.Errorf("redis error loading link %s: %w", id, err)
	}

	var link domain.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return domain.Link{}, fmt.Errorf("failed to unmarshal link %s: %w", id, err)
	}
	return link, nil
}

// ParentIDs implements ports.LinkManager. Ancestors are looked up in the
// link's own menu.
func (s *Store) ParentIDs(ctx context.Context, id string) ([]string, error) {
	link, err := s.Definition(ctx, id)
	if err != nil {
		return nil, err
	}
	links, err := s.Links(ctx, link.MenuName)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Link, len(links)+1)
	for _, l := range links {
		byID[l.ID] = l
	}
	byID[link.ID] = link
	return memory.ParentIDs(byID, id)
}

// Links returns the links of menuName in insertion order.
func (s *Store) Links(ctx context.Context, menuName string) ([]domain.Link, error) {
	key := s.menuKey(menuName)
	ids, err := s.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing menu %s: %w", menuName, err)
	}
	if len(ids) == 0 {
		return []domain.Link{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.linkKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error loading menu %s: %w", menuName, err)
	}

	links := make([]domain.Link, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var link domain.Link
		if err := json.Unmarshal([]byte(raw), &link); err != nil {
			return nil, fmt.Errorf("failed to unmarshal link %s: %w", ids[i], err)
		}
		links = append(links, link)
	}

	// Lazy cleanup of expired links.
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, key, stale...).Err(); err != nil {
			return nil, fmt.Errorf("redis error cleaning menu %s: %w", menuName, err)
		}
	}
	return links, nil
}

// Menus returns the known menu names, sorted.
func (s *Store) Menus(ctx context.Context) ([]string, error) {
	menus, err := s.client.SMembers(ctx, s.menusKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing menus: %w", err)
	}
	sort.Strings(menus)
	return menus, nil
}

// Load implements ports.TreeLoader.
func (s *Store) Load(ctx context.Context, menuName string, params domain.LoadParameters) (domain.Tree, error) {
	if err := params.Validate(); err != nil {
		return domain.Tree{}, err
	}
	links, err := s.Links(ctx, menuName)
	if err != nil {
		return domain.Tree{}, err
	}
	return memory.BuildTree(links, params), nil
}
