package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/menutrail/pkg/adapters/redis"
	"github.com/aretw0/menutrail/pkg/domain"
	"github.com/aretw0/menutrail/pkg/ports"
	"github.com/aretw0/menutrail/pkg/ports/tests"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunLinkStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_MenuContract(t *testing.T) {
	tests.MenuStoreContractTest(t, func(t *testing.T, links []domain.Link) tests.Store {
		_, client := newClient(t)
		store := redis.NewFromClient(client)
		for _, l := range links {
			require.NoError(t, store.Save(context.Background(), l))
		}
		return store
	})
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Link{ID: "temp", MenuName: "main", Enabled: true}))

	links, err := store.Links(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, links, 1)

	mr.FastForward(2 * time.Second)

	_, err = store.Definition(ctx, "temp")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	links, err = store.Links(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, links)

	// The stale id was removed from the menu index.
	members, err := mr.ZMembers("menutrail:menu:main")
	if err == nil {
		assert.Empty(t, members)
	}
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Link{ID: "home", MenuName: "main", Enabled: true}))

	assert.True(t, mr.Exists("custom:app:link:home"), "Expected link key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:menu:main"), "Expected menu index with custom prefix to exist")

	menus, err := store.Menus(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, menus)
}

func TestRedisStore_MoveBetweenMenus(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Link{ID: "x", MenuName: "main", Enabled: true}))
	require.NoError(t, store.Save(ctx, domain.Link{ID: "x", MenuName: "footer", Enabled: true}))

	main, err := store.Links(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, main)

	footer, err := store.Links(ctx, "footer")
	require.NoError(t, err)
	require.Len(t, footer, 1)
	assert.Equal(t, "x", footer[0].ID)
}

func TestRedisStore_DeleteMissing(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)

	assert.NoError(t, store.Delete(context.Background(), "nothing"))
}

func TestLocker(t *testing.T) {
	_, client := newClient(t)
	locker := redis.NewLocker(client, "test:")

	unlock, err := locker.Lock(context.Background(), "k", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "k", time.Second)
	assert.ErrorIs(t, err, redis.ErrLockAcquire)

	require.NoError(t, unlock(context.Background()))

	unlock, err = locker.Lock(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.NoError(t, unlock(context.Background()))
}
