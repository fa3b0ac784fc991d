package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	authredis "github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestChallenges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, client := newClient(t)
	repo := authredis.NewChallenges(client, "test:")

	now := time.Now().UTC().Truncate(time.Millisecond)
	ch := domain.Challenge{
		ID:        "c1",
		Value:     []byte("raw"),
		Kind:      domain.CeremonyAuthentication,
		Session:   []byte(`{}`),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Minute),
	}

	t.Run("create and consume once", func(t *testing.T) {
		require.NoError(t, repo.CreateChallenge(ctx, ch))
		require.ErrorIs(t, repo.CreateChallenge(ctx, ch), store.ErrAlreadyExists)

		got, err := repo.ConsumeChallenge(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, ch.Value, got.Value)
		require.Equal(t, ch.Kind, got.Kind)
		require.Empty(t, got.UserID)
		require.True(t, got.ExpiresAt.Equal(ch.ExpiresAt))

		_, err = repo.ConsumeChallenge(ctx, "c1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("key outlives the ceremony by the grace period", func(t *testing.T) {
		c2 := ch
		c2.ID = "c2"
		require.NoError(t, repo.CreateChallenge(ctx, c2))
		require.Equal(t, time.Minute+authredis.ChallengeExpiryGrace, mr.TTL("test:challenge:c2"))

		mr.FastForward(time.Minute)
		got, err := repo.ConsumeChallenge(ctx, "c2")
		require.NoError(t, err)
		require.True(t, got.ExpiresAt.Equal(c2.ExpiresAt))

		c4 := ch
		c4.ID = "c4"
		require.NoError(t, repo.CreateChallenge(ctx, c4))
		mr.FastForward(time.Minute + authredis.ChallengeExpiryGrace)

		_, err = repo.ConsumeChallenge(ctx, "c4")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("concurrent consumers see one winner", func(t *testing.T) {
		c3 := ch
		c3.ID = "c3"
		require.NoError(t, repo.CreateChallenge(ctx, c3))

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.ConsumeChallenge(ctx, "c3"); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, wins)
	})
}

func TestRevokedTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, client := newClient(t)
	repo := authredis.NewRevokedTokens(client, "test:")

	now := time.Now().UTC()
	rt := domain.RevokedToken{
		TokenHash: "h1",
		TokenType: "access",
		UserID:    "u1",
		ExpiresAt: now.Add(15 * time.Minute),
		RevokedAt: now,
	}

	inserted, err := repo.RevokeToken(ctx, rt)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.RevokeToken(ctx, rt)
	require.NoError(t, err)
	require.False(t, inserted)

	revoked, err := repo.IsTokenRevoked(ctx, "h1", now)
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = repo.IsTokenRevoked(ctx, "h1", now.Add(time.Hour))
	require.NoError(t, err)
	require.False(t, revoked)

	revoked, err = repo.IsTokenRevoked(ctx, "unknown", now)
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestConnect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client, err := authredis.Connect(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = authredis.Connect(ctx, "not a url")
	require.Error(t, err)

	mr.Close()
	_, err = authredis.Connect(ctx, "redis://"+mr.Addr()+"/0")
	require.Error(t, err)
}

func TestOverlay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, base.ApplyMigrations())

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	overlay := authredis.NewOverlay(base, client)

	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("short-lived state goes to redis", func(t *testing.T) {
		require.NoError(t, overlay.Challenges().CreateChallenge(ctx, domain.Challenge{
			ID:        "shared",
			Value:     []byte("raw"),
			Kind:      domain.CeremonyRegistration,
			Session:   []byte(`{}`),
			CreatedAt: now,
			ExpiresAt: now.Add(time.Minute),
		}))
		require.True(t, mr.Exists("dynaform:auth:challenge:shared"))

		_, err := base.Challenges().ConsumeChallenge(ctx, "shared")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("users stay in the base store", func(t *testing.T) {
		user := domain.User{
			ID:          "01HZX0000000000000000000AA",
			Username:    "overlay",
			Email:       "overlay@example.com",
			DisplayName: "Overlay",
			Role:        domain.RoleUser,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, overlay.Users().CreateUser(ctx, user))

		got, err := base.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "overlay", got.Username)
	})

	t.Run("ping and close cover both", func(t *testing.T) {
		require.NoError(t, overlay.Ping(ctx))
		require.NoError(t, overlay.Close())
		require.Error(t, client.Ping(ctx).Err())
	})
}
