package service_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	authredis "github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/redis"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestChallengeServiceOverRedis(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newService := func(t *testing.T) (*service.ChallengeService, *testClock, *miniredis.Miniredis) {
		t.Helper()

		base, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		require.NoError(t, base.ApplyMigrations())

		mr := miniredis.RunT(t)
		overlay := authredis.NewOverlay(base, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
		t.Cleanup(func() { _ = overlay.Close() })

		clock := newTestClock()
		return &service.ChallengeService{Store: overlay, Clock: clock.Now}, clock, mr
	}

	t.Run("expired on first use", func(t *testing.T) {
		t.Parallel()
		challenges, clock, mr := newService(t)

		ch, err := challenges.Issue(ctx, domain.CeremonyAuthentication, "", nil)
		require.NoError(t, err)

		clock.Advance(service.DefaultChallengeTTL)
		mr.FastForward(service.DefaultChallengeTTL)

		_, err = challenges.Consume(ctx, ch.ID, domain.CeremonyAuthentication)
		require.ErrorIs(t, err, service.ErrChallengeExpired)

		_, err = challenges.Consume(ctx, ch.ID, domain.CeremonyAuthentication)
		require.ErrorIs(t, err, service.ErrChallengeNotFound)
	})

	t.Run("consumed at most once", func(t *testing.T) {
		t.Parallel()
		challenges, _, _ := newService(t)

		ch, err := challenges.Issue(ctx, domain.CeremonyRegistration, "user-1", nil)
		require.NoError(t, err)

		got, err := challenges.Consume(ctx, ch.ID, domain.CeremonyRegistration)
		require.NoError(t, err)
		require.Equal(t, "user-1", got.UserID)

		_, err = challenges.Consume(ctx, ch.ID, domain.CeremonyRegistration)
		require.ErrorIs(t, err, service.ErrChallengeNotFound)
	})

	t.Run("gone once the grace period passes", func(t *testing.T) {
		t.Parallel()
		challenges, clock, mr := newService(t)

		ch, err := challenges.Issue(ctx, domain.CeremonyAuthentication, "", nil)
		require.NoError(t, err)

		clock.Advance(service.DefaultChallengeTTL + authredis.ChallengeExpiryGrace)
		mr.FastForward(service.DefaultChallengeTTL + authredis.ChallengeExpiryGrace)

		_, err = challenges.Consume(ctx, ch.ID, domain.CeremonyAuthentication)
		require.ErrorIs(t, err, service.ErrChallengeNotFound)
	})
}
