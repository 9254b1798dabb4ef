package gate

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateKeeper(t *testing.T) *GateKeeper {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewGateKeeper(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func TestGateKeeperDefaultClosed(t *testing.T) {
	g := setupGateKeeper(t)
	ctx := context.Background()

	gate, err := g.Get(ctx, "unknown_switch")
	require.NoError(t, err)
	assert.Equal(t, 0, gate.Percent)

	on, err := g.IsSwitchOn(ctx, "unknown_switch")
	require.NoError(t, err)
	assert.False(t, on)

	in, err := g.InBucket(ctx, "unknown_switch", 0)
	require.NoError(t, err)
	assert.False(t, in, "unconfigured switch must not admit anyone")
}

func TestGateKeeperSetPercentClamps(t *testing.T) {
	g := setupGateKeeper(t)
	ctx := context.Background()

	require.NoError(t, g.SetPercent(ctx, "s", 150))
	gate, err := g.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 100, gate.Percent)

	require.NoError(t, g.SetPercent(ctx, "s", -10))
	gate, err = g.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 0, gate.Percent)
}

func TestGateKeeperTurnOnOff(t *testing.T) {
	g := setupGateKeeper(t)
	ctx := context.Background()

	require.NoError(t, g.TurnOn(ctx, "s"))
	on, err := g.IsSwitchOn(ctx, "s")
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, g.TurnOff(ctx, "s"))
	on, err = g.IsSwitchOn(ctx, "s")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestGateKeeperInBucket(t *testing.T) {
	g := setupGateKeeper(t)
	ctx := context.Background()
	require.NoError(t, g.SetPercent(ctx, "s", 30))

	cases := []struct {
		id   uint64
		want bool
	}{
		{0, true},
		{29, true},
		{30, false},
		{99, false},
		{129, true},
		{130, false},
	}
	for _, tc := range cases {
		in, err := g.InBucket(ctx, "s", tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, in, "id %d at 30%%", tc.id)
	}

	// 放量到 100 后所有 id 都在桶内
	require.NoError(t, g.SetPercent(ctx, "s", 100))
	for id := uint64(0); id < 100; id++ {
		in, err := g.InBucket(ctx, "s", id)
		require.NoError(t, err)
		assert.True(t, in)
	}
}

func TestGateKeeperDescription(t *testing.T) {
	g := setupGateKeeper(t)
	ctx := context.Background()

	require.NoError(t, g.SetDescription(ctx, "s", "route friendship reads to wide column store"))
	require.NoError(t, g.SetPercent(ctx, "s", 50))

	gate, err := g.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "s", gate.Name)
	assert.Equal(t, 50, gate.Percent)
	assert.Equal(t, "route friendship reads to wide column store", gate.Description)
}
