package redis

import (
	"Touchline/internal/api/config"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// attempt 模拟一次 POST 登录：先检查再计数
func attempt(t *testing.T, l *LoginLimiter, ip string) bool {
	t.Helper()
	ctx := context.Background()
	ok, err := l.Allow(ctx, ip)
	require.NoError(t, err)
	if !ok {
		return false
	}
	_, err = l.Hit(ctx, ip)
	require.NoError(t, err)
	return true
}

func TestLoginLimiter_Boundary(t *testing.T) {
	mr, rdb := newTestClient(t)
	l := NewLoginLimiter(rdb, config.LimiterConfig{MaxAttempts: 4, WindowSeconds: 60})
	ip := "10.0.0.1"

	for i := 1; i <= 5; i++ {
		assert.True(t, attempt(t, l, ip), "attempt %d should pass", i)
	}
	assert.False(t, attempt(t, l, ip), "6th attempt must be denied")

	// 被拒绝的请求不再计数
	val, err := mr.Get("sessions:limiter:" + ip)
	require.NoError(t, err)
	assert.Equal(t, "5", val)

	// 其他 IP 不受影响
	assert.True(t, attempt(t, l, "10.0.0.2"))

	mr.FastForward(61 * time.Second)
	assert.True(t, attempt(t, l, ip))
}

func TestLoginLimiter_RestoresMissingTTL(t *testing.T) {
	mr, rdb := newTestClient(t)
	l := NewLoginLimiter(rdb, config.LimiterConfig{MaxAttempts: 4, WindowSeconds: 60})
	ctx := context.Background()

	require.NoError(t, mr.Set("sessions:limiter:1.1.1.1", "3"))
	count, err := l.Hit(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	assert.Equal(t, 60*time.Second, mr.TTL("sessions:limiter:1.1.1.1"))
}

func TestLoginLimiter_GateOnly(t *testing.T) {
	mr, rdb := newTestClient(t)
	l := NewLoginLimiter(rdb, config.LimiterConfig{MaxAttempts: 4, WindowSeconds: 60})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ok, err := l.Allow(ctx, "2.2.2.2")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.False(t, mr.Exists("sessions:limiter:2.2.2.2"))
}

func TestDirtySet_Drain(t *testing.T) {
	_, rdb := newTestClient(t)
	set := NewDirtySet(rdb, "topic:search:dirty")
	ctx := context.Background()

	members, err := set.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, set.Mark(ctx, "Topic:1", "NbaTopic:2", "Topic:1"))
	members, err = set.Drain(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Topic:1", "NbaTopic:2"}, members)

	members, err = set.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestJSONCache(t *testing.T) {
	_, rdb := newTestClient(t)
	ctx := context.Background()

	var out []int
	hit, err := GetJSON(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetJSON(ctx, rdb, "k", []int{3, 1, 2}, time.Minute))
	hit, err = GetJSON(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int{3, 1, 2}, out)

	require.NoError(t, SetJSON(ctx, rdb, "feed:5", []int{1}, time.Minute))
	require.NoError(t, SetJSON(ctx, rdb, "other", []int{1}, time.Minute))
	require.NoError(t, DeleteKeys(ctx, rdb, "feed:*"))
	hit, err = GetJSON(ctx, rdb, "feed:5", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	hit, err = GetJSON(ctx, rdb, "other", &out)
	require.NoError(t, err)
	assert.True(t, hit)
}
