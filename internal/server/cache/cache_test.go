package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+s.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, s
}

func TestRedisCache_SetGet(t *testing.T) {
	c, s := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	var out []item
	ok, err := c.Get(ctx, "documents", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []item{{Title: "Circular", URL: "https://x/1"}}
	require.NoError(t, c.Set(ctx, "documents", in))
	assert.True(t, s.Exists("pmdadmin:list:documents"))

	ok, err = c.Get(ctx, "documents", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}

func TestRedisCache_Expires(t *testing.T) {
	c, s := setupTestRedis(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "gallery", []item{{Title: "a"}}))
	s.FastForward(31 * time.Second)

	var out []item
	ok, err := c.Get(ctx, "gallery", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Invalidate(t *testing.T) {
	c, s := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "documents", []item{}))
	require.NoError(t, c.Set(ctx, "gallery", []item{}))
	require.NoError(t, c.Invalidate(ctx, "documents"))
	assert.False(t, s.Exists("pmdadmin:list:documents"))
	assert.True(t, s.Exists("pmdadmin:list:gallery"))
	require.NoError(t, c.Invalidate(ctx))
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, s := setupTestRedis(t, time.Minute)
	require.NoError(t, s.Set("pmdadmin:list:documents", "{not json"))

	var out []item
	_, err := c.Get(context.Background(), "documents", &out)
	require.Error(t, err)
}

func TestNewRedisCache_Errors(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "://bad", time.Minute)
	require.Error(t, err)

	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()
	_, err = NewRedisCache(context.Background(), "redis://"+addr, time.Minute)
	require.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c ListCache = Noop{}
	ok, err := c.Get(context.Background(), "k", &[]item{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "k", 1))
	assert.NoError(t, c.Invalidate(context.Background(), "k"))
}
