package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(maxItems int, ttl time.Duration) (*Cache[string], *clock) {
	clk := &clock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	c := New[string](Config{MaxItems: maxItems, TTL: ttl, CleanupInterval: time.Hour})
	c.now = clk.now
	return c, clk
}

func TestCache_GetSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "1")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	hits, misses, rate := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.InDelta(t, 50.0, rate, 0.001)
}

func TestCache_Expiry(t *testing.T) {
	c, clk := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.SetWithTTL("forever", "2", 0)

	clk.t = clk.t.Add(2 * time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)

	c.Set("b", "3")
	clk.t = clk.t.Add(2 * time.Minute)
	c.cleanup()
	assert.Equal(t, 1, c.Size())
}

func TestCache_EvictsOldest(t *testing.T) {
	c, clk := newTestCache(2, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	clk.t = clk.t.Add(time.Second)
	c.Set("b", "2")
	clk.t = clk.t.Add(time.Second)

	// overwriting an existing key does not evict
	c.Set("b", "2b")
	assert.Equal(t, 2, c.Size())

	c.Set("c", "3")
	assert.Equal(t, 2, c.Size())
	_, ok := c.Get("a")
	assert.False(t, ok)
	v, _ := c.Get("b")
	assert.Equal(t, "2b", v)
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	calls := 0
	fn := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)

	_, err := c.GetOrSet("bad", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	_, ok := c.Get("bad")
	assert.False(t, ok)
}

func TestCache_DeleteClearClose(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())

	c.Close()
	c.Close()
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("parse", "Shell", "x;"), Key("parse", "Shell", "x;"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key("x"), 64)
}
