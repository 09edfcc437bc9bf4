package cache_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fluentkit/cache"
	"github.com/dmitrymomot/fluentkit/value"
)

func mustCache(t *testing.T, size int, opts ...cache.Option) *cache.Cache {
	t.Helper()
	c, err := cache.New(size, opts...)
	require.NoError(t, err)
	return c
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := cache.New(0)
	assert.Error(t, err)

	_, err = cache.New(-1)
	assert.Error(t, err)

	_, err = cache.New(10, cache.WithMaxEntryWeight(0))
	assert.Error(t, err)

	_, err = cache.New(10, cache.WithMaxErrorsPerEntry(-2))
	assert.Error(t, err)
}

func TestGetPut(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 8)

	t.Run("miss then hit", func(t *testing.T) {
		args := map[string]any{"name": "Ann"}

		_, ok := c.Get("greeting", "", "en", false, args)
		assert.False(t, ok)

		c.Put("greeting", "", "en", false, args, "Hello, Ann!", nil)

		// A freshly built but equal payload must address the same entry.
		e, ok := c.Get("greeting", "", "en", false, map[string]any{"name": "Ann"})
		require.True(t, ok)
		assert.Equal(t, "Hello, Ann!", e.Text)
		assert.Empty(t, e.Errors)
	})

	t.Run("nil and empty args are the same call", func(t *testing.T) {
		c.Put("plain", "", "en", false, nil, "text", nil)
		_, ok := c.Get("plain", "", "en", false, map[string]any{})
		assert.True(t, ok)
	})

	t.Run("coordinates partition entries", func(t *testing.T) {
		args := map[string]any{"n": 1}
		c.Put("msg", "", "en", false, args, "value", nil)

		_, ok := c.Get("msg", "title", "en", false, args)
		assert.False(t, ok, "attribute must split the key")
		_, ok = c.Get("msg", "", "de", false, args)
		assert.False(t, ok, "locale must split the key")
		_, ok = c.Get("msg", "", "en", true, args)
		assert.False(t, ok, "strictness must split the key")
	})

	t.Run("diagnostics ride along", func(t *testing.T) {
		boom := errors.New("unknown variable: $x")
		c.Put("broken", "", "en", false, nil, "{$x}", []error{boom})

		e, ok := c.Get("broken", "", "en", false, nil)
		require.True(t, ok)
		require.Len(t, e.Errors, 1)
		assert.Equal(t, boom, e.Errors[0])
	})
}

func TestTypeTagging(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 32)
	put := func(v any, text string) {
		c.Put("msg", "", "en", false, map[string]any{"v": v}, text, nil)
	}
	get := func(v any) (string, bool) {
		e, ok := c.Get("msg", "", "en", false, map[string]any{"v": v})
		return e.Text, ok
	}

	put(1, "int")
	put(true, "bool")
	put(1.0, "float")
	put("1", "string")
	put(decimal.RequireFromString("1.0"), "decimal one place")
	put(decimal.RequireFromString("1.00"), "decimal two places")

	t.Run("equal-looking values stay separate", func(t *testing.T) {
		for v, want := range map[any]string{
			1:    "int",
			true: "bool",
			1.0:  "float",
			"1":  "string",
		} {
			got, ok := get(v)
			require.True(t, ok)
			assert.Equal(t, want, got)
		}

		got, ok := get(decimal.RequireFromString("1.0"))
		require.True(t, ok)
		assert.Equal(t, "decimal one place", got)

		got, ok = get(decimal.RequireFromString("1.00"))
		require.True(t, ok)
		assert.Equal(t, "decimal two places", got)
	})

	t.Run("integer width does not split entries", func(t *testing.T) {
		got, ok := get(int64(1))
		require.True(t, ok)
		assert.Equal(t, "int", got)

		got, ok = get(uint8(1))
		require.True(t, ok)
		assert.Equal(t, "int", got)
	})

	t.Run("zone name splits equal instants", func(t *testing.T) {
		instant := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		renamed := instant.In(time.FixedZone("XYZ", 0))

		put(instant, "utc")
		put(renamed, "xyz")

		got, ok := get(instant)
		require.True(t, ok)
		assert.Equal(t, "utc", got)
		got, ok = get(renamed)
		require.True(t, ok)
		assert.Equal(t, "xyz", got)
	})

	t.Run("number options split entries", func(t *testing.T) {
		plain := value.NewNumber(decimal.NewFromInt(1))
		padded := value.NewNumber(decimal.NewFromInt(1), value.WithMinFractionDigits(2))

		put(plain, "plain number")
		put(padded, "padded number")

		got, ok := get(plain)
		require.True(t, ok)
		assert.Equal(t, "plain number", got)
		got, ok = get(padded)
		require.True(t, ok)
		assert.Equal(t, "padded number", got)
	})
}

func TestNestedArguments(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 16)

	t.Run("lists keep order", func(t *testing.T) {
		c.Put("l", "", "en", false, map[string]any{"v": []any{1, 2}}, "ordered", nil)

		_, ok := c.Get("l", "", "en", false, map[string]any{"v": []any{2, 1}})
		assert.False(t, ok)

		e, ok := c.Get("l", "", "en", false, map[string]any{"v": []any{1, 2}})
		require.True(t, ok)
		assert.Equal(t, "ordered", e.Text)
	})

	t.Run("maps are order independent", func(t *testing.T) {
		c.Put("m", "", "en", false, map[string]any{"a": 1, "b": 2}, "pairs", nil)
		e, ok := c.Get("m", "", "en", false, map[string]any{"b": 2, "a": 1})
		require.True(t, ok)
		assert.Equal(t, "pairs", e.Text)
	})

	t.Run("sets are order independent", func(t *testing.T) {
		c.Put("s", "", "en", false,
			map[string]any{"v": map[string]struct{}{"x": {}, "y": {}}}, "set", nil)
		e, ok := c.Get("s", "", "en", false,
			map[string]any{"v": map[string]struct{}{"y": {}, "x": {}}})
		require.True(t, ok)
		assert.Equal(t, "set", e.Text)
	})

	t.Run("string slices behave like value lists", func(t *testing.T) {
		c.Put("ss", "", "en", false, map[string]any{"v": []string{"a", "b"}}, "strings", nil)
		e, ok := c.Get("ss", "", "en", false, map[string]any{"v": []any{"a", "b"}})
		require.True(t, ok)
		assert.Equal(t, "strings", e.Text)
	})
}

func TestUnhashablePayloads(t *testing.T) {
	t.Parallel()

	t.Run("unsupported type skips", func(t *testing.T) {
		c := mustCache(t, 8)
		type opaque struct{ n int }

		c.Put("u", "", "en", false, map[string]any{"v": opaque{1}}, "text", nil)
		_, ok := c.Get("u", "", "en", false, map[string]any{"v": opaque{1}})
		assert.False(t, ok)

		st := c.Stats()
		assert.Equal(t, uint64(2), st.UnhashableSkips, "both put and get must count")
		assert.Equal(t, 0, st.Size)
	})

	t.Run("excessive nesting skips", func(t *testing.T) {
		c := mustCache(t, 8)
		payload := any("leaf")
		for i := 0; i < 10; i++ {
			payload = []any{payload}
		}

		_, ok := c.Get("deep", "", "en", false, map[string]any{"v": payload})
		assert.False(t, ok)
		assert.Equal(t, uint64(1), c.Stats().UnhashableSkips)
	})

	t.Run("self-referential payload skips", func(t *testing.T) {
		c := mustCache(t, 8)
		m := map[string]any{}
		m["self"] = m

		_, ok := c.Get("cycle", "", "en", false, m)
		assert.False(t, ok)
		assert.Equal(t, uint64(1), c.Stats().UnhashableSkips)
	})
}

func TestEviction(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 2)
	args := func(n int) map[string]any { return map[string]any{"n": n} }

	c.Put("a", "", "en", false, nil, "A", nil)
	c.Put("b", "", "en", false, nil, "B", nil)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a", "", "en", false, nil)
	require.True(t, ok)

	c.Put("c", "", "en", false, nil, "C", nil)

	_, ok = c.Get("b", "", "en", false, nil)
	assert.False(t, ok, "least recently used entry must be gone")
	_, ok = c.Get("a", "", "en", false, nil)
	assert.True(t, ok)
	_, ok = c.Get("c", "", "en", false, nil)
	assert.True(t, ok)

	st := c.Stats()
	assert.Equal(t, 2, st.Size)
	assert.Equal(t, 2, st.MaxSize)

	// Size never exceeds the bound however many puts arrive.
	for i := 0; i < 10; i++ {
		c.Put("x", "", "en", false, args(i), "X", nil)
	}
	assert.Equal(t, 2, c.Stats().Size)
}

func TestOverwriteAndWriteOnce(t *testing.T) {
	t.Parallel()

	t.Run("default allows update", func(t *testing.T) {
		c := mustCache(t, 4)
		c.Put("k", "", "en", false, nil, "first", nil)
		c.Put("k", "", "en", false, nil, "second", nil)

		e, ok := c.Get("k", "", "en", false, nil)
		require.True(t, ok)
		assert.Equal(t, "second", e.Text)
	})

	t.Run("write once keeps the first entry", func(t *testing.T) {
		c := mustCache(t, 4, cache.WithWriteOnce())
		c.Put("k", "", "en", false, nil, "first", nil)
		c.Put("k", "", "en", false, nil, "second", nil)

		e, ok := c.Get("k", "", "en", false, nil)
		require.True(t, ok)
		assert.Equal(t, "first", e.Text)

		c.Clear()
		c.Put("k", "", "en", false, nil, "after clear", nil)
		e, ok = c.Get("k", "", "en", false, nil)
		require.True(t, ok)
		assert.Equal(t, "after clear", e.Text)
	})
}

func TestAdmissionBounds(t *testing.T) {
	t.Parallel()

	t.Run("weight accounts text and errors", func(t *testing.T) {
		c := mustCache(t, 4)
		errs := []error{errors.New("a"), errors.New("bb")}
		c.Put("w", "", "en", false, nil, "hello", errs)

		e, ok := c.Get("w", "", "en", false, nil)
		require.True(t, ok)
		// 5 text bytes + (48+1) + (48+2)
		assert.Equal(t, 104, e.Weight)
	})

	t.Run("oversize entries are rejected", func(t *testing.T) {
		c := mustCache(t, 4, cache.WithMaxEntryWeight(10))
		c.Put("big", "", "en", false, nil, "this text is longer than ten bytes", nil)

		_, ok := c.Get("big", "", "en", false, nil)
		assert.False(t, ok)
		st := c.Stats()
		assert.Equal(t, uint64(1), st.OversizeSkips)
		assert.Equal(t, 0, st.Size)
	})

	t.Run("error bloat is rejected", func(t *testing.T) {
		c := mustCache(t, 4, cache.WithMaxErrorsPerEntry(2), cache.WithMaxEntryWeight(1<<20))
		errs := []error{errors.New("1"), errors.New("2"), errors.New("3")}
		c.Put("noisy", "", "en", false, nil, "text", errs)

		_, ok := c.Get("noisy", "", "en", false, nil)
		assert.False(t, ok)
		assert.Equal(t, uint64(1), c.Stats().ErrorBloatSkips)
	})
}

func TestClearResetsEverything(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 4)
	c.Put("k", "", "en", false, nil, "text", nil)
	_, _ = c.Get("k", "", "en", false, nil)
	_, _ = c.Get("missing", "", "en", false, nil)

	st := c.Stats()
	require.Equal(t, 1, st.Size)
	require.Equal(t, uint64(1), st.Hits)
	require.Equal(t, uint64(1), st.Misses)

	c.Clear()

	st = c.Stats()
	assert.Equal(t, 0, st.Size)
	assert.Zero(t, st.Hits)
	assert.Zero(t, st.Misses)
	assert.Zero(t, st.UnhashableSkips)

	_, ok := c.Get("k", "", "en", false, nil)
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := mustCache(t, 64)
	g := new(errgroup.Group)

	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("msg-%d", i%16)
				args := map[string]any{"n": i, "w": w}
				c.Put(id, "", "en", false, args, "text", nil)
				c.Get(id, "", "en", false, args)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	st := c.Stats()
	assert.LessOrEqual(t, st.Size, 64)
}

func BenchmarkCachePutGet(b *testing.B) {
	c, err := cache.New(1024)
	if err != nil {
		b.Fatal(err)
	}
	args := map[string]any{"name": "Ann", "count": 3}
	c.Put("bench", "", "en", false, args, "Hello, Ann!", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("bench", "", "en", false, args)
	}
}
