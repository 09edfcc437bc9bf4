package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluentkit/resolver"
)

func TestNewBudget(t *testing.T) {
	t.Parallel()

	t.Run("positive limit", func(t *testing.T) {
		t.Parallel()

		b := resolver.NewBudget(100)
		assert.Equal(t, 100, b.Limit())
		assert.Equal(t, 0, b.Used())
		assert.False(t, b.Exceeded())
	})

	t.Run("panics on zero", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { resolver.NewBudget(0) })
	})

	t.Run("panics on negative", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { resolver.NewBudget(-1) })
	})
}

func TestBudgetTrack(t *testing.T) {
	t.Parallel()

	t.Run("landing exactly on the limit is fine", func(t *testing.T) {
		t.Parallel()

		b := resolver.NewBudget(10)
		require.NoError(t, b.Track(4))
		require.NoError(t, b.Track(6))
		assert.Equal(t, 10, b.Used())
		assert.True(t, b.Exceeded(), "at the limit no further work is allowed")
	})

	t.Run("passing the limit fails", func(t *testing.T) {
		t.Parallel()

		b := resolver.NewBudget(10)
		require.NoError(t, b.Track(10))

		err := b.Track(1)
		require.Error(t, err)
		require.ErrorIs(t, err, resolver.ErrBudgetExceeded)

		var bx *resolver.BudgetExceededError
		require.ErrorAs(t, err, &bx)
		assert.Equal(t, 11, bx.Used)
		assert.Equal(t, 10, bx.Limit)
	})

	t.Run("keeps counting past the limit", func(t *testing.T) {
		t.Parallel()

		b := resolver.NewBudget(5)
		require.Error(t, b.Track(9))
		assert.Equal(t, 9, b.Used())
		assert.True(t, b.Exceeded())
	})
}
