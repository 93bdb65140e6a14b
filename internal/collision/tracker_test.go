package collision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	t.Run("DistinctHashes", func(t *testing.T) {
		tracker := NewTracker(2)
		tracker.Track(1, "alpha")
		tracker.Track(2, "beta")

		require.False(t, tracker.HasCollision())

		name, ok := tracker.Lookup(2)
		require.True(t, ok)
		require.Equal(t, "beta", name)

		_, ok = tracker.Lookup(3)
		require.False(t, ok)
	})

	t.Run("SameNameTwice", func(t *testing.T) {
		tracker := NewTracker(0)
		tracker.Track(7, "gamma")
		tracker.Track(7, "gamma")

		require.False(t, tracker.HasCollision())
		require.Empty(t, tracker.Collisions())
	})

	t.Run("CollisionKeepsLast", func(t *testing.T) {
		tracker := NewTracker(0)
		tracker.Track(9, "first")
		tracker.Track(9, "second")
		tracker.Track(9, "third")

		require.True(t, tracker.HasCollision())
		require.Equal(t, []uint32{9}, tracker.Collisions())

		name, _ := tracker.Lookup(9)
		require.Equal(t, "third", name)
	})
}
