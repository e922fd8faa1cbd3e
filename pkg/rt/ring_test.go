package rt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRing_FIFOOrdering(t *testing.T) {
	r := NewRing[int](4)
	require.True(t, r.TryPush(1))
	require.True(t, r.TryPush(2))
	require.True(t, r.TryPush(3))

	v, ok := r.TryPop()
	require.True(t, ok)
	require.Equal(t, 1, v)

	v, ok = r.TryPop()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestRing_FullReturnsFalse(t *testing.T) {
	r := NewRing[int](2)
	require.True(t, r.TryPush(1))
	require.True(t, r.TryPush(2))
	require.False(t, r.TryPush(3))
}

func TestRing_EmptyPopReturnsFalse(t *testing.T) {
	r := NewRing[int](2)
	_, ok := r.TryPop()
	require.False(t, ok)
}

func TestRing_PropertyFIFOUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(t, "capacity")
		r := NewRing[int](capacity)

		var pushed, popped []int
		n := rapid.IntRange(1, 200).Draw(t, "ops")
		next := 0
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "pushOrPop") {
				if r.TryPush(next) {
					pushed = append(pushed, next)
					next++
				}
			} else {
				if v, ok := r.TryPop(); ok {
					popped = append(popped, v)
				}
			}
		}
		for i := range popped {
			if popped[i] != pushed[i] {
				t.Fatalf("FIFO violated: popped %v, expected prefix of pushed %v", popped, pushed)
			}
		}
	})
}
