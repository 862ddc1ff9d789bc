//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"booking-board/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func slot(t *testing.T, startOffset, endOffset time.Duration) reservation.TimeSlot {
	t.Helper()
	s, err := reservation.NewTimeSlot(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("valid interval", func(t *testing.T) {
		s, err := reservation.NewTimeSlot(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, s.Start())
		assert.Equal(t, base.Add(time.Hour), s.End())
		assert.Equal(t, time.Hour, s.Duration())
	})

	t.Run("end equal to start is rejected", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(base, base)
		assert.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(base, base.Add(-time.Minute))
		assert.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})
}

func TestNewBoundedTimeSlot(t *testing.T) {
	max := 3 * 24 * time.Hour

	t.Run("duration exactly at cap is accepted", func(t *testing.T) {
		_, err := reservation.NewBoundedTimeSlot(base, base.Add(max), max)
		assert.NoError(t, err)
	})

	t.Run("duration over cap is rejected", func(t *testing.T) {
		_, err := reservation.NewBoundedTimeSlot(base, base.Add(max+time.Second), max)
		assert.ErrorIs(t, err, reservation.ErrIntervalTooLong)
	})

	t.Run("ordering check runs before the cap", func(t *testing.T) {
		_, err := reservation.NewBoundedTimeSlot(base, base, max)
		assert.ErrorIs(t, err, reservation.ErrInvalidInterval)
	})

	t.Run("zero cap disables the bound", func(t *testing.T) {
		_, err := reservation.NewBoundedTimeSlot(base, base.Add(30*24*time.Hour), 0)
		assert.NoError(t, err)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b reservation.TimeSlot
		want bool
	}{
		{
			name: "identical slots overlap",
			a:    slot(t, 0, time.Hour),
			b:    slot(t, 0, time.Hour),
			want: true,
		},
		{
			name: "partial overlap",
			a:    slot(t, 0, 2*time.Hour),
			b:    slot(t, time.Hour, 3*time.Hour),
			want: true,
		},
		{
			name: "containment",
			a:    slot(t, 0, 4*time.Hour),
			b:    slot(t, time.Hour, 2*time.Hour),
			want: true,
		},
		{
			name: "back to back slots do not overlap",
			a:    slot(t, 0, time.Hour),
			b:    slot(t, time.Hour, 2*time.Hour),
			want: false,
		},
		{
			name: "disjoint slots do not overlap",
			a:    slot(t, 0, time.Hour),
			b:    slot(t, 2*time.Hour, 3*time.Hour),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestTimeSlotContains(t *testing.T) {
	s := slot(t, 0, time.Hour)

	assert.True(t, s.Contains(base), "start instant is occupied")
	assert.True(t, s.Contains(base.Add(30*time.Minute)))
	assert.False(t, s.Contains(base.Add(time.Hour)), "end instant is free")
	assert.False(t, s.Contains(base.Add(-time.Second)))
}

func TestTimeSlotHasEnded(t *testing.T) {
	s := slot(t, 0, time.Hour)

	assert.False(t, s.HasEnded(base.Add(59*time.Minute)))
	assert.True(t, s.HasEnded(base.Add(time.Hour)), "slot ends exactly at its end instant")
	assert.True(t, s.HasEnded(base.Add(2*time.Hour)))
}
