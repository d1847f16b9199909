package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeatMapRejectsDuplicates(t *testing.T) {
	_, err := NewSeatMap("sched-1", []Seat{
		{ID: "01"},
		{ID: "02"},
		{ID: "01"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate seat 01")
}

func TestSeatMapAvailability(t *testing.T) {
	m, err := NewSeatMap("sched-1", []Seat{
		{ID: "01"},
		{ID: "02", Booked: true},
	})
	require.NoError(t, err)

	assert.True(t, m.IsAvailable("01"))
	assert.False(t, m.IsAvailable("02"), "booked seat must be unavailable")
	assert.False(t, m.IsAvailable("99"), "unknown seat must be unavailable")
}

func TestSeatMapAllKeepsLayoutOrder(t *testing.T) {
	// Deliberately not sorted: All must return the received order, not a
	// seat-number order.
	seats := []Seat{
		{ID: "03", Row: 1, Column: 3},
		{ID: "01", Row: 1, Column: 1},
		{ID: "02", Row: 1, Column: 2},
	}
	m, err := NewSeatMap("sched-1", seats)
	require.NoError(t, err)

	got := m.All()
	require.Len(t, got, 3)
	assert.Equal(t, "03", got[0].ID)
	assert.Equal(t, "01", got[1].ID)
	assert.Equal(t, "02", got[2].ID)
	assert.Equal(t, 3, m.Len())
}
