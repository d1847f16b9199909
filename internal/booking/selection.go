package booking

// MaxSeatsPerBooking caps how many seats one booking may hold. Fixed business
// rule, not configurable per trip.
const MaxSeatsPerBooking = 6

// SelectionSet is the ordered set of seats chosen in one wizard session.
// Order is append order, and it determines the passenger index mapping.
type SelectionSet struct {
	ids []string
}

// Toggle flips the selection state of a seat. Removing an already selected
// seat is always allowed, even when the seat has since become unavailable;
// that is how a user clears a conflicting seat. Adding a seat fails with
// ErrSeatUnavailable or ErrCapacityExceeded and leaves the set unchanged.
func (s *SelectionSet) Toggle(seats *SeatMap, seatID string) error {
	if s.Contains(seatID) {
		s.remove(seatID)
		return nil
	}
	if !seats.IsAvailable(seatID) {
		return ErrSeatUnavailable
	}
	if len(s.ids) >= MaxSeatsPerBooking {
		return ErrCapacityExceeded
	}
	s.ids = append(s.ids, seatID)
	return nil
}

func (s *SelectionSet) remove(seatID string) {
	for i, id := range s.ids {
		if id == seatID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

func (s *SelectionSet) Contains(seatID string) bool {
	for _, id := range s.ids {
		if id == seatID {
			return true
		}
	}
	return false
}

func (s *SelectionSet) Size() int {
	return len(s.ids)
}

// Ordered returns the selected seat ids in selection order.
func (s *SelectionSet) Ordered() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *SelectionSet) Clear() {
	s.ids = nil
}
