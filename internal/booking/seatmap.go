package booking

import "fmt"

// Seat is one seat in a trip layout as reported by the booking collaborator.
// Row and Column describe the grid position for rendering.
type Seat struct {
	ID     string `json:"seat_number"`
	Booked bool   `json:"is_booked"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

// SeatMap is the availability snapshot for one schedule. It is never patched
// in place: a refresh replaces the whole map.
type SeatMap struct {
	scheduleID string
	order      []string
	seats      map[string]Seat
}

// NewSeatMap builds a snapshot from the collaborator's seat list, preserving
// the received order. Duplicate seat ids are rejected.
func NewSeatMap(scheduleID string, seats []Seat) (*SeatMap, error) {
	m := &SeatMap{
		scheduleID: scheduleID,
		order:      make([]string, 0, len(seats)),
		seats:      make(map[string]Seat, len(seats)),
	}
	for _, s := range seats {
		if _, dup := m.seats[s.ID]; dup {
			return nil, fmt.Errorf("duplicate seat %s in schedule %s", s.ID, scheduleID)
		}
		m.seats[s.ID] = s
		m.order = append(m.order, s.ID)
	}
	return m, nil
}

func (m *SeatMap) ScheduleID() string {
	return m.scheduleID
}

// IsAvailable reports whether the seat can be selected. Unknown seats count
// as unavailable.
func (m *SeatMap) IsAvailable(seatID string) bool {
	s, ok := m.seats[seatID]
	return ok && !s.Booked
}

// All returns the seats in layout order as received from the collaborator,
// so rendering is deterministic.
func (m *SeatMap) All() []Seat {
	out := make([]Seat, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.seats[id])
	}
	return out
}

func (m *SeatMap) Len() int {
	return len(m.order)
}
