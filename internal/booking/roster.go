package booking

import (
	"fmt"
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PassengerDetail is the form state for one selected seat. Age stays the raw
// input string until submission; completeness checks parse it.
type PassengerDetail struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender Gender `json:"gender"`
}

// PassengerRoster holds one PassengerDetail per selected seat, index-aligned
// with the selection order. Details are conceptually keyed by seat id even
// though they are exposed positionally.
type PassengerRoster struct {
	seatIDs []string
	entries []PassengerDetail
}

// SyncToSelection re-derives the roster for the current selection. Entries
// are matched by seat id, not by position, so deselecting an earlier seat
// keeps every remaining passenger on the seat it was entered for. Seats
// without a previous entry start as an empty form with the default gender.
func (r *PassengerRoster) SyncToSelection(sel *SelectionSet) {
	prev := make(map[string]PassengerDetail, len(r.seatIDs))
	for i, id := range r.seatIDs {
		prev[id] = r.entries[i]
	}

	ids := sel.Ordered()
	entries := make([]PassengerDetail, len(ids))
	for i, id := range ids {
		if d, ok := prev[id]; ok {
			entries[i] = d
		} else {
			entries[i] = PassengerDetail{Gender: GenderMale}
		}
	}
	r.seatIDs = ids
	r.entries = entries
}

// Update edits one field of one entry in place. Field is one of "name",
// "age", "gender".
func (r *PassengerRoster) Update(index int, field, value string) error {
	if index < 0 || index >= len(r.entries) {
		return ErrIndexOutOfRange
	}
	switch field {
	case "name":
		r.entries[index].Name = value
	case "age":
		r.entries[index].Age = value
	case "gender":
		g := Gender(value)
		if g != GenderMale && g != GenderFemale && g != GenderOther {
			return fmt.Errorf("%w: gender %q", ErrInvalidField, value)
		}
		r.entries[index].Gender = g
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	return nil
}

// IsComplete reports whether every entry has a non-empty name and an age that
// parses to an integer in [1,100]. Gender always has a default, so it never
// blocks completeness.
func (r *PassengerRoster) IsComplete() bool {
	for _, e := range r.entries {
		if strings.TrimSpace(e.Name) == "" {
			return false
		}
		age, err := strconv.Atoi(strings.TrimSpace(e.Age))
		if err != nil || age < 1 || age > 100 {
			return false
		}
	}
	return true
}

func (r *PassengerRoster) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the roster in selection order.
func (r *PassengerRoster) Entries() []PassengerDetail {
	out := make([]PassengerDetail, len(r.entries))
	copy(out, r.entries)
	return out
}

// Passengers converts the roster into submission records. Callers check
// IsComplete first; an unparseable age would come through as zero.
func (r *PassengerRoster) Passengers() []Passenger {
	out := make([]Passenger, len(r.entries))
	for i, e := range r.entries {
		age, _ := strconv.Atoi(strings.TrimSpace(e.Age))
		out[i] = Passenger{
			Name:   strings.TrimSpace(e.Name),
			Age:    age,
			Gender: e.Gender,
		}
	}
	return out
}

func (r *PassengerRoster) Clear() {
	r.seatIDs = nil
	r.entries = nil
}
