package booking

import (
	"fmt"

	"go.uber.org/zap"
)

// State is one step of the booking wizard.
type State string

const (
	StateSelectingSeats     State = "selecting_seats"
	StateEnteringPassengers State = "entering_passengers"
	StateConfirmingPayment  State = "confirming_payment"
	StateCompleted          State = "completed"
	StateFailed             State = "failed"
)

// allowedTransitions lists the states reachable from each state via Next,
// Back or a submit outcome. Reset is always permitted and not listed.
var allowedTransitions = map[State][]State{
	StateSelectingSeats:     {StateEnteringPassengers},
	StateEnteringPassengers: {StateConfirmingPayment, StateSelectingSeats},
	StateConfirmingPayment:  {StateEnteringPassengers, StateCompleted, StateFailed},
	StateCompleted:          {},
	StateFailed:             {StateSelectingSeats},
}

func canTransition(from, to State) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Wizard sequences one booking session: seat selection, passenger entry,
// payment confirmation, terminal result. It owns the seat-map snapshot, the
// selection and the roster, and guards every transition. The type is not
// safe for concurrent use; callers serialize access per session.
type Wizard struct {
	scheduleID   string
	perSeatPrice float64

	seats     *SeatMap
	selection SelectionSet
	roster    PassengerRoster

	state      State
	submitting bool
	generation uint64

	result  *BookingResult
	failure *GatewayError

	log *zap.Logger
}

// NewWizard starts a session over a freshly fetched seat list. The per-seat
// price comes from the trip search result that led the user here.
func NewWizard(scheduleID string, perSeatPrice float64, seats []Seat, log *zap.Logger) (*Wizard, error) {
	m, err := NewSeatMap(scheduleID, seats)
	if err != nil {
		return nil, err
	}
	return &Wizard{
		scheduleID:   scheduleID,
		perSeatPrice: perSeatPrice,
		seats:        m,
		state:        StateSelectingSeats,
		log: log.With(
			zap.String("component", "wizard"),
			zap.String("schedule_id", scheduleID),
		),
	}, nil
}

func (w *Wizard) State() State           { return w.state }
func (w *Wizard) ScheduleID() string     { return w.scheduleID }
func (w *Wizard) PerSeatPrice() float64  { return w.perSeatPrice }
func (w *Wizard) SeatMap() *SeatMap      { return w.seats }
func (w *Wizard) Selection() []string    { return w.selection.Ordered() }
func (w *Wizard) SelectionSize() int     { return w.selection.Size() }
func (w *Wizard) Submitting() bool       { return w.submitting }
func (w *Wizard) Result() *BookingResult { return w.result }
func (w *Wizard) Failure() *GatewayError { return w.failure }

func (w *Wizard) Roster() []PassengerDetail {
	return w.roster.Entries()
}

// Total is always computed from live state, never cached, so it cannot go
// stale after seat toggling.
func (w *Wizard) Total() float64 {
	return float64(w.selection.Size()) * w.perSeatPrice
}

// ToggleSeat flips a seat's selection during seat selection and keeps the
// roster aligned with the new order.
func (w *Wizard) ToggleSeat(seatID string) error {
	if w.submitting {
		return ErrSubmitInFlight
	}
	if w.state != StateSelectingSeats {
		return fmt.Errorf("%w: toggle seat in %s", ErrWrongState, w.state)
	}
	if err := w.selection.Toggle(w.seats, seatID); err != nil {
		w.log.Warn("Seat toggle rejected",
			zap.String("seat", seatID),
			zap.Int("selected", w.selection.Size()),
			zap.Error(err),
		)
		return err
	}
	w.roster.SyncToSelection(&w.selection)
	return nil
}

// UpdatePassenger edits one field of one roster entry during passenger entry.
func (w *Wizard) UpdatePassenger(index int, field, value string) error {
	if w.submitting {
		return ErrSubmitInFlight
	}
	if w.state != StateEnteringPassengers {
		return fmt.Errorf("%w: edit passengers in %s", ErrWrongState, w.state)
	}
	return w.roster.Update(index, field, value)
}

// Next advances one step, gated on the step's validation predicate.
func (w *Wizard) Next() error {
	if w.submitting {
		return ErrSubmitInFlight
	}
	switch w.state {
	case StateSelectingSeats:
		if w.selection.Size() == 0 {
			return ErrNoSeatsSelected
		}
		w.setState(StateEnteringPassengers)
	case StateEnteringPassengers:
		if !w.roster.IsComplete() {
			return ErrRosterIncomplete
		}
		w.setState(StateConfirmingPayment)
	default:
		return &InvalidTransitionError{From: w.state}
	}
	return nil
}

// Back navigates one step backwards, unconditionally and without data loss.
// From the failed state it returns to seat selection with selection and
// roster intact, which is how a user recovers from a seat conflict.
func (w *Wizard) Back() error {
	if w.submitting {
		return ErrSubmitInFlight
	}
	switch w.state {
	case StateEnteringPassengers:
		w.setState(StateSelectingSeats)
	case StateConfirmingPayment:
		w.setState(StateEnteringPassengers)
	case StateFailed:
		w.failure = nil
		w.setState(StateSelectingSeats)
	default:
		return &InvalidTransitionError{From: w.state}
	}
	return nil
}

// BeginSubmit validates the machine is ready, marks the submission in flight
// and returns the request snapshot plus a generation token. The caller makes
// the gateway call without holding the wizard and reports back through
// CompleteSubmit. A second BeginSubmit while one is outstanding is rejected
// here, at the state-machine level.
func (w *Wizard) BeginSubmit() (*BookingRequest, uint64, error) {
	if w.submitting {
		return nil, 0, ErrSubmitInFlight
	}
	if w.state != StateConfirmingPayment {
		return nil, 0, &InvalidTransitionError{From: w.state, To: StateCompleted}
	}
	if !w.roster.IsComplete() {
		return nil, 0, ErrRosterIncomplete
	}
	req := &BookingRequest{
		ScheduleID: w.scheduleID,
		Seats:      w.selection.Ordered(),
		Passengers: w.roster.Passengers(),
	}
	w.submitting = true
	return req, w.generation, nil
}

// CompleteSubmit applies a submit outcome. Outcomes from a generation older
// than the current one (the wizard was reset meanwhile) are discarded with
// ErrStaleSubmit and leave the state untouched. On success the wizard
// terminates in completed and the session data is cleared; on failure it
// terminates in failed with the typed reason while selection and roster stay
// intact for retry.
func (w *Wizard) CompleteSubmit(gen uint64, result *BookingResult, submitErr error) (*BookingResult, error) {
	if gen != w.generation {
		return nil, ErrStaleSubmit
	}
	w.submitting = false

	if submitErr != nil {
		gerr := AsGatewayError(submitErr)
		w.failure = gerr
		w.setState(StateFailed)
		w.log.Warn("Booking submission failed",
			zap.String("reason", string(gerr.Reason)),
			zap.Strings("conflict_seats", gerr.Seats),
		)
		return nil, gerr
	}

	w.result = result
	w.failure = nil
	w.setState(StateCompleted)
	w.selection.Clear()
	w.roster.SyncToSelection(&w.selection)
	w.log.Info("Booking completed",
		zap.String("booking_id", result.BookingID),
		zap.Float64("total_amount", result.TotalAmount),
	)
	return result, nil
}

// Reset starts the session over: selection, roster and any result or failure
// are discarded and the generation is bumped so an in-flight submit outcome
// cannot land. The seat-map snapshot is kept.
func (w *Wizard) Reset() {
	w.generation++
	w.submitting = false
	w.selection.Clear()
	w.roster.Clear()
	w.roster.SyncToSelection(&w.selection)
	w.result = nil
	w.failure = nil
	w.state = StateSelectingSeats
}

// RefreshSeatMap replaces the availability snapshot wholesale, typically
// after a seat conflict. Selection and roster are preserved; seats that
// became booked stay selected until the user toggles them off.
func (w *Wizard) RefreshSeatMap(seats []Seat) error {
	m, err := NewSeatMap(w.scheduleID, seats)
	if err != nil {
		return err
	}
	w.seats = m
	return nil
}

func (w *Wizard) setState(to State) {
	if !canTransition(w.state, to) {
		// Guards run before every setState call; reaching this is a bug.
		w.log.Error("Illegal state transition",
			zap.String("from", string(w.state)),
			zap.String("to", string(to)),
		)
		return
	}
	w.state = to
}
