package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Recoverable user-input errors. The wizard stays in its current state when
// any of these is returned; the caller surfaces them as a notice and the user
// can correct and retry.
var (
	ErrSeatUnavailable  = errors.New("seat is already booked or unknown")
	ErrCapacityExceeded = fmt.Errorf("cannot select more than %d seats per booking", MaxSeatsPerBooking)
	ErrIndexOutOfRange  = errors.New("passenger index out of range")
	ErrInvalidField     = errors.New("invalid passenger field")
	ErrNoSeatsSelected  = errors.New("select at least one seat to continue")
	ErrRosterIncomplete = errors.New("every passenger needs a name and a valid age")
	ErrWrongState       = errors.New("action not allowed in current step")
)

// Submission lifecycle errors.
var (
	// ErrSubmitInFlight rejects any mutation or second submit while a
	// booking submission is outstanding.
	ErrSubmitInFlight = errors.New("a booking submission is already in progress")

	// ErrStaleSubmit marks a submit outcome that arrived after the wizard
	// was reset; the outcome is discarded.
	ErrStaleSubmit = errors.New("booking submission superseded by reset")
)

// InvalidTransitionError reports a step change the state machine refuses.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("no transition available from state %s", e.From)
	}
	return fmt.Sprintf("transition %s -> %s not allowed", e.From, e.To)
}

// FailureReason classifies collaborator failures.
type FailureReason string

const (
	FailureSeatConflict FailureReason = "seat_conflict"
	FailureValidation   FailureReason = "validation_error"
	FailureServer       FailureReason = "server_error"
	FailureFetch        FailureReason = "fetch_error"
)

// GatewayError is a failure reported by the booking collaborator. Seats is
// populated on a seat conflict with the seats another party already took.
type GatewayError struct {
	Reason  FailureReason
	Message string
	Seats   []string
}

func (e *GatewayError) Error() string {
	if len(e.Seats) > 0 {
		return fmt.Sprintf("%s: %s (seats %s)", e.Reason, e.Message, strings.Join(e.Seats, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// AsGatewayError normalizes any submission error into a GatewayError.
// Unclassified errors count as server errors.
func AsGatewayError(err error) *GatewayError {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr
	}
	return &GatewayError{Reason: FailureServer, Message: err.Error()}
}
