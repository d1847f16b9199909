package booking

import "context"

// Passenger is a submitted passenger record. Unlike the roster's form state,
// the age here is parsed and validated.
type Passenger struct {
	Name   string `json:"name" validate:"required"`
	Age    int    `json:"age" validate:"required,min=1,max=100"`
	Gender Gender `json:"gender" validate:"required,oneof=male female other"`
}

// BookingRequest is the atomic submission built once at the final wizard
// step. Seats and Passengers are index-aligned snapshots.
type BookingRequest struct {
	ScheduleID string      `json:"schedule_id"`
	Seats      []string    `json:"seats"`
	Passengers []Passenger `json:"passengers"`
}

// BookingResult is a confirmed booking as reported by the collaborator.
type BookingResult struct {
	BookingID   string   `json:"booking_id"`
	TicketNo    string   `json:"ticket_no"`
	Seats       []string `json:"seats"`
	TotalAmount float64  `json:"total_amount"`
	Status      string   `json:"status"`
}

// Gateway is the external collaborator boundary. Implementations translate
// their own failures into *GatewayError so the wizard can branch on the
// reason. The authenticated user travels in the context, set by the auth
// middleware.
type Gateway interface {
	// FetchSeatMap returns the seat layout with current availability for
	// one schedule. Failures carry reason fetch_error.
	FetchSeatMap(ctx context.Context, scheduleID string) ([]Seat, error)

	// SubmitBooking books the requested seats atomically. Failures carry
	// reason seat_conflict, validation_error or server_error.
	SubmitBooking(ctx context.Context, req *BookingRequest) (*BookingResult, error)
}
