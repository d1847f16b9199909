package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("authenticated user required")
	ErrTripNotFound       = errors.New("trip not found")
	ErrTripDeparted       = errors.New("trip has already departed")
	ErrInvalidSeat        = errors.New("seat number is not part of this trip")
	ErrSeatCountMismatch  = errors.New("seats and passengers must match one to one")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingForbidden   = errors.New("booking belongs to another user")
	ErrBookingNotActive   = errors.New("booking is not in a cancellable state")
	ErrCancelWindowClosed = errors.New("bookings can only be cancelled more than 2 hours before departure")
	ErrInvalidTripTimes   = errors.New("arrival must be after departure")
	ErrSessionNotFound    = errors.New("wizard session not found or expired")
	ErrSessionForbidden   = errors.New("wizard session belongs to another user")
)

// SeatConflictError reports seats that were confirmed by another booking
// between seat-map fetch and submission.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}
