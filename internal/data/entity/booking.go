package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	Base
	TicketNo     string        `db:"ticket_no"`
	UserID       uuid.UUID     `db:"user_id"`
	ScheduleID   uuid.UUID     `db:"schedule_id"`
	TotalSeats   int           `db:"total_seats"`
	TotalAmount  float64       `db:"total_amount"`
	Status       BookingStatus `db:"status"`
	CancelledAt  *time.Time    `db:"cancelled_at"`
	RefundAmount *float64      `db:"refund_amount"`
}
