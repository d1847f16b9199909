package entity

import "github.com/google/uuid"

// BookingSeat is one booked seat with the passenger who occupies it.
type BookingSeat struct {
	BaseSimple
	BookingID       uuid.UUID `db:"booking_id"`
	SeatNumber      string    `db:"seat_number"`
	PassengerName   string    `db:"passenger_name"`
	PassengerAge    int       `db:"passenger_age"`
	PassengerGender string    `db:"passenger_gender"`
}
