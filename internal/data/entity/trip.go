package entity

import "time"

type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusRunning   TripStatus = "running"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is one scheduled departure. Operator/route/bus management lives in the
// back-office system; a trip row carries the denormalized fields booking
// needs.
type Trip struct {
	Base
	Origin         string     `db:"origin"`
	Destination    string     `db:"destination"`
	BusNumber      string     `db:"bus_number"`
	BusType        string     `db:"bus_type"` // AC, Non-AC, Sleeper, Semi-Sleeper
	TotalSeats     int        `db:"total_seats"`
	AvailableSeats int        `db:"available_seats"`
	Price          float64    `db:"price"`
	DepartureAt    time.Time  `db:"departure_at"`
	ArrivalAt      time.Time  `db:"arrival_at"`
	Status         TripStatus `db:"status"`
}
