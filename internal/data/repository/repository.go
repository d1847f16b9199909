package repository

import (
	"bus-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Trip        TripRepository
	Booking     BookingRepository
	BookingSeat BookingSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Trip:        NewTripRepository(db, log),
		Booking:     NewBookingRepository(db, log),
		BookingSeat: NewBookingSeatRepository(db, log),
	}
}
