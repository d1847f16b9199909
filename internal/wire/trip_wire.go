package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTrip(
	r chi.Router,
	tripHandler *adaptor.TripHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/trips/{scheduleID}/seats - Seat map with availability
	r.Get("/api/trips/{scheduleID}/seats", tripHandler.GetSeatMap)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/bookings - Book seats atomically
		r.Post("/api/bookings", tripHandler.CreateBooking)

		// GET /api/bookings - Booking history (user's own bookings)
		r.Get("/api/bookings", tripHandler.GetUserBookings)

		// POST /api/bookings/{id}/cancel - Cancel a booking with refund
		r.Post("/api/bookings/{id}/cancel", tripHandler.CancelBooking)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/trips", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))
		r.Use(middleware.Admin(log))

		// POST /api/admin/trips - Create a trip schedule (admin)
		r.Post("/", tripHandler.CreateTrip)
	})
}
