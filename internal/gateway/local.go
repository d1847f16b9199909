package gateway

import (
	"context"
	"errors"

	"bus-booking/internal/booking"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Local serves the booking contract from this service's own trip use case,
// for deployments that run the wizard and the booking API in one process.
type Local struct {
	trips usecase.TripService
	log   *zap.Logger
}

func NewLocal(trips usecase.TripService, log *zap.Logger) *Local {
	return &Local{
		trips: trips,
		log:   log.With(zap.String("gateway", "local")),
	}
}

func (g *Local) FetchSeatMap(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: "invalid schedule id: " + scheduleID,
		}
	}

	resp, err := g.trips.GetSeatMap(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrTripNotFound) {
			return nil, &booking.GatewayError{
				Reason:  booking.FailureFetch,
				Message: err.Error(),
			}
		}
		g.log.Error("Seat map lookup failed",
			zap.String("schedule_id", scheduleID),
			zap.Error(err),
		)
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: "seat map lookup failed",
		}
	}

	return resp.Seats, nil
}

func (g *Local) SubmitBooking(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureValidation,
			Message: "no authenticated user on booking submission",
		}
	}

	passengers := make([]request.PassengerPayload, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = request.PassengerPayload{
			Name:   p.Name,
			Age:    p.Age,
			Gender: string(p.Gender),
		}
	}

	resp, err := g.trips.CreateBooking(ctx, userID, &request.CreateBookingRequest{
		ScheduleID: req.ScheduleID,
		Seats:      req.Seats,
		Passengers: passengers,
	})
	if err != nil {
		return nil, g.classify(err)
	}

	seats := make([]string, len(resp.Seats))
	for i, s := range resp.Seats {
		seats[i] = s.SeatNumber
	}

	return &booking.BookingResult{
		BookingID:   resp.ID,
		TicketNo:    resp.TicketNo,
		Seats:       seats,
		TotalAmount: resp.TotalAmount,
		Status:      resp.Status,
	}, nil
}

func (g *Local) classify(err error) *booking.GatewayError {
	var conflict *usecase.SeatConflictError
	if errors.As(err, &conflict) {
		return &booking.GatewayError{
			Reason:  booking.FailureSeatConflict,
			Message: "some seats were booked by another user",
			Seats:   conflict.Seats,
		}
	}

	switch {
	case errors.Is(err, usecase.ErrTripNotFound),
		errors.Is(err, usecase.ErrTripDeparted),
		errors.Is(err, usecase.ErrInvalidSeat),
		errors.Is(err, usecase.ErrSeatCountMismatch):
		return &booking.GatewayError{
			Reason:  booking.FailureValidation,
			Message: err.Error(),
		}
	}

	g.log.Error("Booking submission failed", zap.Error(err))
	return &booking.GatewayError{
		Reason:  booking.FailureServer,
		Message: "booking could not be completed",
	}
}
