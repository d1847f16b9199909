package adaptor

import (
	"errors"
	"net/http"

	"bus-booking/internal/booking"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Wizard *WizardHandler
	Trip   *TripHandler
}

// NewHandler builds the HTTP handlers. Trip is nil in remote gateway mode,
// where the booking API lives in another deployment.
func NewHandler(svc *usecase.Service, log *zap.Logger) *Handler {
	h := &Handler{
		Wizard: NewWizardHandler(svc.Wizard, log),
	}
	if svc.Trip != nil {
		h.Trip = NewTripHandler(svc.Trip, log)
	}
	return h
}

// writeServiceError maps use-case and wizard errors onto the response
// envelope. Anything unrecognized is a 500 and gets logged.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, err.Error())
		return
	case errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrTripNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		utils.ResponseNotFound(w, err.Error())
		return
	case errors.Is(err, usecase.ErrSessionForbidden),
		errors.Is(err, usecase.ErrBookingForbidden):
		utils.ResponseForbidden(w, err.Error())
		return
	case errors.Is(err, booking.ErrSubmitInFlight):
		utils.ResponseConflict(w, err.Error(), nil)
		return
	case errors.Is(err, booking.ErrNoSeatsSelected),
		errors.Is(err, booking.ErrRosterIncomplete),
		errors.Is(err, booking.ErrWrongState),
		errors.Is(err, booking.ErrIndexOutOfRange),
		errors.Is(err, booking.ErrInvalidField),
		errors.Is(err, usecase.ErrTripDeparted),
		errors.Is(err, usecase.ErrInvalidSeat),
		errors.Is(err, usecase.ErrSeatCountMismatch),
		errors.Is(err, usecase.ErrBookingNotActive),
		errors.Is(err, usecase.ErrCancelWindowClosed),
		errors.Is(err, usecase.ErrInvalidTripTimes):
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	var conflict *usecase.SeatConflictError
	if errors.As(err, &conflict) {
		utils.ResponseConflict(w, "Some seats are already booked", map[string]any{
			"seats": conflict.Seats,
		})
		return
	}

	var transition *booking.InvalidTransitionError
	if errors.As(err, &transition) {
		utils.ResponseBadRequest(w, transition.Error(), nil)
		return
	}

	var gerr *booking.GatewayError
	if errors.As(err, &gerr) {
		if gerr.Reason == booking.FailureValidation {
			utils.ResponseBadRequest(w, gerr.Message, nil)
			return
		}
		utils.ResponseBadGateway(w, gerr.Message)
		return
	}

	log.Error("Unhandled service error", zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}
