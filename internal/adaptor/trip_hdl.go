package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripHandler struct {
	svc usecase.TripService
	log *zap.Logger
}

func NewTripHandler(svc usecase.TripService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		svc: svc,
		log: log.With(zap.String("handler", "trip")),
	}
}

// CreateTrip handles POST /api/admin/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.svc.CreateTrip(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Trip created", resp)
}

// GetSeatMap handles GET /api/trips/{scheduleID}/seats
func (h *TripHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(chi.URLParam(r, "scheduleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule id", nil)
		return
	}

	resp, err := h.svc.GetSeatMap(r.Context(), scheduleID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Seat map", resp)
}

// CreateBooking handles POST /api/bookings
func (h *TripHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.svc.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", resp)
}

// GetUserBookings handles GET /api/bookings
func (h *TripHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	page := &request.PaginatedRequest{
		Page:  utils.ParseInt(r.URL.Query().Get("page"), 1),
		Limit: utils.ParseInt(r.URL.Query().Get("limit"), 10),
	}

	resp, err := h.svc.GetUserBookings(r.Context(), userID, page)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Bookings", resp)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *TripHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking id", nil)
		return
	}

	resp, err := h.svc.CancelBooking(r.Context(), userID, bookingID)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", resp)
}
