package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardHandler struct {
	svc usecase.WizardService
	log *zap.Logger
}

func NewWizardHandler(svc usecase.WizardService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		svc: svc,
		log: log.With(zap.String("handler", "wizard")),
	}
}

// Start handles POST /api/wizard
func (h *WizardHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartWizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.svc.Start(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Wizard session started", resp)
}

// Get handles GET /api/wizard/{id}
func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Wizard session", resp)
}

// ToggleSeat handles POST /api/wizard/{id}/seats/{seat}
func (h *WizardHandler) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	seat := chi.URLParam(r, "seat")
	if seat == "" {
		utils.ResponseBadRequest(w, "Seat number is required", nil)
		return
	}

	resp, err := h.svc.ToggleSeat(r.Context(), id, seat)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Seat toggled", resp)
}

// UpdatePassenger handles PUT /api/wizard/{id}/passengers/{index}
func (h *WizardHandler) UpdatePassenger(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid passenger index", nil)
		return
	}

	var req request.UpdatePassengerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	resp, err := h.svc.UpdatePassenger(r.Context(), id, index, &req)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Passenger updated", resp)
}

// Next handles POST /api/wizard/{id}/next
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.svc.Next, "Moved to next step")
}

// Back handles POST /api/wizard/{id}/back
func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.svc.Back, "Moved to previous step")
}

// Reset handles POST /api/wizard/{id}/reset
func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.svc.Reset, "Wizard session reset")
}

// Submit handles POST /api/wizard/{id}/submit
func (h *WizardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, h.svc.Submit, "Booking submitted")
}

func (h *WizardHandler) step(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error),
	message string,
) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	resp, err := op(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, message, resp)
}

func (h *WizardHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session id", nil)
		return uuid.Nil, false
	}
	return id, true
}
