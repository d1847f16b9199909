package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWizard(
	r chi.Router,
	wizardHandler *adaptor.WizardHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// All wizard routes require an authenticated user; sessions are private
	// to the user who started them.
	r.Route("/api/wizard", func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/wizard - Start a wizard session for a schedule
		r.Post("/", wizardHandler.Start)

		// GET /api/wizard/{id} - Current session snapshot
		r.Get("/{id}", wizardHandler.Get)

		// POST /api/wizard/{id}/seats/{seat} - Toggle a seat
		r.Post("/{id}/seats/{seat}", wizardHandler.ToggleSeat)

		// PUT /api/wizard/{id}/passengers/{index} - Edit one passenger field
		r.Put("/{id}/passengers/{index}", wizardHandler.UpdatePassenger)

		// POST /api/wizard/{id}/next - Advance a step
		r.Post("/{id}/next", wizardHandler.Next)

		// POST /api/wizard/{id}/back - Go back a step
		r.Post("/{id}/back", wizardHandler.Back)

		// POST /api/wizard/{id}/reset - Start the session over
		r.Post("/{id}/reset", wizardHandler.Reset)

		// POST /api/wizard/{id}/submit - Submit the booking
		r.Post("/{id}/submit", wizardHandler.Submit)
	})
}
