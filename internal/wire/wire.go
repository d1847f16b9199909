package wire

import (
	"net/http"
	"time"

	"bus-booking/internal/adaptor"
	"bus-booking/internal/booking"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/gateway"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring assembles repositories, services, the booking gateway and the HTTP
// surface. In local gateway mode the wizard submits into this process's own
// trip service; in remote mode it proxies the configured booking API and repo
// may be nil, which disables the trip routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	var tripSrv usecase.TripService
	if repo != nil {
		tripSrv = usecase.NewTripService(repo, logger)
	}

	var gw booking.Gateway
	if config.Gateway.Mode == utils.GatewayModeRemote {
		gw = gateway.NewRemote(config.Gateway, logger)
	} else {
		gw = gateway.NewLocal(tripSrv, logger)
	}

	ttl := time.Duration(config.Wizard.SessionTTLMinutes) * time.Minute
	wizardSrv := usecase.NewWizardService(gw, ttl, logger)

	service := &usecase.Service{
		Trip:   tripSrv,
		Wizard: wizardSrv,
	}
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireWizard(r, handler.Wizard, config, logger)
	if handler.Trip != nil {
		wireTrip(r, handler.Trip, config, logger)
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
