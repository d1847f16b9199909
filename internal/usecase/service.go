package usecase

// Service groups the use cases exposed to the HTTP layer. Wizard is assembled
// separately because it depends on a booking gateway, which in local mode is
// backed by Trip.
type Service struct {
	Trip   TripService
	Wizard WizardService
}
