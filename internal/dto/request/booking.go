package request

type PassengerPayload struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Age    int    `json:"age" validate:"required,min=1,max=100"`
	Gender string `json:"gender" validate:"required,oneof=male female other"`
}

type CreateBookingRequest struct {
	ScheduleID string             `json:"schedule_id" validate:"required,uuid4"`
	Seats      []string           `json:"seats" validate:"required,min=1,max=6,dive,required"`
	Passengers []PassengerPayload `json:"passengers" validate:"required,min=1,dive"`
}

type CreateTripRequest struct {
	Origin      string  `json:"origin" validate:"required,min=2,max=100"`
	Destination string  `json:"destination" validate:"required,min=2,max=100"`
	BusNumber   string  `json:"bus_number" validate:"required,min=2,max=20"`
	BusType     string  `json:"bus_type" validate:"required,oneof=AC Non-AC Sleeper Semi-Sleeper"`
	TotalSeats  int     `json:"total_seats" validate:"required,min=1,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	DepartureAt string  `json:"departure_at" validate:"required"`
	ArrivalAt   string  `json:"arrival_at" validate:"required"`
}
