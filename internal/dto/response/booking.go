package response

import (
	"time"

	"bus-booking/internal/booking"
	"bus-booking/internal/data/entity"
)

type SeatMapResponse struct {
	ScheduleID string         `json:"schedule_id"`
	TotalSeats int            `json:"total_seats"`
	Price      float64        `json:"price"`
	Seats      []booking.Seat `json:"seats"`
}

type BookedSeatResponse struct {
	SeatNumber      string `json:"seat_number"`
	PassengerName   string `json:"passenger_name"`
	PassengerAge    int    `json:"passenger_age"`
	PassengerGender string `json:"passenger_gender"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	TicketNo    string               `json:"ticket_no"`
	ScheduleID  string               `json:"schedule_id"`
	TotalSeats  int                  `json:"total_seats"`
	TotalAmount float64              `json:"total_amount"`
	Status      string               `json:"status"`
	Seats       []BookedSeatResponse `json:"seats,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

func NewBookingResponse(b *entity.Booking, seats []entity.BookingSeat) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID.String(),
		TicketNo:    b.TicketNo,
		ScheduleID:  b.ScheduleID.String(),
		TotalSeats:  b.TotalSeats,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
	for _, s := range seats {
		resp.Seats = append(resp.Seats, BookedSeatResponse{
			SeatNumber:      s.SeatNumber,
			PassengerName:   s.PassengerName,
			PassengerAge:    s.PassengerAge,
			PassengerGender: s.PassengerGender,
		})
	}
	return resp
}

type CancellationResponse struct {
	BookingID    string    `json:"booking_id"`
	Status       string    `json:"status"`
	RefundAmount float64   `json:"refund_amount"`
	CancelledAt  time.Time `json:"cancelled_at"`
}

type TripResponse struct {
	ID             string    `json:"id"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	BusNumber      string    `json:"bus_number"`
	BusType        string    `json:"bus_type"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	Price          float64   `json:"price"`
	DepartureAt    time.Time `json:"departure_at"`
	ArrivalAt      time.Time `json:"arrival_at"`
	Status         string    `json:"status"`
}

func NewTripResponse(t *entity.Trip) *TripResponse {
	return &TripResponse{
		ID:             t.ID.String(),
		Origin:         t.Origin,
		Destination:    t.Destination,
		BusNumber:      t.BusNumber,
		BusType:        t.BusType,
		TotalSeats:     t.TotalSeats,
		AvailableSeats: t.AvailableSeats,
		Price:          t.Price,
		DepartureAt:    t.DepartureAt,
		ArrivalAt:      t.ArrivalAt,
		Status:         string(t.Status),
	}
}
