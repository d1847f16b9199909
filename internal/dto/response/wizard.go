package response

import (
	"bus-booking/internal/booking"

	"github.com/google/uuid"
)

type SeatResponse struct {
	SeatNumber string `json:"seat_number"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	IsBooked   bool   `json:"is_booked"`
	Selected   bool   `json:"selected"`
}

type PassengerResponse struct {
	SeatNumber string `json:"seat_number"`
	Name       string `json:"name"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
}

type FailureResponse struct {
	Reason  string   `json:"reason"`
	Message string   `json:"message"`
	Seats   []string `json:"seats,omitempty"`
}

type BookingResultResponse struct {
	BookingID   string   `json:"booking_id"`
	TicketNo    string   `json:"ticket_no"`
	Seats       []string `json:"seats"`
	TotalAmount float64  `json:"total_amount"`
	Status      string   `json:"status"`
}

// WizardResponse is the full session snapshot returned by every wizard
// endpoint, so a client can re-render the whole step from any mutation.
type WizardResponse struct {
	ID           string                 `json:"id"`
	ScheduleID   string                 `json:"schedule_id"`
	State        string                 `json:"state"`
	PerSeatPrice float64                `json:"per_seat_price"`
	TotalAmount  float64                `json:"total_amount"`
	Submitting   bool                   `json:"submitting"`
	Seats        []SeatResponse         `json:"seats"`
	Selection    []string               `json:"selection"`
	Passengers   []PassengerResponse    `json:"passengers"`
	Result       *BookingResultResponse `json:"result,omitempty"`
	Failure      *FailureResponse       `json:"failure,omitempty"`
	Warning      string                 `json:"warning,omitempty"`
}

// NewWizardResponse snapshots a wizard. The caller holds the session lock.
func NewWizardResponse(id uuid.UUID, w *booking.Wizard, warning string) *WizardResponse {
	selection := w.Selection()
	selected := make(map[string]bool, len(selection))
	for _, s := range selection {
		selected[s] = true
	}

	all := w.SeatMap().All()
	seats := make([]SeatResponse, len(all))
	for i, s := range all {
		seats[i] = SeatResponse{
			SeatNumber: s.ID,
			Row:        s.Row,
			Column:     s.Column,
			IsBooked:   s.Booked,
			Selected:   selected[s.ID],
		}
	}

	roster := w.Roster()
	passengers := make([]PassengerResponse, len(roster))
	for i, p := range roster {
		seatNumber := ""
		if i < len(selection) {
			seatNumber = selection[i]
		}
		passengers[i] = PassengerResponse{
			SeatNumber: seatNumber,
			Name:       p.Name,
			Age:        p.Age,
			Gender:     string(p.Gender),
		}
	}

	resp := &WizardResponse{
		ID:           id.String(),
		ScheduleID:   w.ScheduleID(),
		State:        string(w.State()),
		PerSeatPrice: w.PerSeatPrice(),
		TotalAmount:  w.Total(),
		Submitting:   w.Submitting(),
		Seats:        seats,
		Selection:    selection,
		Passengers:   passengers,
		Warning:      warning,
	}

	if r := w.Result(); r != nil {
		resp.Result = &BookingResultResponse{
			BookingID:   r.BookingID,
			TicketNo:    r.TicketNo,
			Seats:       r.Seats,
			TotalAmount: r.TotalAmount,
			Status:      r.Status,
		}
	}
	if f := w.Failure(); f != nil {
		resp.Failure = &FailureResponse{
			Reason:  string(f.Reason),
			Message: f.Message,
			Seats:   f.Seats,
		}
	}

	return resp
}
