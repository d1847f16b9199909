package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bus-booking/internal/booking"
	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seatsPerRow fixes the rendered grid width. Seat numbers are "01".."NN" laid
// out row by row.
const seatsPerRow = 4

// cancelWindow is the minimum lead time before departure for a cancellation.
const cancelWindow = 2 * time.Hour

// refundRate is the fraction of the paid amount returned on cancellation.
const refundRate = 0.9

type TripService interface {
	CreateTrip(ctx context.Context, req *request.CreateTripRequest) (*response.TripResponse, error)
	GetSeatMap(ctx context.Context, scheduleID uuid.UUID) (*response.SeatMapResponse, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.CancellationResponse, error)
}

type tripService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTripService(repo *repository.Repository, log *zap.Logger) TripService {
	return &tripService{
		repo: repo,
		log:  log.With(zap.String("service", "trip")),
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req *request.CreateTripRequest) (*response.TripResponse, error) {
	departure, err := time.Parse(time.RFC3339, req.DepartureAt)
	if err != nil {
		return nil, fmt.Errorf("parse departure_at: %w", err)
	}
	arrival, err := time.Parse(time.RFC3339, req.ArrivalAt)
	if err != nil {
		return nil, fmt.Errorf("parse arrival_at: %w", err)
	}
	if !arrival.After(departure) {
		return nil, ErrInvalidTripTimes
	}

	now := time.Now()
	trip := &entity.Trip{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Origin:         req.Origin,
		Destination:    req.Destination,
		BusNumber:      req.BusNumber,
		BusType:        req.BusType,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          req.Price,
		DepartureAt:    departure,
		ArrivalAt:      arrival,
		Status:         entity.TripStatusScheduled,
	}

	if err := s.repo.Trip.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.log.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("bus_number", trip.BusNumber),
		zap.Time("departure_at", trip.DepartureAt),
	)

	return response.NewTripResponse(trip), nil
}

// GetSeatMap renders the trip's seat grid with live availability. Seats are
// numbered "01".."NN" and a seat is booked when a confirmed booking holds it.
func (s *tripService) GetSeatMap(ctx context.Context, scheduleID uuid.UUID) (*response.SeatMapResponse, error) {
	trip, err := s.repo.Trip.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	bookedNumbers, err := s.repo.BookingSeat.FindBookedSeatNumbersBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(bookedNumbers))
	for _, n := range bookedNumbers {
		booked[n] = true
	}

	seats := make([]booking.Seat, 0, trip.TotalSeats)
	for i := 1; i <= trip.TotalSeats; i++ {
		number := fmt.Sprintf("%02d", i)
		seats = append(seats, booking.Seat{
			ID:     number,
			Booked: booked[number],
			Row:    (i-1)/seatsPerRow + 1,
			Column: (i-1)%seatsPerRow + 1,
		})
	}

	return &response.SeatMapResponse{
		ScheduleID: scheduleID.String(),
		TotalSeats: trip.TotalSeats,
		Price:      trip.Price,
		Seats:      seats,
	}, nil
}

// CreateBooking books the requested seats for userID in one unit: conflict
// check against confirmed bookings, then booking, seat rows and the trip's
// availability counter.
func (s *tripService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if len(req.Seats) != len(req.Passengers) {
		return nil, ErrSeatCountMismatch
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("parse schedule_id: %w", err)
	}

	trip, err := s.repo.Trip.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if !trip.DepartureAt.After(time.Now()) {
		return nil, ErrTripDeparted
	}

	seen := make(map[string]bool, len(req.Seats))
	for _, seat := range req.Seats {
		n, err := strconv.Atoi(seat)
		if err != nil || n < 1 || n > trip.TotalSeats {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSeat, seat)
		}
		if seen[seat] {
			return nil, fmt.Errorf("%w: %s requested twice", ErrInvalidSeat, seat)
		}
		seen[seat] = true
	}

	bookedNumbers, err := s.repo.BookingSeat.FindBookedSeatNumbersBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(bookedNumbers))
	for _, n := range bookedNumbers {
		booked[n] = true
	}
	var conflicts []string
	for _, seat := range req.Seats {
		if booked[seat] {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		s.log.Warn("Booking rejected on seat conflict",
			zap.String("schedule_id", scheduleID.String()),
			zap.Strings("seats", conflicts),
		)
		return nil, &SeatConflictError{Seats: conflicts}
	}

	now := time.Now()
	newBooking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TicketNo:    utils.GenerateTicketNo(),
		UserID:      userID,
		ScheduleID:  scheduleID,
		TotalSeats:  len(req.Seats),
		TotalAmount: float64(len(req.Seats)) * trip.Price,
		Status:      entity.BookingStatusConfirmed,
	}

	if err := s.repo.Booking.Create(ctx, newBooking); err != nil {
		return nil, err
	}

	seatRows := make([]entity.BookingSeat, len(req.Seats))
	for i, seat := range req.Seats {
		p := req.Passengers[i]
		seatRows[i] = entity.BookingSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:       newBooking.ID,
			SeatNumber:      seat,
			PassengerName:   p.Name,
			PassengerAge:    p.Age,
			PassengerGender: p.Gender,
		}
	}
	if err := s.repo.BookingSeat.CreateBatch(ctx, seatRows); err != nil {
		return nil, err
	}

	if err := s.repo.Trip.AdjustAvailableSeats(ctx, scheduleID, -len(req.Seats)); err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", newBooking.ID.String()),
		zap.String("ticket_no", newBooking.TicketNo),
		zap.Int("seats", newBooking.TotalSeats),
		zap.Float64("total_amount", newBooking.TotalAmount),
	)

	return response.NewBookingResponse(newBooking, seatRows), nil
}

func (s *tripService) GetUserBookings(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	page.Normalize()

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for i := range bookings {
		seats, err := s.repo.BookingSeat.FindByBookingID(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *response.NewBookingResponse(&bookings[i], seats))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit, total), nil
}

// CancelBooking cancels a confirmed booking more than two hours before
// departure and refunds 90% of the paid amount.
func (s *tripService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*response.CancellationResponse, error) {
	b, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrBookingForbidden
	}
	if b.Status != entity.BookingStatusConfirmed {
		return nil, ErrBookingNotActive
	}

	trip, err := s.repo.Trip.FindByID(ctx, b.ScheduleID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if time.Until(trip.DepartureAt) <= cancelWindow {
		return nil, ErrCancelWindowClosed
	}

	now := time.Now()
	refund := b.TotalAmount * refundRate
	if err := s.repo.Booking.UpdateCancellation(ctx, bookingID, refund, now); err != nil {
		return nil, err
	}
	if err := s.repo.Trip.AdjustAvailableSeats(ctx, b.ScheduleID, b.TotalSeats); err != nil {
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.Float64("refund_amount", refund),
	)

	return &response.CancellationResponse{
		BookingID:    bookingID.String(),
		Status:       string(entity.BookingStatusCancelled),
		RefundAmount: refund,
		CancelledAt:  now,
	}, nil
}
