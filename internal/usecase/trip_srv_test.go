package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTripRepo struct {
	trips       map[uuid.UUID]*entity.Trip
	adjustments []int
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	r.trips[trip.ID] = trip
	return nil
}

func (r *fakeTripRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	return r.trips[id], nil
}

func (r *fakeTripRepo) AdjustAvailableSeats(ctx context.Context, id uuid.UUID, delta int) error {
	r.adjustments = append(r.adjustments, delta)
	if trip, ok := r.trips[id]; ok {
		trip.AvailableSeats += delta
	}
	return nil
}

func (r *fakeTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TripStatus) error {
	r.trips[id].Status = status
	return nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
	refunds  map[uuid.UUID]float64
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, b := range r.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) UpdateCancellation(ctx context.Context, id uuid.UUID, refund float64, at time.Time) error {
	b := r.bookings[id]
	b.Status = entity.BookingStatusCancelled
	b.CancelledAt = &at
	b.RefundAmount = &refund
	r.refunds[id] = refund
	return nil
}

type fakeSeatRepo struct {
	rows   []entity.BookingSeat
	booked map[uuid.UUID][]string
}

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, seats []entity.BookingSeat) error {
	r.rows = append(r.rows, seats...)
	return nil
}

func (r *fakeSeatRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingSeat, error) {
	var out []entity.BookingSeat
	for _, s := range r.rows {
		if s.BookingID == bookingID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) FindBookedSeatNumbersBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]string, error) {
	return r.booked[scheduleID], nil
}

type tripFixture struct {
	svc      TripService
	tripRepo *fakeTripRepo
	seatRepo *fakeSeatRepo
	bookRepo *fakeBookingRepo
	tripID   uuid.UUID
}

// newTripFixture wires the service over fakes with one scheduled trip of 10
// seats at 500 each, departing in 24 hours.
func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()

	tripID := uuid.New()
	tripRepo := &fakeTripRepo{trips: map[uuid.UUID]*entity.Trip{
		tripID: {
			Base:           entity.Base{ID: tripID},
			Origin:         "Kathmandu",
			Destination:    "Pokhara",
			BusNumber:      "BA-1-KHA-1234",
			BusType:        "AC",
			TotalSeats:     10,
			AvailableSeats: 10,
			Price:          500,
			DepartureAt:    time.Now().Add(24 * time.Hour),
			ArrivalAt:      time.Now().Add(31 * time.Hour),
			Status:         entity.TripStatusScheduled,
		},
	}}
	bookRepo := &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*entity.Booking),
		refunds:  make(map[uuid.UUID]float64),
	}
	seatRepo := &fakeSeatRepo{booked: make(map[uuid.UUID][]string)}

	repo := &repository.Repository{
		Trip:        tripRepo,
		Booking:     bookRepo,
		BookingSeat: seatRepo,
	}

	return &tripFixture{
		svc:      NewTripService(repo, zap.NewNop()),
		tripRepo: tripRepo,
		seatRepo: seatRepo,
		bookRepo: bookRepo,
		tripID:   tripID,
	}
}

func bookingRequest(f *tripFixture, seats ...string) *request.CreateBookingRequest {
	passengers := make([]request.PassengerPayload, len(seats))
	for i := range seats {
		passengers[i] = request.PassengerPayload{Name: "Passenger", Age: 30, Gender: "female"}
	}
	return &request.CreateBookingRequest{
		ScheduleID: f.tripID.String(),
		Seats:      seats,
		Passengers: passengers,
	}
}

func TestGetSeatMapGrid(t *testing.T) {
	f := newTripFixture(t)
	f.seatRepo.booked[f.tripID] = []string{"03"}

	resp, err := f.svc.GetSeatMap(context.Background(), f.tripID)
	require.NoError(t, err)

	require.Len(t, resp.Seats, 10)
	assert.Equal(t, 500.0, resp.Price)
	assert.Equal(t, "01", resp.Seats[0].ID)
	assert.Equal(t, "10", resp.Seats[9].ID)

	// Four seats per row: seat 05 sits at row 2, column 1.
	assert.Equal(t, 2, resp.Seats[4].Row)
	assert.Equal(t, 1, resp.Seats[4].Column)

	assert.True(t, resp.Seats[2].Booked)
	assert.False(t, resp.Seats[0].Booked)
}

func TestGetSeatMapTripNotFound(t *testing.T) {
	f := newTripFixture(t)

	_, err := f.svc.GetSeatMap(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestCreateBookingSuccess(t *testing.T) {
	f := newTripFixture(t)
	userID := uuid.New()

	resp, err := f.svc.CreateBooking(context.Background(), userID, bookingRequest(f, "01", "02"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.TicketNo, "TKT-"))
	assert.Equal(t, 1000.0, resp.TotalAmount)
	assert.Equal(t, string(entity.BookingStatusConfirmed), resp.Status)
	require.Len(t, resp.Seats, 2)
	assert.Equal(t, "01", resp.Seats[0].SeatNumber)

	assert.Len(t, f.seatRepo.rows, 2)
	assert.Equal(t, []int{-2}, f.tripRepo.adjustments)
}

func TestCreateBookingSeatConflict(t *testing.T) {
	f := newTripFixture(t)
	f.seatRepo.booked[f.tripID] = []string{"02"}

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(f, "01", "02"))

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"02"}, conflict.Seats)
	assert.Empty(t, f.seatRepo.rows)
}

func TestCreateBookingDepartedTrip(t *testing.T) {
	f := newTripFixture(t)
	f.tripRepo.trips[f.tripID].DepartureAt = time.Now().Add(-time.Hour)

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(f, "01"))
	assert.ErrorIs(t, err, ErrTripDeparted)
}

func TestCreateBookingSeatValidation(t *testing.T) {
	f := newTripFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(f, "99"))
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = f.svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(f, "01", "01"))
	assert.ErrorIs(t, err, ErrInvalidSeat)

	req := bookingRequest(f, "01", "02")
	req.Passengers = req.Passengers[:1]
	_, err = f.svc.CreateBooking(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrSeatCountMismatch)
}

func TestCancelBookingRefund(t *testing.T) {
	f := newTripFixture(t)
	userID := uuid.New()

	created, err := f.svc.CreateBooking(context.Background(), userID, bookingRequest(f, "01", "02"))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	resp, err := f.svc.CancelBooking(context.Background(), userID, bookingID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
	assert.Equal(t, 900.0, resp.RefundAmount)

	// Cancelling releases the seats back to the trip.
	assert.Equal(t, []int{-2, 2}, f.tripRepo.adjustments)

	// A second cancel is rejected.
	_, err = f.svc.CancelBooking(context.Background(), userID, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotActive)
}

func TestCancelBookingGuards(t *testing.T) {
	f := newTripFixture(t)
	userID := uuid.New()

	created, err := f.svc.CreateBooking(context.Background(), userID, bookingRequest(f, "01"))
	require.NoError(t, err)
	bookingID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(context.Background(), uuid.New(), bookingID)
	assert.ErrorIs(t, err, ErrBookingForbidden)

	_, err = f.svc.CancelBooking(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	// Inside the two hour window cancellation is closed.
	f.tripRepo.trips[f.tripID].DepartureAt = time.Now().Add(time.Hour)
	_, err = f.svc.CancelBooking(context.Background(), userID, bookingID)
	assert.ErrorIs(t, err, ErrCancelWindowClosed)
}

func TestGetUserBookings(t *testing.T) {
	f := newTripFixture(t)
	userID := uuid.New()

	_, err := f.svc.CreateBooking(context.Background(), userID, bookingRequest(f, "01"))
	require.NoError(t, err)
	_, err = f.svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(f, "02"))
	require.NoError(t, err)

	resp, err := f.svc.GetUserBookings(context.Background(), userID, &request.PaginatedRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalItems)
	require.Len(t, resp.Items, 1)
	require.Len(t, resp.Items[0].Seats, 1)
	assert.Equal(t, "01", resp.Items[0].Seats[0].SeatNumber)
}

func TestCreateTrip(t *testing.T) {
	f := newTripFixture(t)
	departure := time.Now().Add(48 * time.Hour)

	resp, err := f.svc.CreateTrip(context.Background(), &request.CreateTripRequest{
		Origin:      "Kathmandu",
		Destination: "Chitwan",
		BusNumber:   "BA-2-KHA-5678",
		BusType:     "Sleeper",
		TotalSeats:  20,
		Price:       800,
		DepartureAt: departure.Format(time.RFC3339),
		ArrivalAt:   departure.Add(5 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.AvailableSeats)
	assert.Equal(t, string(entity.TripStatusScheduled), resp.Status)
}

func TestCreateTripInvalidTimes(t *testing.T) {
	f := newTripFixture(t)
	departure := time.Now().Add(48 * time.Hour)

	_, err := f.svc.CreateTrip(context.Background(), &request.CreateTripRequest{
		Origin:      "Kathmandu",
		Destination: "Chitwan",
		BusNumber:   "BA-2-KHA-5678",
		BusType:     "Sleeper",
		TotalSeats:  20,
		Price:       800,
		DepartureAt: departure.Format(time.RFC3339),
		ArrivalAt:   departure.Add(-time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrInvalidTripTimes)
}
