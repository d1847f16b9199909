package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"bus-booking/internal/booking"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	mu          sync.Mutex
	fetchCalls  int
	fetchFn     func(ctx context.Context, scheduleID string) ([]booking.Seat, error)
	submitFn    func(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error)
	submitCalls int
}

func (g *fakeGateway) FetchSeatMap(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
	g.mu.Lock()
	g.fetchCalls++
	fn := g.fetchFn
	g.mu.Unlock()
	return fn(ctx, scheduleID)
}

func (g *fakeGateway) SubmitBooking(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
	g.mu.Lock()
	g.submitCalls++
	fn := g.submitFn
	g.mu.Unlock()
	return fn(ctx, req)
}

func (g *fakeGateway) fetches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCalls
}

func defaultSeats() []booking.Seat {
	return []booking.Seat{
		{ID: "01", Row: 1, Column: 1},
		{ID: "02", Row: 1, Column: 2},
		{ID: "03", Booked: true, Row: 1, Column: 3},
	}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		fetchFn: func(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
			return defaultSeats(), nil
		},
		submitFn: func(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
			return &booking.BookingResult{
				BookingID:   uuid.NewString(),
				TicketNo:    "TKT-TEST",
				Seats:       req.Seats,
				TotalAmount: float64(len(req.Seats)) * 500,
				Status:      "confirmed",
			}, nil
		},
	}
}

func userContext(t *testing.T) (context.Context, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	return utils.SetUserContext(context.Background(), userID, "user"), userID
}

func newWizardService(t *testing.T, gw booking.Gateway, ttl time.Duration) WizardService {
	t.Helper()
	return NewWizardService(gw, ttl, zap.NewNop())
}

func startSession(t *testing.T, svc WizardService, ctx context.Context) uuid.UUID {
	t.Helper()
	resp, err := svc.Start(ctx, &request.StartWizardRequest{
		ScheduleID: uuid.NewString(),
		Price:      500,
	})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

// advanceToPayment selects seat 01, fills in its passenger and moves the
// session to the payment step.
func advanceToPayment(t *testing.T, svc WizardService, ctx context.Context, id uuid.UUID) {
	t.Helper()
	_, err := svc.ToggleSeat(ctx, id, "01")
	require.NoError(t, err)
	_, err = svc.Next(ctx, id)
	require.NoError(t, err)
	_, err = svc.UpdatePassenger(ctx, id, 0, &request.UpdatePassengerRequest{Field: "name", Value: "Anil"})
	require.NoError(t, err)
	_, err = svc.UpdatePassenger(ctx, id, 0, &request.UpdatePassengerRequest{Field: "age", Value: "34"})
	require.NoError(t, err)
	resp, err := svc.Next(ctx, id)
	require.NoError(t, err)
	require.Equal(t, string(booking.StateConfirmingPayment), resp.State)
}

func TestWizardServiceStartRequiresUser(t *testing.T) {
	svc := newWizardService(t, newFakeGateway(), time.Minute)

	_, err := svc.Start(context.Background(), &request.StartWizardRequest{
		ScheduleID: uuid.NewString(),
		Price:      500,
	})

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestWizardServiceStartFetchFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchFn = func(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
		return nil, &booking.GatewayError{Reason: booking.FailureFetch, Message: "down"}
	}
	svc := newWizardService(t, gw, time.Minute)
	ctx, _ := userContext(t)

	_, err := svc.Start(ctx, &request.StartWizardRequest{ScheduleID: uuid.NewString(), Price: 500})

	var gerr *booking.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, booking.FailureFetch, gerr.Reason)
}

func TestWizardServiceToggleWarnsInsteadOfFailing(t *testing.T) {
	svc := newWizardService(t, newFakeGateway(), time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)

	resp, err := svc.ToggleSeat(ctx, id, "03")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warning)
	assert.Empty(t, resp.Selection)

	resp, err = svc.ToggleSeat(ctx, id, "01")
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, []string{"01"}, resp.Selection)
	assert.Equal(t, 500.0, resp.TotalAmount)
}

func TestWizardServiceSessionOwnership(t *testing.T) {
	svc := newWizardService(t, newFakeGateway(), time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)

	otherCtx, _ := userContext(t)
	_, err := svc.Get(otherCtx, id)
	assert.ErrorIs(t, err, ErrSessionForbidden)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardServiceSessionExpiry(t *testing.T) {
	svc := newWizardService(t, newFakeGateway(), 10*time.Millisecond)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)

	time.Sleep(25 * time.Millisecond)

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardServiceSubmitSuccess(t *testing.T) {
	gw := newFakeGateway()
	svc := newWizardService(t, gw, time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)
	advanceToPayment(t, svc, ctx, id)

	resp, err := svc.Submit(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, string(booking.StateCompleted), resp.State)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "TKT-TEST", resp.Result.TicketNo)
	assert.Equal(t, []string{"01"}, resp.Result.Seats)
	assert.Empty(t, resp.Selection)
}

func TestWizardServiceSubmitConflictRefreshesSeatMap(t *testing.T) {
	gw := newFakeGateway()
	refreshed := []booking.Seat{
		{ID: "01", Booked: true, Row: 1, Column: 1},
		{ID: "02", Row: 1, Column: 2},
		{ID: "03", Booked: true, Row: 1, Column: 3},
	}
	gw.submitFn = func(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
		return nil, &booking.GatewayError{
			Reason: booking.FailureSeatConflict,
			Seats:  []string{"01"},
		}
	}
	svc := newWizardService(t, gw, time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)
	advanceToPayment(t, svc, ctx, id)

	fetchesBefore := gw.fetches()
	gw.mu.Lock()
	gw.fetchFn = func(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
		return refreshed, nil
	}
	gw.mu.Unlock()

	resp, err := svc.Submit(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, string(booking.StateFailed), resp.State)
	require.NotNil(t, resp.Failure)
	assert.Equal(t, string(booking.FailureSeatConflict), resp.Failure.Reason)
	assert.Equal(t, []string{"01"}, resp.Failure.Seats)

	// One extra fetch for the availability refresh, and the lost seat now
	// shows as booked while still selected.
	assert.Equal(t, fetchesBefore+1, gw.fetches())
	assert.Equal(t, []string{"01"}, resp.Selection)
	require.NotEmpty(t, resp.Seats)
	assert.True(t, resp.Seats[0].IsBooked)
	assert.True(t, resp.Seats[0].Selected)
}

func TestWizardServiceConcurrentSubmitRejected(t *testing.T) {
	gw := newFakeGateway()
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.submitFn = func(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
		close(entered)
		<-release
		return &booking.BookingResult{
			BookingID:   uuid.NewString(),
			TicketNo:    "TKT-TEST",
			Seats:       req.Seats,
			TotalAmount: 500,
			Status:      "confirmed",
		}, nil
	}
	svc := newWizardService(t, gw, time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)
	advanceToPayment(t, svc, ctx, id)

	done := make(chan *response.WizardResponse, 1)
	go func() {
		resp, err := svc.Submit(ctx, id)
		require.NoError(t, err)
		done <- resp
	}()
	<-entered

	// Second submit and any mutation are rejected while the first is in
	// flight, but reads still work.
	_, err := svc.Submit(ctx, id)
	assert.ErrorIs(t, err, booking.ErrSubmitInFlight)
	_, err = svc.Back(ctx, id)
	assert.ErrorIs(t, err, booking.ErrSubmitInFlight)
	snap, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, snap.Submitting)

	close(release)
	resp := <-done
	assert.Equal(t, string(booking.StateCompleted), resp.State)
}

func TestWizardServiceResetDiscardsLateOutcome(t *testing.T) {
	gw := newFakeGateway()
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.submitFn = func(ctx context.Context, req *booking.BookingRequest) (*booking.BookingResult, error) {
		close(entered)
		<-release
		return &booking.BookingResult{BookingID: uuid.NewString(), TicketNo: "TKT-LATE", Status: "confirmed"}, nil
	}
	svc := newWizardService(t, gw, time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)
	advanceToPayment(t, svc, ctx, id)

	done := make(chan *response.WizardResponse, 1)
	go func() {
		resp, err := svc.Submit(ctx, id)
		require.NoError(t, err)
		done <- resp
	}()
	<-entered

	_, err := svc.Reset(ctx, id)
	require.NoError(t, err)

	close(release)
	resp := <-done

	// The late success is dropped: the session stays freshly reset.
	assert.Equal(t, string(booking.StateSelectingSeats), resp.State)
	assert.Nil(t, resp.Result)
	assert.NotEmpty(t, resp.Warning)

	snap, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(booking.StateSelectingSeats), snap.State)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Selection)
}

func TestWizardServiceSubmitBeforePaymentStep(t *testing.T) {
	svc := newWizardService(t, newFakeGateway(), time.Minute)
	ctx, _ := userContext(t)
	id := startSession(t, svc, ctx)

	_, err := svc.ToggleSeat(ctx, id, "01")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, id)
	var terr *booking.InvalidTransitionError
	assert.ErrorAs(t, err, &terr)
}
