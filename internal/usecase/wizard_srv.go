package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"bus-booking/internal/booking"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WizardService interface {
	Start(ctx context.Context, req *request.StartWizardRequest) (*response.WizardResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error)
	ToggleSeat(ctx context.Context, id uuid.UUID, seatID string) (*response.WizardResponse, error)
	UpdatePassenger(ctx context.Context, id uuid.UUID, index int, req *request.UpdatePassengerRequest) (*response.WizardResponse, error)
	Next(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error)
	Back(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error)
	Reset(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error)
	Submit(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error)
}

// session is one user's wizard with its own lock, so a slow submission on one
// session never blocks another.
type session struct {
	mu         sync.Mutex
	wizard     *booking.Wizard
	userID     uuid.UUID
	lastActive time.Time
}

type wizardService struct {
	gateway booking.Gateway
	ttl     time.Duration
	log     *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewWizardService(gateway booking.Gateway, ttl time.Duration, log *zap.Logger) WizardService {
	return &wizardService{
		gateway:  gateway,
		ttl:      ttl,
		log:      log.With(zap.String("service", "wizard")),
		sessions: make(map[uuid.UUID]*session),
	}
}

func (s *wizardService) Start(ctx context.Context, req *request.StartWizardRequest) (*response.WizardResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	seats, err := s.gateway.FetchSeatMap(ctx, req.ScheduleID)
	if err != nil {
		return nil, booking.AsGatewayError(err)
	}

	w, err := booking.NewWizard(req.ScheduleID, req.Price, seats, s.log)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	sess := &session{
		wizard:     w,
		userID:     userID,
		lastActive: time.Now(),
	}

	s.mu.Lock()
	s.sweepExpiredLocked()
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info("Wizard session started",
		zap.String("session_id", id.String()),
		zap.String("schedule_id", req.ScheduleID),
		zap.Int("seats", len(seats)),
	)

	return response.NewWizardResponse(id, w, ""), nil
}

func (s *wizardService) Get(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		return "", nil
	})
}

// ToggleSeat flips a seat. Unavailable seats and the capacity limit are
// no-ops surfaced as a warning on the snapshot, not as request failures.
func (s *wizardService) ToggleSeat(ctx context.Context, id uuid.UUID, seatID string) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		err := sess.wizard.ToggleSeat(seatID)
		if errors.Is(err, booking.ErrSeatUnavailable) || errors.Is(err, booking.ErrCapacityExceeded) {
			return err.Error(), nil
		}
		return "", err
	})
}

func (s *wizardService) UpdatePassenger(ctx context.Context, id uuid.UUID, index int, req *request.UpdatePassengerRequest) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		return "", sess.wizard.UpdatePassenger(index, req.Field, req.Value)
	})
}

func (s *wizardService) Next(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		return "", sess.wizard.Next()
	})
}

func (s *wizardService) Back(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		return "", sess.wizard.Back()
	})
}

func (s *wizardService) Reset(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error) {
	return s.withSession(ctx, id, func(sess *session) (string, error) {
		sess.wizard.Reset()
		return "", nil
	})
}

// Submit sends the booking without holding the session lock across the
// gateway call, so status reads stay responsive and a second submit is
// rejected by the wizard itself. A failed submission lands the wizard in its
// failed state and still returns the snapshot; after a seat conflict the
// availability snapshot is refreshed in place so the user immediately sees
// which seats were lost.
func (s *wizardService) Submit(ctx context.Context, id uuid.UUID) (*response.WizardResponse, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	req, gen, err := sess.wizard.BeginSubmit()
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.mu.Unlock()

	result, submitErr := s.gateway.SubmitBooking(ctx, req)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	_, err = sess.wizard.CompleteSubmit(gen, result, submitErr)
	if errors.Is(err, booking.ErrStaleSubmit) {
		// The session was reset while the call was in flight; the outcome
		// is dropped and the fresh wizard is returned as-is.
		return response.NewWizardResponse(id, sess.wizard, "submission outcome discarded after reset"), nil
	}

	var gerr *booking.GatewayError
	if errors.As(err, &gerr) && gerr.Reason == booking.FailureSeatConflict {
		seats, ferr := s.gateway.FetchSeatMap(ctx, sess.wizard.ScheduleID())
		if ferr != nil {
			s.log.Warn("Seat map refresh after conflict failed",
				zap.String("session_id", id.String()),
				zap.Error(ferr),
			)
		} else if rerr := sess.wizard.RefreshSeatMap(seats); rerr != nil {
			s.log.Warn("Seat map refresh rejected",
				zap.String("session_id", id.String()),
				zap.Error(rerr),
			)
		}
	}

	return response.NewWizardResponse(id, sess.wizard, ""), nil
}

// lookup finds a live session owned by the context user. Expired sessions are
// removed on access.
func (s *wizardService) lookup(ctx context.Context, id uuid.UUID) (*session, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	s.mu.RLock()
	sess, found := s.sessions[id]
	s.mu.RUnlock()

	if found && s.ttl > 0 {
		sess.mu.Lock()
		expired := time.Since(sess.lastActive) > s.ttl
		sess.mu.Unlock()
		if expired {
			s.mu.Lock()
			delete(s.sessions, id)
			s.mu.Unlock()
			found = false
		}
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	if sess.userID != userID {
		return nil, ErrSessionForbidden
	}
	return sess, nil
}

func (s *wizardService) withSession(ctx context.Context, id uuid.UUID, fn func(*session) (string, error)) (*response.WizardResponse, error) {
	sess, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastActive = time.Now()

	warning, err := fn(sess)
	if err != nil {
		return nil, err
	}
	return response.NewWizardResponse(id, sess.wizard, warning), nil
}

// sweepExpiredLocked drops sessions idle past the TTL. Caller holds s.mu.
func (s *wizardService) sweepExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	for id, sess := range s.sessions {
		if time.Since(sess.lastActive) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
