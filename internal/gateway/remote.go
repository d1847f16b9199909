package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bus-booking/internal/booking"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

// Remote proxies the booking contract to a remote booking API speaking the
// same JSON envelope. The caller's bearer token is passed through when
// present; otherwise the configured service token is used.
type Remote struct {
	client  *http.Client
	baseURL string
	token   string
	log     *zap.Logger
}

func NewRemote(cfg utils.GatewayConfig, log *zap.Logger) *Remote {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Remote{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		log:     log.With(zap.String("gateway", "remote")),
	}
}

// envelope mirrors the remote API's response wrapper with the payload left
// raw for per-endpoint decoding.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type remoteSeatMap struct {
	Seats []booking.Seat `json:"seats"`
}

type remoteConflict struct {
	Seats []string `json:"seats"`
}

// remoteBooking mirrors the booking API's confirmation payload.
type remoteBooking struct {
	ID          string  `json:"id"`
	TicketNo    string  `json:"ticket_no"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	Seats       []struct {
		SeatNumber string `json:"seat_number"`
	} `json:"seats"`
}

func (g *Remote) FetchSeatMap(ctx context.Context, scheduleID string) ([]booking.Seat, error) {
	url := fmt.Sprintf("%s/api/trips/%s/seats", g.baseURL, scheduleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &booking.GatewayError{Reason: booking.FailureFetch, Message: err.Error()}
	}
	g.authorize(ctx, req)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("Seat map fetch failed", zap.String("schedule_id", scheduleID), zap.Error(err))
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: "booking service unreachable",
		}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: "malformed seat map response",
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: remoteMessage(env, resp.StatusCode),
		}
	}

	var data remoteSeatMap
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureFetch,
			Message: "malformed seat map payload",
		}
	}
	return data.Seats, nil
}

func (g *Remote) SubmitBooking(ctx context.Context, bookingReq *booking.BookingRequest) (*booking.BookingResult, error) {
	body, err := json.Marshal(bookingReq)
	if err != nil {
		return nil, &booking.GatewayError{Reason: booking.FailureServer, Message: err.Error()}
	}

	url := g.baseURL + "/api/bookings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &booking.GatewayError{Reason: booking.FailureServer, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	g.authorize(ctx, req)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("Booking submission failed",
			zap.String("schedule_id", bookingReq.ScheduleID),
			zap.Error(err),
		)
		return nil, &booking.GatewayError{
			Reason:  booking.FailureServer,
			Message: "booking service unreachable",
		}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &booking.GatewayError{
			Reason:  booking.FailureServer,
			Message: "malformed booking response",
		}
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var data remoteBooking
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, &booking.GatewayError{
				Reason:  booking.FailureServer,
				Message: "malformed booking payload",
			}
		}
		seats := make([]string, len(data.Seats))
		for i, s := range data.Seats {
			seats[i] = s.SeatNumber
		}
		return &booking.BookingResult{
			BookingID:   data.ID,
			TicketNo:    data.TicketNo,
			Seats:       seats,
			TotalAmount: data.TotalAmount,
			Status:      data.Status,
		}, nil

	case resp.StatusCode == http.StatusConflict:
		var conflict remoteConflict
		if len(env.Errors) > 0 {
			// Best effort; a conflict without seat detail is still a conflict.
			_ = json.Unmarshal(env.Errors, &conflict)
		}
		return nil, &booking.GatewayError{
			Reason:  booking.FailureSeatConflict,
			Message: remoteMessage(env, resp.StatusCode),
			Seats:   conflict.Seats,
		}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &booking.GatewayError{
			Reason:  booking.FailureValidation,
			Message: remoteMessage(env, resp.StatusCode),
		}

	default:
		return nil, &booking.GatewayError{
			Reason:  booking.FailureServer,
			Message: remoteMessage(env, resp.StatusCode),
		}
	}
}

func (g *Remote) authorize(ctx context.Context, req *http.Request) {
	if token, ok := utils.GetTokenFromContext(ctx); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		return
	}
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
}

func remoteMessage(env envelope, code int) string {
	if env.Message != "" {
		return env.Message
	}
	return fmt.Sprintf("booking service returned status %d", code)
}
