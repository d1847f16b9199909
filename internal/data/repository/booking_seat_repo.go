package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingSeatRepository interface {
	CreateBatch(ctx context.Context, seats []entity.BookingSeat) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingSeat, error)
	FindBookedSeatNumbersBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]string, error)
}

type bookingSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingSeatRepository(db database.PgxIface, log *zap.Logger) BookingSeatRepository {
	return &bookingSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_seat")),
	}
}

func (r *bookingSeatRepository) CreateBatch(ctx context.Context, seats []entity.BookingSeat) error {
	query := `
		INSERT INTO booking_seats (id, booking_id, seat_number, passenger_name, passenger_age, passenger_gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, seat := range seats {
		_, err := r.db.Exec(ctx, query,
			seat.ID,
			seat.BookingID,
			seat.SeatNumber,
			seat.PassengerName,
			seat.PassengerAge,
			seat.PassengerGender,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking seat",
				zap.Error(err),
				zap.String("booking_id", seat.BookingID.String()),
				zap.String("seat_number", seat.SeatNumber),
			)
			return fmt.Errorf("create booking seat %s: %w", seat.SeatNumber, err)
		}
	}

	return nil
}

func (r *bookingSeatRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingSeat, error) {
	query := `
		SELECT id, booking_id, seat_number, passenger_name, passenger_age, passenger_gender, created_at
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY seat_number
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find seats by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find seats by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var seats []entity.BookingSeat
	for rows.Next() {
		var seat entity.BookingSeat
		err := rows.Scan(
			&seat.ID,
			&seat.BookingID,
			&seat.SeatNumber,
			&seat.PassengerName,
			&seat.PassengerAge,
			&seat.PassengerGender,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("scan booking seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking seat rows: %w", err)
	}

	return seats, nil
}

// FindBookedSeatNumbersBySchedule returns the seat numbers held by confirmed
// bookings on a schedule. Cancelled bookings release their seats.
func (r *bookingSeatRepository) FindBookedSeatNumbersBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]string, error) {
	query := `
		SELECT bs.seat_number
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE b.schedule_id = $1 AND b.status = $2
	`

	rows, err := r.db.Query(ctx, query, scheduleID, entity.BookingStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to find booked seat numbers",
			zap.Error(err),
			zap.String("schedule_id", scheduleID.String()),
		)
		return nil, fmt.Errorf("find booked seat numbers for schedule %s: %w", scheduleID.String(), err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			r.log.Error("Failed to scan seat number", zap.Error(err))
			return nil, fmt.Errorf("scan seat number: %w", err)
		}
		numbers = append(numbers, number)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat number rows: %w", err)
	}

	return numbers, nil
}
