package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	AdjustAvailableSeats(ctx context.Context, id uuid.UUID, delta int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TripStatus) error
}

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	query := `
		INSERT INTO trips (id, origin, destination, bus_number, bus_type, total_seats, available_seats, price, departure_at, arrival_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		trip.ID,
		trip.Origin,
		trip.Destination,
		trip.BusNumber,
		trip.BusType,
		trip.TotalSeats,
		trip.AvailableSeats,
		trip.Price,
		trip.DepartureAt,
		trip.ArrivalAt,
		trip.Status,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create trip",
			zap.Error(err),
			zap.String("bus_number", trip.BusNumber),
			zap.Time("departure_at", trip.DepartureAt),
		)
		return fmt.Errorf("create trip %s: %w", trip.BusNumber, err)
	}

	return nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	query := `
		SELECT id, origin, destination, bus_number, bus_type, total_seats, available_seats, price, departure_at, arrival_at, status, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	var trip entity.Trip
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Origin,
		&trip.Destination,
		&trip.BusNumber,
		&trip.BusType,
		&trip.TotalSeats,
		&trip.AvailableSeats,
		&trip.Price,
		&trip.DepartureAt,
		&trip.ArrivalAt,
		&trip.Status,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip by ID",
			zap.Error(err),
			zap.String("trip_id", id.String()),
		)
		return nil, fmt.Errorf("find trip by ID %s: %w", id.String(), err)
	}

	return &trip, nil
}

func (r *tripRepository) AdjustAvailableSeats(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE trips SET available_seats = available_seats + $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, delta)
	if err != nil {
		r.log.Error("Failed to adjust available seats",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.Int("delta", delta),
		)
		return fmt.Errorf("adjust available seats for trip %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip %s not found", id.String())
	}

	return nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.TripStatus) error {
	query := `UPDATE trips SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update trip status",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update trip %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip %s not found", id.String())
	}

	return nil
}
