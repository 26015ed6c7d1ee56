package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// ErrDuplicateSlot is returned when an insert trips the partial unique
// index on (business, date, employee, slot start) over live reservations.
var ErrDuplicateSlot = errors.New("reservation slot already taken")

// ReservationRepository manages persistence for reservations.
type ReservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository constructs a ReservationRepository.
func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = "id, user_id, business_id, reservation_date, slot_start, slot_end, assigned_employee_user_id, notes, is_cancelled, created_at, updated_at"

// Create inserts a new reservation. A unique-violation from the live-slot
// index is translated to ErrDuplicateSlot so the service can map it to a
// conflict response.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if reservation.CreatedAt.IsZero() {
		reservation.CreatedAt = now
	}
	reservation.UpdatedAt = now

	const query = `INSERT INTO reservations (id, user_id, business_id, reservation_date, slot_start, slot_end, assigned_employee_user_id, notes, is_cancelled, created_at, updated_at)
		VALUES (:id, :user_id, :business_id, :reservation_date, :slot_start, :slot_end, :assigned_employee_user_id, :notes, :is_cancelled, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reservation); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// FindByID fetches a reservation by ID.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE id = $1", reservationColumns)
	var reservation models.Reservation
	if err := r.db.GetContext(ctx, &reservation, query, id); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByBusinessAndDate returns the non-cancelled reservations for one
// business day, start-ordered. This is the engine's reservation index.
func (r *ReservationRepository) ListByBusinessAndDate(ctx context.Context, businessID string, date time.Time) ([]models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE business_id = $1 AND reservation_date = $2 AND is_cancelled = FALSE ORDER BY slot_start ASC", reservationColumns)
	var reservations []models.Reservation
	if err := r.db.SelectContext(ctx, &reservations, query, businessID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("list reservations for date: %w", err)
	}
	return reservations, nil
}

// ListByBusiness returns every reservation for a business, newest first.
func (r *ReservationRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE business_id = $1 ORDER BY reservation_date DESC, slot_start DESC", reservationColumns)
	var reservations []models.Reservation
	if err := r.db.SelectContext(ctx, &reservations, query, businessID); err != nil {
		return nil, fmt.Errorf("list reservations by business: %w", err)
	}
	return reservations, nil
}

// ListByUser returns every reservation a user holds, newest first.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	query := fmt.Sprintf("SELECT %s FROM reservations WHERE user_id = $1 ORDER BY reservation_date DESC, slot_start DESC", reservationColumns)
	var reservations []models.Reservation
	if err := r.db.SelectContext(ctx, &reservations, query, userID); err != nil {
		return nil, fmt.Errorf("list reservations by user: %w", err)
	}
	return reservations, nil
}

// FindConflicts returns live reservations for the given employee whose slot
// overlaps the candidate interval on the same business day.
func (r *ReservationRepository) FindConflicts(ctx context.Context, businessID string, date time.Time, employeeUserID string, slot models.TimeSlot) ([]models.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations
		WHERE business_id = $1 AND reservation_date = $2 AND assigned_employee_user_id = $3
		AND is_cancelled = FALSE AND slot_start < $5 AND slot_end > $4`, reservationColumns)
	var reservations []models.Reservation
	if err := r.db.SelectContext(ctx, &reservations, query, businessID, date.Format("2006-01-02"), employeeUserID, slot.Start, slot.End); err != nil {
		return nil, fmt.Errorf("find conflicting reservations: %w", err)
	}
	return reservations, nil
}

// Update modifies an existing reservation record.
func (r *ReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	reservation.UpdatedAt = time.Now().UTC()
	const query = `UPDATE reservations SET reservation_date = :reservation_date, slot_start = :slot_start, slot_end = :slot_end, assigned_employee_user_id = :assigned_employee_user_id, notes = :notes, is_cancelled = :is_cancelled, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, reservation); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("update reservation: %w", err)
	}
	return nil
}

// Cancel soft-deletes a reservation, keeping it for history.
func (r *ReservationRepository) Cancel(ctx context.Context, id string) error {
	const query = `UPDATE reservations SET is_cancelled = TRUE, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a reservation permanently.
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM reservations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
