package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// SettingsRepository manages persistence for reservation settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

const settingsColumns = "id, business_id, default_start_time, default_end_time, slot_duration_minutes, max_advance_booking_days, min_advance_booking_hours, accept_reservations, auto_confirm, created_at, updated_at"

// FindByBusinessID fetches the settings row for a business.
func (r *SettingsRepository) FindByBusinessID(ctx context.Context, businessID string) (*models.ReservationSettings, error) {
	query := fmt.Sprintf("SELECT %s FROM reservation_settings WHERE business_id = $1", settingsColumns)
	var settings models.ReservationSettings
	if err := r.db.GetContext(ctx, &settings, query, businessID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// List returns every settings row.
func (r *SettingsRepository) List(ctx context.Context) ([]models.ReservationSettings, error) {
	query := fmt.Sprintf("SELECT %s FROM reservation_settings ORDER BY created_at ASC", settingsColumns)
	var settings []models.ReservationSettings
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("list reservation settings: %w", err)
	}
	return settings, nil
}

// Create inserts a settings row. The business_id unique constraint makes
// concurrent first-access creations collapse to one row; ON CONFLICT DO
// NOTHING lets the loser fall through to a re-read.
func (r *SettingsRepository) Create(ctx context.Context, settings *models.ReservationSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	const query = `INSERT INTO reservation_settings (id, business_id, default_start_time, default_end_time, slot_duration_minutes, max_advance_booking_days, min_advance_booking_hours, accept_reservations, auto_confirm, created_at, updated_at)
		VALUES (:id, :business_id, :default_start_time, :default_end_time, :slot_duration_minutes, :max_advance_booking_days, :min_advance_booking_hours, :accept_reservations, :auto_confirm, :created_at, :updated_at)
		ON CONFLICT (business_id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("create reservation settings: %w", err)
	}
	return nil
}

// Update modifies an existing settings record.
func (r *SettingsRepository) Update(ctx context.Context, settings *models.ReservationSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	const query = `UPDATE reservation_settings SET default_start_time = :default_start_time, default_end_time = :default_end_time, slot_duration_minutes = :slot_duration_minutes, max_advance_booking_days = :max_advance_booking_days, min_advance_booking_hours = :min_advance_booking_hours, accept_reservations = :accept_reservations, auto_confirm = :auto_confirm, updated_at = :updated_at WHERE business_id = :business_id`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("update reservation settings: %w", err)
	}
	return nil
}

// DeleteByBusinessID removes the settings row for a business.
func (r *SettingsRepository) DeleteByBusinessID(ctx context.Context, businessID string) error {
	const query = `DELETE FROM reservation_settings WHERE business_id = $1`
	res, err := r.db.ExecContext(ctx, query, businessID)
	if err != nil {
		return fmt.Errorf("delete reservation settings: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
