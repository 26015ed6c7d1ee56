package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// AvailabilityRuleRepository manages persistence for availability rules.
type AvailabilityRuleRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRuleRepository constructs an AvailabilityRuleRepository.
func NewAvailabilityRuleRepository(db *sqlx.DB) *AvailabilityRuleRepository {
	return &AvailabilityRuleRepository{db: db}
}

const ruleColumns = "id, business_id, availability_type, day_of_week, specific_date, start_date, end_date, available_slots, blocked_slots, is_active, block_reason, created_at, updated_at"

// Create inserts a new availability rule.
func (r *AvailabilityRuleRepository) Create(ctx context.Context, rule *models.AvailabilityRule) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = now
	}
	rule.UpdatedAt = now

	const query = `INSERT INTO availability_rules (id, business_id, availability_type, day_of_week, specific_date, start_date, end_date, available_slots, blocked_slots, is_active, block_reason, created_at, updated_at)
		VALUES (:id, :business_id, :availability_type, :day_of_week, :specific_date, :start_date, :end_date, :available_slots, :blocked_slots, :is_active, :block_reason, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("create availability rule: %w", err)
	}
	return nil
}

// FindByID fetches a rule by ID.
func (r *AvailabilityRuleRepository) FindByID(ctx context.Context, id string) (*models.AvailabilityRule, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_rules WHERE id = $1", ruleColumns)
	var rule models.AvailabilityRule
	if err := r.db.GetContext(ctx, &rule, query, id); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListByBusiness returns every rule a business has authored.
func (r *AvailabilityRuleRepository) ListByBusiness(ctx context.Context, businessID string) ([]models.AvailabilityRule, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_rules WHERE business_id = $1 ORDER BY created_at ASC", ruleColumns)
	var rules []models.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, businessID); err != nil {
		return nil, fmt.Errorf("list availability rules: %w", err)
	}
	return rules, nil
}

// FindWeekly returns active weekly recurring rules for the given weekday.
func (r *AvailabilityRuleRepository) FindWeekly(ctx context.Context, businessID string, day models.Weekday) ([]models.AvailabilityRule, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_rules WHERE business_id = $1 AND availability_type = 'WEEKLY_RECURRING' AND day_of_week = $2 AND is_active = TRUE", ruleColumns)
	var rules []models.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, businessID, day); err != nil {
		return nil, fmt.Errorf("find weekly rules: %w", err)
	}
	return rules, nil
}

// FindSpecificDate returns active specific-date rules for the given day.
func (r *AvailabilityRuleRepository) FindSpecificDate(ctx context.Context, businessID string, date time.Time) ([]models.AvailabilityRule, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_rules WHERE business_id = $1 AND availability_type = 'SPECIFIC_DATE' AND specific_date = $2 AND is_active = TRUE", ruleColumns)
	var rules []models.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, businessID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("find specific date rules: %w", err)
	}
	return rules, nil
}

// FindRangeContaining returns active date-range rules whose inclusive span
// covers the given day.
func (r *AvailabilityRuleRepository) FindRangeContaining(ctx context.Context, businessID string, date time.Time) ([]models.AvailabilityRule, error) {
	query := fmt.Sprintf("SELECT %s FROM availability_rules WHERE business_id = $1 AND availability_type = 'DATE_RANGE' AND start_date <= $2 AND end_date >= $2 AND is_active = TRUE", ruleColumns)
	var rules []models.AvailabilityRule
	if err := r.db.SelectContext(ctx, &rules, query, businessID, date.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("find date range rules: %w", err)
	}
	return rules, nil
}

// Update modifies an existing rule record.
func (r *AvailabilityRuleRepository) Update(ctx context.Context, rule *models.AvailabilityRule) error {
	rule.UpdatedAt = time.Now().UTC()
	const query = `UPDATE availability_rules SET available_slots = :available_slots, blocked_slots = :blocked_slots, is_active = :is_active, block_reason = :block_reason, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, rule); err != nil {
		return fmt.Errorf("update availability rule: %w", err)
	}
	return nil
}

// Delete removes a rule.
func (r *AvailabilityRuleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM availability_rules WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete availability rule: %w", err)
	}
	return nil
}
