package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

// BusinessRepository manages persistence for businesses and their rosters.
type BusinessRepository struct {
	db *sqlx.DB
}

// NewBusinessRepository constructs a BusinessRepository.
func NewBusinessRepository(db *sqlx.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

const businessColumns = "id, name, owner_user_id, city, district, address, phone, email, created_at, updated_at"

// Create inserts a business and enrolls the owner as its first active
// employee, in one transaction.
func (r *BusinessRepository) Create(ctx context.Context, business *models.Business) error {
	if business.ID == "" {
		business.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if business.CreatedAt.IsZero() {
		business.CreatedAt = now
	}
	business.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create business: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertBusiness = `INSERT INTO businesses (id, name, owner_user_id, city, district, address, phone, email, created_at, updated_at)
		VALUES (:id, :name, :owner_user_id, :city, :district, :address, :phone, :email, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertBusiness, business); err != nil {
		return fmt.Errorf("create business: %w", err)
	}

	const insertOwner = `INSERT INTO business_employees (business_id, user_id, active, joined_at)
		VALUES ($1, $2, TRUE, $3)`
	if _, err := tx.ExecContext(ctx, insertOwner, business.ID, business.OwnerUserID, now); err != nil {
		return fmt.Errorf("enroll owner employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create business: %w", err)
	}

	business.Employees = []models.BusinessEmployee{{
		BusinessID: business.ID,
		UserID:     business.OwnerUserID,
		Active:     true,
		JoinedAt:   now,
	}}
	return nil
}

// FindByID fetches a business with its employee roster.
func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*models.Business, error) {
	query := fmt.Sprintf("SELECT %s FROM businesses WHERE id = $1", businessColumns)
	var business models.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		return nil, err
	}

	employees, err := r.ListEmployees(ctx, id)
	if err != nil {
		return nil, err
	}
	business.Employees = employees
	return &business, nil
}

// List returns businesses matching filters along with total count. Rosters
// are not loaded for list views.
func (r *BusinessRepository) List(ctx context.Context, filter models.BusinessFilter) ([]models.Business, int, error) {
	base := "FROM businesses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.OwnerUserID != "" {
		conditions = append(conditions, fmt.Sprintf("owner_user_id = $%d", len(args)+1))
		args = append(args, filter.OwnerUserID)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", businessColumns, base, size, offset)
	var businesses []models.Business
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list businesses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count businesses: %w", err)
	}

	return businesses, total, nil
}

// Update modifies an existing business record.
func (r *BusinessRepository) Update(ctx context.Context, business *models.Business) error {
	business.UpdatedAt = time.Now().UTC()
	const query = `UPDATE businesses SET name = :name, city = :city, district = :district, address = :address, phone = :phone, email = :email, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, business); err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// Delete removes a business; roster rows cascade at the schema level.
func (r *BusinessRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM businesses WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListEmployees returns the full roster for a business, active and not.
func (r *BusinessRepository) ListEmployees(ctx context.Context, businessID string) ([]models.BusinessEmployee, error) {
	const query = `SELECT business_id, user_id, active, joined_at FROM business_employees WHERE business_id = $1 ORDER BY joined_at ASC`
	var employees []models.BusinessEmployee
	if err := r.db.SelectContext(ctx, &employees, query, businessID); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// AddEmployee enrolls a user on the roster as active.
func (r *BusinessRepository) AddEmployee(ctx context.Context, employee *models.BusinessEmployee) error {
	if employee.JoinedAt.IsZero() {
		employee.JoinedAt = time.Now().UTC()
	}
	const query = `INSERT INTO business_employees (business_id, user_id, active, joined_at)
		VALUES (:business_id, :user_id, :active, :joined_at)`
	if _, err := r.db.NamedExecContext(ctx, query, employee); err != nil {
		return fmt.Errorf("add employee: %w", err)
	}
	return nil
}

// SetEmployeeActive toggles a roster member's active flag.
func (r *BusinessRepository) SetEmployeeActive(ctx context.Context, businessID, userID string, active bool) error {
	const query = `UPDATE business_employees SET active = $3 WHERE business_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, businessID, userID, active)
	if err != nil {
		return fmt.Errorf("set employee active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RemoveEmployee deletes a roster row.
func (r *BusinessRepository) RemoveEmployee(ctx context.Context, businessID, userID string) error {
	const query = `DELETE FROM business_employees WHERE business_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, businessID, userID)
	if err != nil {
		return fmt.Errorf("remove employee: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
