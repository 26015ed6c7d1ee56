package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/tuncerburak97/reservation-http-api/internal/models"
)

func newReservationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestReservationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	reservation := &models.Reservation{
		UserID:                 "user-1",
		BusinessID:             "biz-1",
		ReservationDate:        time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		SlotStart:              models.NewClockTime(10, 0),
		SlotEnd:                models.NewClockTime(10, 30),
		AssignedEmployeeUserID: "emp-a",
	}
	require.NoError(t, repo.Create(context.Background(), reservation))
	require.NotEmpty(t, reservation.ID)
	require.False(t, reservation.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uniq_reservations_live_slot"})

	err := repo.Create(context.Background(), &models.Reservation{
		UserID:                 "user-1",
		BusinessID:             "biz-1",
		ReservationDate:        time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		SlotStart:              models.NewClockTime(10, 0),
		SlotEnd:                models.NewClockTime(10, 30),
		AssignedEmployeeUserID: "emp-a",
	})
	require.ErrorIs(t, err, ErrDuplicateSlot)
	require.NoError(t, mock.ExpectationsWereMet())
}

func reservationRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "business_id", "reservation_date", "slot_start", "slot_end", "assigned_employee_user_id", "notes", "is_cancelled", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, "user-1", "biz-1", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), "10:00:00", "10:30:00", "emp-a", nil, false, time.Now(), time.Now())
	}
	return rows
}

func TestReservationRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, business_id")).
		WithArgs("res-1").
		WillReturnRows(reservationRows("res-1"))

	found, err := repo.FindByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, "res-1", found.ID)
	require.Equal(t, models.NewClockTime(10, 0), found.SlotStart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, business_id")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReservationRepositoryListByBusinessAndDate(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND is_cancelled = FALSE ORDER BY slot_start ASC")).
		WithArgs("biz-1", "2026-03-15").
		WillReturnRows(reservationRows("res-1", "res-2"))

	reservations, err := repo.ListByBusinessAndDate(context.Background(), "biz-1", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryFindConflicts(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("AND is_cancelled = FALSE AND slot_start < $5 AND slot_end > $4")).
		WithArgs("biz-1", "2026-03-15", "emp-a", "10:00:00", "10:30:00").
		WillReturnRows(reservationRows("res-1"))

	conflicts, err := repo.FindConflicts(context.Background(), "biz-1",
		time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), "emp-a",
		models.NewTimeSlot(models.NewClockTime(10, 0), models.NewClockTime(10, 30)))
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryCancel(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET is_cancelled = TRUE")).
		WithArgs("res-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), "res-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryCancelMissingRow(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET is_cancelled = TRUE")).
		WithArgs("missing", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Cancel(context.Background(), "missing"), sql.ErrNoRows)
}

func TestReservationRepositoryUpdateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newReservationRepoMock(t)
	defer cleanup()

	repo := NewReservationRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservations SET reservation_date")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Update(context.Background(), &models.Reservation{ID: "res-1"})
	require.ErrorIs(t, err, ErrDuplicateSlot)
}
