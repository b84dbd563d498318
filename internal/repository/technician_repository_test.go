package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
)

func newTechnicianRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func technicianRowColumns() []string {
	return []string{"id", "name", "email", "mobile", "specialization", "is_active", "max_jobs", "current_active_jobs", "created_at", "updated_at"}
}

func TestTechnicianRepositoryList(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(technicianRowColumns()).
		AddRow("tech-1", "Kasun", nil, nil, nil, true, 5, 2, now, now).
		AddRow("tech-2", "Sunil", sql.NullString{String: "sunil@example.com", Valid: true}, nil, nil, false, 3, 0, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM technicians ORDER BY name ASC")).
		WillReturnRows(rows)

	technicians, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, technicians, 2)
	assert.Equal(t, "Kasun", technicians[0].Name)
	assert.False(t, technicians[1].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTechnicianRepositoryListAvailable(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	now := time.Now().UTC()
	columns := append(technicianRowColumns(), "active_jobs")
	rows := sqlmock.NewRows(columns).
		AddRow("tech-1", "Kasun", nil, nil, nil, true, 5, 2, now, now, 2)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(c.active_jobs, 0) < CASE WHEN t.max_jobs > 0 THEN t.max_jobs ELSE $1 END")).
		WithArgs(5).
		WillReturnRows(rows)

	available, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "tech-1", available[0].ID)
	assert.Equal(t, 2, available[0].ActiveJobs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTechnicianRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	mock.ExpectQuery(regexp.QuoteMeta("FROM technicians WHERE id = $1")).
		WithArgs("tech-99").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "tech-99")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTechnicianRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO technicians")).
		WithArgs(sqlmock.AnyArg(), "Kasun", nil, nil, nil, true, 5, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	technician := &models.Technician{Name: "Kasun", IsActive: true, MaxJobs: 5}
	err := repo.Create(context.Background(), technician)
	require.NoError(t, err)
	assert.NotEmpty(t, technician.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTechnicianRepositoryUpdateLeavesCounterAlone(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE technicians SET name = $1, email = $2, mobile = $3, specialization = $4, is_active = $5, max_jobs = $6, updated_at = $7 WHERE id = $8")).
		WithArgs("Kasun", nil, nil, nil, false, 3, sqlmock.AnyArg(), "tech-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	technician := &models.Technician{ID: "tech-1", Name: "Kasun", IsActive: false, MaxJobs: 3, CurrentActiveJobs: 7}
	err := repo.Update(context.Background(), technician)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTechnicianRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newTechnicianRepoMock(t)
	defer cleanup()
	repo := NewTechnicianRepository(db, 5)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM technicians WHERE id = $1")).
		WithArgs("tech-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Delete(context.Background(), "tech-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
