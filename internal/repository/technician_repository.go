package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
)

const technicianColumns = `id, name, email, mobile, specialization, is_active, max_jobs, current_active_jobs, created_at, updated_at`

// TechnicianRepository manages persistence for technicians.
type TechnicianRepository struct {
	db             *sqlx.DB
	defaultMaxJobs int
}

// NewTechnicianRepository constructs a TechnicianRepository.
func NewTechnicianRepository(db *sqlx.DB, defaultMaxJobs int) *TechnicianRepository {
	if defaultMaxJobs <= 0 {
		defaultMaxJobs = models.DefaultMaxJobs
	}
	return &TechnicianRepository{db: db, defaultMaxJobs: defaultMaxJobs}
}

// List returns all technicians ordered by name.
func (r *TechnicianRepository) List(ctx context.Context) ([]models.Technician, error) {
	query := fmt.Sprintf(`SELECT %s FROM technicians ORDER BY name ASC`, technicianColumns)
	technicians := []models.Technician{}
	if err := r.db.SelectContext(ctx, &technicians, query); err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	return technicians, nil
}

// ListAvailable returns active technicians whose active-job count, computed
// from the jobs table, is strictly below their capacity. Advisory only: the
// admission transaction re-validates capacity at commit time.
func (r *TechnicianRepository) ListAvailable(ctx context.Context) ([]models.AvailableTechnician, error) {
	const query = `SELECT t.id, t.name, t.email, t.mobile, t.specialization, t.is_active, t.max_jobs, t.current_active_jobs, t.created_at, t.updated_at, COALESCE(c.active_jobs, 0) AS active_jobs
FROM technicians t
LEFT JOIN (
	SELECT technician_id, COUNT(*) AS active_jobs
	FROM jobs
	WHERE status IN ('Pending', 'In Progress')
	GROUP BY technician_id
) c ON c.technician_id = t.id
WHERE t.is_active = TRUE
  AND COALESCE(c.active_jobs, 0) < CASE WHEN t.max_jobs > 0 THEN t.max_jobs ELSE $1 END
ORDER BY t.name ASC`
	available := []models.AvailableTechnician{}
	if err := r.db.SelectContext(ctx, &available, query, r.defaultMaxJobs); err != nil {
		return nil, fmt.Errorf("list available technicians: %w", err)
	}
	return available, nil
}

// FindByID fetches a technician by ID.
func (r *TechnicianRepository) FindByID(ctx context.Context, id string) (*models.Technician, error) {
	query := fmt.Sprintf(`SELECT %s FROM technicians WHERE id = $1`, technicianColumns)
	var technician models.Technician
	if err := r.db.GetContext(ctx, &technician, query, id); err != nil {
		return nil, err
	}
	return &technician, nil
}

// Create inserts a new technician record.
func (r *TechnicianRepository) Create(ctx context.Context, technician *models.Technician) error {
	if technician.ID == "" {
		technician.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if technician.CreatedAt.IsZero() {
		technician.CreatedAt = now
	}
	technician.UpdatedAt = now

	const query = `INSERT INTO technicians (id, name, email, mobile, specialization, is_active, max_jobs, current_active_jobs, created_at, updated_at)
		VALUES (:id, :name, :email, :mobile, :specialization, :is_active, :max_jobs, :current_active_jobs, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, technician); err != nil {
		return fmt.Errorf("create technician: %w", err)
	}
	return nil
}

// Update modifies an existing technician record. The active-job counter is
// owned by the job transactions and is deliberately not touched here.
func (r *TechnicianRepository) Update(ctx context.Context, technician *models.Technician) error {
	technician.UpdatedAt = time.Now().UTC()
	const query = `UPDATE technicians SET name = :name, email = :email, mobile = :mobile, specialization = :specialization, is_active = :is_active, max_jobs = :max_jobs, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, technician); err != nil {
		return fmt.Errorf("update technician: %w", err)
	}
	return nil
}

// Delete removes a technician. Jobs referencing the technician keep their
// dangling reference and name snapshot.
func (r *TechnicianRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM technicians WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete technician: %w", err)
	}
	return nil
}
