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

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
)

// Sentinel errors surfaced by the transactional job operations. The service
// layer maps them onto the HTTP error taxonomy.
var (
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrTechnicianInactive = errors.New("technician inactive")
	ErrCapacityExceeded   = errors.New("technician at capacity")
	ErrJobNotFound        = errors.New("job not found")
	ErrJobNumberConflict  = errors.New("job number already taken")
)

const jobColumns = `id, job_number, customer_name, customer_email, nic, mobile, technician_id, technician_name, status, description, created_at, updated_at`

// JobRepository manages persistence for job cards and owns the transactional
// read-modify-write sequences that keep technician counters consistent.
type JobRepository struct {
	db             *sqlx.DB
	defaultMaxJobs int
}

// NewJobRepository constructs a JobRepository.
func NewJobRepository(db *sqlx.DB, defaultMaxJobs int) *JobRepository {
	if defaultMaxJobs <= 0 {
		defaultMaxJobs = models.DefaultMaxJobs
	}
	return &JobRepository{db: db, defaultMaxJobs: defaultMaxJobs}
}

// CreateWithAdmission inserts a job under the capacity admission policy.
// The technician row is locked for the duration of the transaction so two
// concurrent admissions against the same technician serialize; the unique
// constraint on job_number backstops number races across technicians.
func (r *JobRepository) CreateWithAdmission(ctx context.Context, job *models.Job) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin admission transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var tech struct {
		Name     string `db:"name"`
		IsActive bool   `db:"is_active"`
		MaxJobs  int    `db:"max_jobs"`
	}
	const lockQuery = `SELECT name, is_active, max_jobs FROM technicians WHERE id = $1 FOR UPDATE`
	if err = tx.GetContext(ctx, &tech, lockQuery, job.TechnicianID); err != nil {
		if err == sql.ErrNoRows {
			return ErrTechnicianNotFound
		}
		return fmt.Errorf("lock technician: %w", err)
	}
	if !tech.IsActive {
		return ErrTechnicianInactive
	}

	maxJobs := tech.MaxJobs
	if maxJobs <= 0 {
		maxJobs = r.defaultMaxJobs
	}

	var activeCount int
	const countQuery = `SELECT COUNT(*) FROM jobs WHERE technician_id = $1 AND status IN ('Pending', 'In Progress')`
	if err = tx.GetContext(ctx, &activeCount, countQuery, job.TechnicianID); err != nil {
		return fmt.Errorf("count active jobs: %w", err)
	}
	if activeCount >= maxJobs {
		return ErrCapacityExceeded
	}

	var nextNumber int
	const numberQuery = `SELECT COALESCE(MAX(job_number), $1 - 1) + 1 FROM jobs`
	if err = tx.GetContext(ctx, &nextNumber, numberQuery, models.FirstJobNumber); err != nil {
		return fmt.Errorf("allocate job number: %w", err)
	}

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	job.JobNumber = nextNumber
	job.TechnicianName = tech.Name
	job.Status = models.JobStatusPending
	job.CreatedAt = now
	job.UpdatedAt = now

	const insertQuery = `INSERT INTO jobs (id, job_number, customer_name, customer_email, nic, mobile, technician_id, technician_name, status, description, created_at, updated_at)
VALUES (:id, :job_number, :customer_name, :customer_email, :nic, :mobile, :technician_id, :technician_name, :status, :description, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, insertQuery, job); err != nil {
		if isUniqueViolation(err) {
			err = ErrJobNumberConflict
			return err
		}
		return fmt.Errorf("insert job: %w", err)
	}

	const incrementQuery = `UPDATE technicians SET current_active_jobs = current_active_jobs + 1, updated_at = $2 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, incrementQuery, job.TechnicianID, now); err != nil {
		return fmt.Errorf("increment technician counter: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit admission: %w", err)
	}
	return nil
}

// UpdateStatus rewrites a job's status and reconciles the technician counter
// when the job crosses from an active status into an inactive one. No other
// transition touches the counter.
func (r *JobRepository) UpdateStatus(ctx context.Context, jobNumber int, newStatus models.JobStatus) (job *models.Job, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current models.Job
	lockQuery := fmt.Sprintf(`SELECT %s FROM jobs WHERE job_number = $1 FOR UPDATE`, jobColumns)
	if err = tx.GetContext(ctx, &current, lockQuery, jobNumber); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("lock job: %w", err)
	}

	previous := current.Status
	now := time.Now().UTC()
	const updateQuery = `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err = tx.ExecContext(ctx, updateQuery, newStatus, now, current.ID); err != nil {
		return nil, fmt.Errorf("update job status: %w", err)
	}

	if previous.IsActive() && !newStatus.IsActive() && current.TechnicianID != "" {
		const decrementQuery = `UPDATE technicians SET current_active_jobs = GREATEST(current_active_jobs - 1, 0), updated_at = $2 WHERE id = $1`
		if _, err = tx.ExecContext(ctx, decrementQuery, current.TechnicianID, now); err != nil {
			return nil, fmt.Errorf("decrement technician counter: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}

	current.Status = newStatus
	current.UpdatedAt = now
	return &current, nil
}

// DeleteByID removes a job addressed by its internal id, reconciling the
// technician counter when the job is still active. Returns the deleted job.
func (r *JobRepository) DeleteByID(ctx context.Context, id string) (*models.Job, error) {
	return r.delete(ctx, "id = $1", id)
}

// DeleteByJobNumber removes a job addressed by its external number.
func (r *JobRepository) DeleteByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	return r.delete(ctx, "job_number = $1", jobNumber)
}

func (r *JobRepository) delete(ctx context.Context, where string, arg interface{}) (job *models.Job, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current models.Job
	lockQuery := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s FOR UPDATE`, jobColumns, where)
	if err = tx.GetContext(ctx, &current, lockQuery, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("lock job: %w", err)
	}

	if current.Status.IsActive() && current.TechnicianID != "" {
		const decrementQuery = `UPDATE technicians SET current_active_jobs = GREATEST(current_active_jobs - 1, 0), updated_at = $2 WHERE id = $1`
		if _, err = tx.ExecContext(ctx, decrementQuery, current.TechnicianID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("decrement technician counter: %w", err)
		}
	}

	const deleteQuery = `DELETE FROM jobs WHERE id = $1`
	if _, err = tx.ExecContext(ctx, deleteQuery, current.ID); err != nil {
		return nil, fmt.Errorf("delete job: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete: %w", err)
	}
	return &current, nil
}

// FindByID fetches a job by internal id.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByJobNumber fetches a job by its external number.
func (r *JobRepository) FindByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE job_number = $1`, jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, jobNumber); err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByNIC fetches the most recent job filed under the given NIC.
func (r *JobRepository) FindByNIC(ctx context.Context, nic string) (*models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE nic = $1 ORDER BY job_number DESC LIMIT 1`, jobColumns)
	var job models.Job
	if err := r.db.GetContext(ctx, &job, query, nic); err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns all jobs ordered by ascending job number.
func (r *JobRepository) List(ctx context.Context) ([]models.Job, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs ORDER BY job_number ASC`, jobColumns)
	jobs := []models.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// UpdateCustomer rewrites the allow-listed customer fields of a job. Status,
// number, and technician assignment are not reachable through this path.
func (r *JobRepository) UpdateCustomer(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	const query = `UPDATE jobs SET customer_name = :customer_name, customer_email = :customer_email, nic = :nic, mobile = :mobile, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("update job customer fields: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
