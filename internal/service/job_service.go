package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/internal/repository"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

type jobRepository interface {
	CreateWithAdmission(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, jobNumber int, newStatus models.JobStatus) (*models.Job, error)
	DeleteByID(ctx context.Context, id string) (*models.Job, error)
	DeleteByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error)
	FindByNIC(ctx context.Context, nic string) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	UpdateCustomer(ctx context.Context, job *models.Job) error
}

type jobNotifier interface {
	PublishJobUpdate(job *models.Job)
	PublishJobDelete(job *models.Job)
}

// CreateJobRequest represents the admission payload.
type CreateJobRequest struct {
	TechnicianID string  `json:"technician_id" validate:"required,uuid"`
	Name         string  `json:"name" validate:"required,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	NIC          string  `json:"nic" validate:"required,nic"`
	Mobile       string  `json:"mobile" validate:"required,lkmobile"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateJobStatusRequest carries a status transition.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateCustomerJobRequest is the allow-listed customer-facing update payload.
// Status, job number, and technician assignment are not mutable here.
type UpdateCustomerJobRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	NIC         string  `json:"nic" validate:"required,nic"`
	Mobile      string  `json:"mobile" validate:"required,lkmobile"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// JobService orchestrates job card operations.
type JobService struct {
	repo      jobRepository
	notifier  jobNotifier
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJobService constructs a JobService. notifier, cache, and metrics may be nil.
func NewJobService(repo jobRepository, notifier jobNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
		_ = RegisterCustomValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{repo: repo, notifier: notifier, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Create admits a new job card under the capacity policy. On success exactly
// one job exists and the technician counter moved by one; on failure nothing
// is persisted.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid job payload"))
	}

	job := &models.Job{
		CustomerName:  strings.TrimSpace(req.Name),
		CustomerEmail: strings.TrimSpace(req.Email),
		NIC:           strings.TrimSpace(req.NIC),
		Mobile:        strings.TrimSpace(req.Mobile),
		TechnicianID:  req.TechnicianID,
		Description:   normalizeOptional(req.Description),
	}

	if err := s.repo.CreateWithAdmission(ctx, job); err != nil {
		switch {
		case errors.Is(err, repository.ErrTechnicianNotFound):
			s.metrics.RecordAdmission("rejected")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "technician not found")
		case errors.Is(err, repository.ErrTechnicianInactive):
			s.metrics.RecordAdmission("rejected")
			return nil, appErrors.Clone(appErrors.ErrTechnicianInactive, "")
		case errors.Is(err, repository.ErrCapacityExceeded):
			s.metrics.RecordAdmission("rejected")
			return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "")
		case errors.Is(err, repository.ErrJobNumberConflict):
			s.metrics.RecordAdmission("conflict")
			return nil, appErrors.Clone(appErrors.ErrConflict, "job number contention, retry the request")
		default:
			s.metrics.RecordAdmission("error")
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
		}
	}

	s.metrics.RecordAdmission("admitted")
	s.invalidate(ctx)
	s.logger.Info("job admitted",
		zap.Int("job_number", job.JobNumber),
		zap.String("technician_id", job.TechnicianID),
	)
	return job, nil
}

// SetStatus transitions a job to the requested status, reconciling the
// technician counter when the job leaves the active set.
func (s *JobService) SetStatus(ctx context.Context, jobNumber int, req UpdateJobStatusRequest) (*models.Job, error) {
	status := models.JobStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatus, "status must be one of Pending, In Progress, Completed, Cancelled")
	}

	job, err := s.repo.UpdateStatus(ctx, jobNumber, status)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job status")
	}

	s.invalidate(ctx)
	return job, nil
}

// GetByJobNumber returns a single job.
func (s *JobService) GetByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	job, err := s.repo.FindByJobNumber(ctx, jobNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

// Search resolves a job by job number or NIC. Exactly one identifier must be
// supplied.
func (s *JobService) Search(ctx context.Context, jobNumber *int, nic string) (*models.Job, error) {
	nic = strings.TrimSpace(nic)
	if (jobNumber == nil) == (nic == "") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "provide exactly one of job number or NIC")
	}

	var (
		job *models.Job
		err error
	)
	if jobNumber != nil {
		job, err = s.repo.FindByJobNumber(ctx, *jobNumber)
	} else {
		job, err = s.repo.FindByNIC(ctx, nic)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no job found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search jobs")
	}
	return job, nil
}

// List returns all jobs ordered by ascending job number. The listing is
// served from cache when present; every mutation invalidates it.
func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	var cached []models.Job
	if s.cache.GetJobList(ctx, &cached) {
		return cached, nil
	}

	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}

	s.cache.SetJobList(ctx, jobs)
	return jobs, nil
}

// UpdateCustomer rewrites the allow-listed customer fields through the
// customer-facing path and notifies admins.
func (s *JobService) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerJobRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid job payload"))
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	job.CustomerName = strings.TrimSpace(req.Name)
	job.CustomerEmail = strings.TrimSpace(req.Email)
	job.NIC = strings.TrimSpace(req.NIC)
	job.Mobile = strings.TrimSpace(req.Mobile)
	job.Description = normalizeOptional(req.Description)

	if err := s.repo.UpdateCustomer(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}

	if s.notifier != nil {
		s.notifier.PublishJobUpdate(job)
	}
	s.invalidate(ctx)
	return job, nil
}

// DeleteByID removes a job through the customer-facing path, reconciling the
// technician counter and notifying admins.
func (s *JobService) DeleteByID(ctx context.Context, id string) error {
	job, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}

	if s.notifier != nil {
		s.notifier.PublishJobDelete(job)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteByJobNumber removes a job through the admin path. No notification is
// emitted; the reference behavior notifies only on customer-driven deletes.
func (s *JobService) DeleteByJobNumber(ctx context.Context, jobNumber int) error {
	if _, err := s.repo.DeleteByJobNumber(ctx, jobNumber); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete job")
	}

	s.invalidate(ctx)
	return nil
}

func (s *JobService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
