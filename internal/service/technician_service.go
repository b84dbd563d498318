package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

type technicianRepository interface {
	List(ctx context.Context) ([]models.Technician, error)
	ListAvailable(ctx context.Context) ([]models.AvailableTechnician, error)
	FindByID(ctx context.Context, id string) (*models.Technician, error)
	Create(ctx context.Context, technician *models.Technician) error
	Update(ctx context.Context, technician *models.Technician) error
	Delete(ctx context.Context, id string) error
}

// CreateTechnicianRequest represents payload for registering technicians.
type CreateTechnicianRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Mobile         *string `json:"mobile" validate:"omitempty,lkmobile"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
	MaxJobs        *int    `json:"max_jobs" validate:"omitempty,gte=1,lte=50"`
}

// UpdateTechnicianRequest represents payload for admin edits. The active-job
// counter is owned by the job transactions and cannot be set here.
type UpdateTechnicianRequest struct {
	Name           string  `json:"name" validate:"required,max=100"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Mobile         *string `json:"mobile" validate:"omitempty,lkmobile"`
	Specialization *string `json:"specialization" validate:"omitempty,max=200"`
	MaxJobs        *int    `json:"max_jobs" validate:"omitempty,gte=1,lte=50"`
	IsActive       *bool   `json:"is_active"`
}

// TechnicianService orchestrates technician operations.
type TechnicianService struct {
	repo      technicianRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTechnicianService constructs a TechnicianService. cache may be nil.
func NewTechnicianService(repo technicianRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TechnicianService {
	if validate == nil {
		validate = validator.New()
		_ = RegisterCustomValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TechnicianService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all technicians.
func (s *TechnicianService) List(ctx context.Context) ([]models.Technician, error) {
	technicians, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list technicians")
	}
	return technicians, nil
}

// ListAvailable returns active technicians with spare capacity, computed from
// the jobs table. The result is advisory; admission re-validates capacity.
func (s *TechnicianService) ListAvailable(ctx context.Context) ([]models.AvailableTechnician, error) {
	cached := []models.AvailableTechnician{}
	if s.cache.GetAvailability(ctx, &cached) {
		return cached, nil
	}

	available, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available technicians")
	}

	s.cache.SetAvailability(ctx, available)
	return available, nil
}

// Get returns a technician by id.
func (s *TechnicianService) Get(ctx context.Context, id string) (*models.Technician, error) {
	technician, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "technician not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load technician")
	}
	return technician, nil
}

// Create registers a new technician.
func (s *TechnicianService) Create(ctx context.Context, req CreateTechnicianRequest) (*models.Technician, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid technician payload"))
	}

	technician := &models.Technician{
		Name:              strings.TrimSpace(req.Name),
		Email:             normalizeOptional(req.Email),
		Mobile:            normalizeOptional(req.Mobile),
		Specialization:    normalizeOptional(req.Specialization),
		IsActive:          true,
		MaxJobs:           models.DefaultMaxJobs,
		CurrentActiveJobs: 0,
	}
	if req.MaxJobs != nil {
		technician.MaxJobs = *req.MaxJobs
	}

	if err := s.repo.Create(ctx, technician); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create technician")
	}

	s.cache.Invalidate(ctx)
	return technician, nil
}

// Update applies an admin edit to a technician. Renames do not propagate to
// the name snapshots on existing jobs.
func (s *TechnicianService) Update(ctx context.Context, id string, req UpdateTechnicianRequest) (*models.Technician, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err, "invalid technician payload"))
	}

	technician, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "technician not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load technician")
	}

	technician.Name = strings.TrimSpace(req.Name)
	technician.Email = normalizeOptional(req.Email)
	technician.Mobile = normalizeOptional(req.Mobile)
	technician.Specialization = normalizeOptional(req.Specialization)
	if req.MaxJobs != nil {
		technician.MaxJobs = *req.MaxJobs
	}
	if req.IsActive != nil {
		technician.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, technician); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update technician")
	}

	s.cache.Invalidate(ctx)
	return technician, nil
}

// Delete removes a technician. Existing jobs keep their dangling reference
// and the technician name snapshot.
func (s *TechnicianService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "technician not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load technician")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete technician")
	}

	s.cache.Invalidate(ctx)
	return nil
}
