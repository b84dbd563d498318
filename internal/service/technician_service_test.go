package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
)

type technicianRepoStub struct {
	technicians []models.Technician
	available   []models.AvailableTechnician
	byID        *models.Technician
	byIDErr     error
	created     []*models.Technician
	createErr   error
	updated     []*models.Technician
	updateErr   error
	deletedIDs  []string
	deleteErr   error
	listErr     error
}

func (s *technicianRepoStub) List(ctx context.Context) ([]models.Technician, error) {
	return s.technicians, s.listErr
}

func (s *technicianRepoStub) ListAvailable(ctx context.Context) ([]models.AvailableTechnician, error) {
	return s.available, s.listErr
}

func (s *technicianRepoStub) FindByID(ctx context.Context, id string) (*models.Technician, error) {
	return s.byID, s.byIDErr
}

func (s *technicianRepoStub) Create(ctx context.Context, technician *models.Technician) error {
	s.created = append(s.created, technician)
	return s.createErr
}

func (s *technicianRepoStub) Update(ctx context.Context, technician *models.Technician) error {
	s.updated = append(s.updated, technician)
	return s.updateErr
}

func (s *technicianRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.deleteErr
}

func TestTechnicianServiceCreateDefaults(t *testing.T) {
	repo := &technicianRepoStub{}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	technician, err := svc.Create(context.Background(), CreateTechnicianRequest{Name: "Kasun"})
	require.NoError(t, err)
	assert.True(t, technician.IsActive)
	assert.Equal(t, models.DefaultMaxJobs, technician.MaxJobs)
	assert.Zero(t, technician.CurrentActiveJobs)
	require.Len(t, repo.created, 1)
}

func TestTechnicianServiceCreateCustomCapacity(t *testing.T) {
	repo := &technicianRepoStub{}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	maxJobs := 2
	technician, err := svc.Create(context.Background(), CreateTechnicianRequest{Name: "Kasun", MaxJobs: &maxJobs})
	require.NoError(t, err)
	assert.Equal(t, 2, technician.MaxJobs)
}

func TestTechnicianServiceCreateValidation(t *testing.T) {
	repo := &technicianRepoStub{}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	zero := 0
	cases := map[string]CreateTechnicianRequest{
		"missing name":  {},
		"zero capacity": {Name: "Kasun", MaxJobs: &zero},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
	assert.Empty(t, repo.created)
}

func TestTechnicianServiceUpdateDeactivates(t *testing.T) {
	repo := &technicianRepoStub{byID: &models.Technician{ID: "tech-1", Name: "Kasun", IsActive: true, MaxJobs: 5}}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	inactive := false
	technician, err := svc.Update(context.Background(), "tech-1", UpdateTechnicianRequest{Name: "Kasun", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, technician.IsActive)
	require.Len(t, repo.updated, 1)
}

func TestTechnicianServiceUpdateNotFound(t *testing.T) {
	repo := &technicianRepoStub{byIDErr: sql.ErrNoRows}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "tech-99", UpdateTechnicianRequest{Name: "Kasun"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTechnicianServiceDelete(t *testing.T) {
	repo := &technicianRepoStub{byID: &models.Technician{ID: "tech-1"}}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	err := svc.Delete(context.Background(), "tech-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tech-1"}, repo.deletedIDs)
}

func TestTechnicianServiceDeleteNotFound(t *testing.T) {
	repo := &technicianRepoStub{byIDErr: sql.ErrNoRows}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	err := svc.Delete(context.Background(), "tech-99")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.deletedIDs)
}

func TestTechnicianServiceListAvailable(t *testing.T) {
	repo := &technicianRepoStub{available: []models.AvailableTechnician{
		{Technician: models.Technician{ID: "tech-1", Name: "Kasun", MaxJobs: 5}, ActiveJobs: 2},
	}}
	svc := NewTechnicianService(repo, nil, nil, zap.NewNop())

	available, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, 2, available[0].ActiveJobs)
}
