package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
	"github.com/vijayaelectrics/repair-shop-api/pkg/storage"
)

type jobFinderStub struct {
	job     *models.Job
	jobErr  error
	jobs    []models.Job
	listErr error
}

func (s *jobFinderStub) FindByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	return s.job, s.jobErr
}

func (s *jobFinderStub) List(ctx context.Context) ([]models.Job, error) {
	return s.jobs, s.listErr
}

func newExportFixture(t *testing.T, finder *jobFinderStub) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(finder, store, signer, zap.NewNop(), nil, nil)
}

func sampleJob() *models.Job {
	return &models.Job{
		ID:             "job-1",
		JobNumber:      1001,
		CustomerName:   "Nimal Perera",
		CustomerEmail:  "nimal@example.com",
		NIC:            "912345678V",
		Mobile:         "0712345678",
		TechnicianID:   "tech-1",
		TechnicianName: "Sunil",
		Status:         models.JobStatusPending,
		CreatedAt:      time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestExportServiceJobCardPDF(t *testing.T) {
	svc := newExportFixture(t, &jobFinderStub{job: sampleJob()})

	doc, err := svc.JobCardPDF(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "JobCard_1001.pdf", doc.Filename)
	require.NotEmpty(t, doc.Data)
	assert.Equal(t, "%PDF", string(doc.Data[:4]))
	assert.NotEmpty(t, doc.DownloadToken)
	assert.True(t, doc.ExpiresAt.After(time.Now()))
}

func TestExportServiceJobCardPDFNotFound(t *testing.T) {
	svc := newExportFixture(t, &jobFinderStub{jobErr: sql.ErrNoRows})

	_, err := svc.JobCardPDF(context.Background(), 4242)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceOpenSignedRoundTrip(t *testing.T) {
	svc := newExportFixture(t, &jobFinderStub{job: sampleJob()})

	doc, err := svc.JobCardPDF(context.Background(), 1001)
	require.NoError(t, err)

	file, relPath, err := svc.OpenSigned(doc.DownloadToken)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "JobCard_1001.pdf", relPath)
}

func TestExportServiceOpenSignedRejectsTamperedToken(t *testing.T) {
	svc := newExportFixture(t, &jobFinderStub{job: sampleJob()})

	doc, err := svc.JobCardPDF(context.Background(), 1001)
	require.NoError(t, err)

	_, _, err = svc.OpenSigned(doc.DownloadToken + "x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceJobsCSV(t *testing.T) {
	finder := &jobFinderStub{jobs: []models.Job{*sampleJob()}}
	svc := newExportFixture(t, finder)

	data, err := svc.JobsCSV(context.Background())
	require.NoError(t, err)
	csv := string(data)
	assert.Contains(t, csv, "Job No")
	assert.Contains(t, csv, "1001")
	assert.Contains(t, csv, "Nimal Perera")
	assert.Contains(t, csv, "Pending")
}
