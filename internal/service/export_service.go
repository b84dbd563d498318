package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/pkg/export"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
	"github.com/vijayaelectrics/repair-shop-api/pkg/storage"
)

type jobFinder interface {
	FindByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type jobCardRenderer interface {
	Render(card export.JobCard) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// JobCardDocument captures a rendered job card plus its stored location.
type JobCardDocument struct {
	Filename      string
	Data          []byte
	DownloadToken string
	ExpiresAt     time.Time
}

// ExportService renders job cards and listings into downloadable documents.
type ExportService struct {
	jobs    jobFinder
	storage fileStorage
	pdf     jobCardRenderer
	csv     csvRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(jobs jobFinder, store fileStorage, signer *storage.SignedURLSigner, logger *zap.Logger, pdf jobCardRenderer, csv csvRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pdf == nil {
		pdf = export.NewJobCardExporter("", "", "")
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	return &ExportService{jobs: jobs, storage: store, pdf: pdf, csv: csv, signer: signer, logger: logger}
}

// JobCardPDF renders the job card for the given job number, stores a copy,
// and returns the bytes plus a signed re-download token.
func (s *ExportService) JobCardPDF(ctx context.Context, jobNumber int) (*JobCardDocument, error) {
	job, err := s.jobs.FindByJobNumber(ctx, jobNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found for this number")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}

	card := export.JobCard{
		JobNumber:      job.JobNumber,
		CustomerName:   job.CustomerName,
		CustomerEmail:  job.CustomerEmail,
		NIC:            job.NIC,
		Mobile:         job.Mobile,
		TechnicianName: job.TechnicianName,
		Status:         string(job.Status),
		CreatedAt:      job.CreatedAt,
	}
	if job.Description != nil {
		card.Description = *job.Description
	}

	data, err := s.pdf.Render(card)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render job card")
	}

	filename := fmt.Sprintf("JobCard_%d.pdf", job.JobNumber)
	relPath, err := s.storage.Save(filename, data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store job card")
	}

	doc := &JobCardDocument{Filename: filename, Data: data}
	if s.signer != nil {
		token, expiresAt, err := s.signer.Generate(strconv.Itoa(job.JobNumber), relPath)
		if err != nil {
			s.logger.Warn("job card token generation failed", zap.Int("job_number", job.JobNumber), zap.Error(err))
		} else {
			doc.DownloadToken = token
			doc.ExpiresAt = expiresAt
		}
	}
	return doc, nil
}

// OpenSigned resolves a signed download token to the stored file.
func (s *ExportService) OpenSigned(token string) (*os.File, string, error) {
	if s.signer == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "downloads disabled")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	return file, relPath, nil
}

// JobsCSV renders the full job ledger as CSV, ordered by job number.
func (s *ExportService) JobsCSV(ctx context.Context) ([]byte, error) {
	jobs, err := s.jobs.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}

	headers := []string{"Job No", "Customer", "Email", "NIC", "Mobile", "Technician", "Status", "Created"}
	rows := make([]map[string]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, map[string]string{
			"Job No":     strconv.Itoa(job.JobNumber),
			"Customer":   job.CustomerName,
			"Email":      job.CustomerEmail,
			"NIC":        job.NIC,
			"Mobile":     job.Mobile,
			"Technician": job.TechnicianName,
			"Status":     string(job.Status),
			"Created":    job.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, nil
}
