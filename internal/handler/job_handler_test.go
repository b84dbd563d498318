package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vijayaelectrics/repair-shop-api/internal/models"
	"github.com/vijayaelectrics/repair-shop-api/internal/repository"
	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	"github.com/vijayaelectrics/repair-shop-api/pkg/response"
)

const handlerTestTechnicianID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

type jobRepoMock struct {
	createErr error
	deleted   *models.Job
	deleteErr error
	byNumber  *models.Job
	jobs      []models.Job
}

func (m *jobRepoMock) CreateWithAdmission(ctx context.Context, job *models.Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	job.ID = "job-1"
	job.JobNumber = models.FirstJobNumber
	job.Status = models.JobStatusPending
	job.TechnicianName = "Sunil"
	return nil
}

func (m *jobRepoMock) UpdateStatus(ctx context.Context, jobNumber int, newStatus models.JobStatus) (*models.Job, error) {
	return &models.Job{JobNumber: jobNumber, Status: newStatus}, nil
}

func (m *jobRepoMock) DeleteByID(ctx context.Context, id string) (*models.Job, error) {
	return m.deleted, m.deleteErr
}

func (m *jobRepoMock) DeleteByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	return m.deleted, m.deleteErr
}

func (m *jobRepoMock) FindByID(ctx context.Context, id string) (*models.Job, error) {
	return m.byNumber, nil
}

func (m *jobRepoMock) FindByJobNumber(ctx context.Context, jobNumber int) (*models.Job, error) {
	return m.byNumber, nil
}

func (m *jobRepoMock) FindByNIC(ctx context.Context, nic string) (*models.Job, error) {
	return m.byNumber, nil
}

func (m *jobRepoMock) List(ctx context.Context) ([]models.Job, error) {
	return m.jobs, nil
}

func (m *jobRepoMock) UpdateCustomer(ctx context.Context, job *models.Job) error {
	return nil
}

func newJobHandler(repo *jobRepoMock) *JobHandler {
	svc := service.NewJobService(repo, nil, nil, nil, nil, zap.NewNop())
	return NewJobHandler(svc)
}

func jsonRequest(t *testing.T, c *gin.Context, method, target string, payload interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}

func TestJobHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(t, c, http.MethodPost, "/jobs", service.CreateJobRequest{
		TechnicianID: handlerTestTechnicianID,
		Name:         "Nimal Perera",
		Email:        "nimal@example.com",
		NIC:          "912345678V",
		Mobile:       "0712345678",
	})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, models.FirstJobNumber, data["job_number"])
}

func TestJobHandlerCreateCapacityExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{createErr: repository.ErrCapacityExceeded})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(t, c, http.MethodPost, "/jobs", service.CreateJobRequest{
		TechnicianID: handlerTestTechnicianID,
		Name:         "Nimal Perera",
		Email:        "nimal@example.com",
		NIC:          "912345678V",
		Mobile:       "0712345678",
	})

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "CAPACITY_EXCEEDED", envelope.Error.Code)
}

func TestJobHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/jobs", bytes.NewReader([]byte(`not-json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlerGetRejectsNonNumeric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/jobs/abc", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "jobNo", Value: "abc"}}

	handler.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlerSearchRejectsBothIdentifiers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{byNumber: &models.Job{JobNumber: 1001}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/jobs/search?jobNo=1001&nic=912345678V", nil)
	c.Request = req

	handler.Search(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandlerSearchByNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{byNumber: &models.Job{JobNumber: 1001, CustomerName: "Nimal Perera"}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/jobs/search?jobNo=1001", nil)
	c.Request = req

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1001, data["job_number"])
}

func TestJobHandlerUpdateStatusRejectsUnknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(t, c, http.MethodPut, "/jobs/1001/status", service.UpdateJobStatusRequest{Status: "Done"})
	c.Params = gin.Params{{Key: "jobNo", Value: "1001"}}

	handler.UpdateStatus(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_STATUS", envelope.Error.Code)
}

func TestJobHandlerDeleteByJobNumber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newJobHandler(&jobRepoMock{deleted: &models.Job{ID: "job-1", JobNumber: 1001}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/jobs/1001", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "jobNo", Value: "1001"}}

	handler.DeleteByJobNumber(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
