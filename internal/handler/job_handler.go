package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
	"github.com/vijayaelectrics/repair-shop-api/pkg/response"
)

// JobHandler wires job card services to HTTP routes.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler constructs a new JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Create godoc
// @Summary Create a job card
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.CreateJobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}
	job, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"job_number": job.JobNumber, "job": job})
}

// List godoc
// @Summary List all jobs ordered by job number
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// Get godoc
// @Summary Get a job by number
// @Tags Jobs
// @Produce json
// @Param jobNo path int true "Job number"
// @Success 200 {object} response.Envelope
// @Router /jobs/{jobNo} [get]
func (h *JobHandler) Get(c *gin.Context) {
	jobNumber, ok := parseJobNumber(c)
	if !ok {
		return
	}
	job, err := h.jobs.GetByJobNumber(c.Request.Context(), jobNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Search godoc
// @Summary Search a job by number or NIC
// @Tags Jobs
// @Produce json
// @Param jobNo query int false "Job number"
// @Param nic query string false "Customer NIC"
// @Success 200 {object} response.Envelope
// @Router /jobs/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	var jobNumber *int
	if raw := strings.TrimSpace(c.Query("jobNo")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "job number must be numeric"))
			return
		}
		jobNumber = &parsed
	}

	job, err := h.jobs.Search(c.Request.Context(), jobNumber, c.Query("nic"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// UpdateStatus godoc
// @Summary Update a job's status
// @Tags Jobs
// @Accept json
// @Produce json
// @Param jobNo path int true "Job number"
// @Param payload body service.UpdateJobStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{jobNo}/status [put]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	jobNumber, ok := parseJobNumber(c)
	if !ok {
		return
	}
	var req service.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	job, err := h.jobs.SetStatus(c.Request.Context(), jobNumber, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// UpdateByID godoc
// @Summary Update customer fields of a job (customer-facing)
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body service.UpdateCustomerJobRequest true "Customer payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/id/{id} [put]
func (h *JobHandler) UpdateByID(c *gin.Context) {
	var req service.UpdateCustomerJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid job payload"))
		return
	}
	job, err := h.jobs.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// DeleteByID godoc
// @Summary Delete a job by internal id (customer-facing)
// @Tags Jobs
// @Param id path string true "Job ID"
// @Success 204
// @Router /jobs/id/{id} [delete]
func (h *JobHandler) DeleteByID(c *gin.Context) {
	if err := h.jobs.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteByJobNumber godoc
// @Summary Delete a job by number (admin)
// @Tags Jobs
// @Param jobNo path int true "Job number"
// @Success 204
// @Router /jobs/{jobNo} [delete]
func (h *JobHandler) DeleteByJobNumber(c *gin.Context) {
	jobNumber, ok := parseJobNumber(c)
	if !ok {
		return
	}
	if err := h.jobs.DeleteByJobNumber(c.Request.Context(), jobNumber); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseJobNumber(c *gin.Context) (int, bool) {
	jobNumber, err := strconv.Atoi(c.Param("jobNo"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "job number must be numeric"))
		return 0, false
	}
	return jobNumber, true
}
