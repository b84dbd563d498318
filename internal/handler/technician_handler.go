package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vijayaelectrics/repair-shop-api/internal/service"
	appErrors "github.com/vijayaelectrics/repair-shop-api/pkg/errors"
	"github.com/vijayaelectrics/repair-shop-api/pkg/response"
)

// TechnicianHandler wires technician services to HTTP routes.
type TechnicianHandler struct {
	technicians *service.TechnicianService
}

// NewTechnicianHandler constructs a new TechnicianHandler.
func NewTechnicianHandler(technicians *service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians}
}

// List godoc
// @Summary List all technicians
// @Tags Technicians
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /technicians [get]
func (h *TechnicianHandler) List(c *gin.Context) {
	technicians, err := h.technicians.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, technicians, nil)
}

// ListAvailable godoc
// @Summary List active technicians with spare capacity
// @Tags Technicians
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /technicians/available [get]
func (h *TechnicianHandler) ListAvailable(c *gin.Context) {
	available, err := h.technicians.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, available, nil)
}

// Get godoc
// @Summary Get a technician by id
// @Tags Technicians
// @Produce json
// @Param id path string true "Technician ID"
// @Success 200 {object} response.Envelope
// @Router /technicians/{id} [get]
func (h *TechnicianHandler) Get(c *gin.Context) {
	technician, err := h.technicians.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, technician, nil)
}

// Create godoc
// @Summary Register a technician
// @Tags Technicians
// @Accept json
// @Produce json
// @Param payload body service.CreateTechnicianRequest true "Technician payload"
// @Success 201 {object} response.Envelope
// @Router /technicians [post]
func (h *TechnicianHandler) Create(c *gin.Context) {
	var req service.CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid technician payload"))
		return
	}
	technician, err := h.technicians.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, technician)
}

// Update godoc
// @Summary Update a technician
// @Tags Technicians
// @Accept json
// @Produce json
// @Param id path string true "Technician ID"
// @Param payload body service.UpdateTechnicianRequest true "Technician payload"
// @Success 200 {object} response.Envelope
// @Router /technicians/{id} [put]
func (h *TechnicianHandler) Update(c *gin.Context) {
	var req service.UpdateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid technician payload"))
		return
	}
	technician, err := h.technicians.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, technician, nil)
}

// Delete godoc
// @Summary Delete a technician
// @Tags Technicians
// @Param id path string true "Technician ID"
// @Success 204
// @Router /technicians/{id} [delete]
func (h *TechnicianHandler) Delete(c *gin.Context) {
	if err := h.technicians.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
