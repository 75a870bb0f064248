package handler

import (
	"net/http"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct{ svc service.MaintenanceService }

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req dto.CreateMaintenanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaintenanceHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CompleteMaintenanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Complete(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByAsset lists maintenance for an asset, optionally filtered by status.
func (h *MaintenanceHandler) ListByAsset(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListByAsset(c.Request.Context(), assetID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Recurring schedules ──────────────────────────────────────────────────────

func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListSchedules(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MaintenanceHandler) DeactivateSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivateSchedule(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
