package handler

import (
	"net/http"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// LifecycleHandler exposes the status-transition operations. Each endpoint is
// all-or-nothing across the requested assets.
type LifecycleHandler struct{ svc service.LifecycleService }

func NewLifecycleHandler(svc service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{svc: svc}
}

// Checkout godoc
// @Summary Check assets out to an employee
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.CheckoutRequest true "Checkout"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/lifecycle/checkout [post]
func (h *LifecycleHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Checkout(c.Request.Context(), actor(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkin godoc
// @Summary Check assets back in
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.CheckinRequest true "Check-in"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/lifecycle/checkin [post]
func (h *LifecycleHandler) Checkin(c *gin.Context) {
	var req dto.CheckinRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Checkin(c.Request.Context(), actor(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move godoc
// @Summary Move an asset between locations, departments or employees
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.MoveRequest true "Move"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/lifecycle/move [post]
func (h *LifecycleHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Move(c.Request.Context(), actor(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reserve godoc
// @Summary Reserve an asset for an employee or department
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.ReserveRequest true "Reservation"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/lifecycle/reserve [post]
func (h *LifecycleHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reserve(c.Request.Context(), actor(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteReservation godoc
// @Summary Remove a reservation
// @Tags lifecycle
// @Produce json
// @Param id path string true "Reservation id"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/reservations/{id} [delete]
func (h *LifecycleHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteReservation(c.Request.Context(), actor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListReservations lists reservations for an asset.
func (h *LifecycleHandler) ListReservations(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListReservations(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMoves lists move records for an asset.
func (h *LifecycleHandler) ListMoves(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListMoves(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDisposals lists disposal records for an asset.
func (h *LifecycleHandler) ListDisposals(c *gin.Context) {
	assetID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListDisposals(c.Request.Context(), assetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lease godoc
// @Summary Lease an asset to an external party
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.LeaseRequest true "Lease"
// @Success 201 {object} dto.LeaseResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/lifecycle/lease [post]
func (h *LifecycleHandler) Lease(c *gin.Context) {
	var req dto.LeaseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Lease(c.Request.Context(), actor(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LeaseReturn godoc
// @Summary Return leased assets
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.LeaseReturnRequest true "Lease return"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/lifecycle/lease-return [post]
func (h *LifecycleHandler) LeaseReturn(c *gin.Context) {
	var req dto.LeaseReturnRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.LeaseReturn(c.Request.Context(), actor(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dispose godoc
// @Summary Dispose assets (terminal)
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param body body dto.DisposeRequest true "Disposal"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/lifecycle/dispose [post]
func (h *LifecycleHandler) Dispose(c *gin.Context) {
	var req dto.DisposeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Dispose(c.Request.Context(), actor(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
