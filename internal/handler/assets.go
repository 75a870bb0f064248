package handler

import (
	"net/http"
	"strconv"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/apierror"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type AssetsHandler struct{ svc service.AssetService }

func NewAssetsHandler(svc service.AssetService) *AssetsHandler {
	return &AssetsHandler{svc: svc}
}

// Create godoc
// @Summary Register a new asset
// @Tags assets
// @Accept json
// @Produce json
// @Param body body dto.CreateAssetRequest true "Asset"
// @Success 201 {object} dto.AssetResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/assets [post]
func (h *AssetsHandler) Create(c *gin.Context) {
	var req dto.CreateAssetRequest
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

// List godoc
// @Summary List assets with filters and pagination
// @Tags assets
// @Produce json
// @Param status query string false "Status filter"
// @Param search query string false "Tag or description search"
// @Success 200 {object} dto.AssetListResponse
// @Router /v1/assets [get]
func (h *AssetsHandler) List(c *gin.Context) {
	var filter dto.AssetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid pagination parameters"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssetsHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByTag serves the barcode-scan lookup, backed by the Redis tag cache.
func (h *AssetsHandler) GetByTag(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Tag is required"))
		return
	}
	resp, err := h.svc.GetByTag(c.Request.Context(), tag)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssetsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateAssetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), actor(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AssetsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssetsHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Restore(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History godoc
// @Summary Asset audit timeline
// @Tags assets
// @Produce json
// @Param id path string true "Asset id"
// @Success 200 {object} dto.HistoryListResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/assets/{id}/history [get]
func (h *AssetsHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	resp, err := h.svc.History(c.Request.Context(), id, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
