package handler

import (
	"net/http"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/apierror"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ExportAssets godoc
// @Summary Export the asset register as XLSX
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /v1/reports/assets.xlsx [get]
func (h *ReportsHandler) ExportAssets(c *gin.Context) {
	var filter dto.AssetFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="assets.xlsx"`)
	if err := h.svc.ExportAssetsXLSX(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers are already out; log and close.
		_ = c.Error(err)
	}
}

// DisposalCertificate godoc
// @Summary Download the disposal certificate PDF
// @Tags reports
// @Produce application/pdf
// @Param id path string true "Disposal id"
// @Success 200
// @Failure 404 {object} apierror.APIError
// @Router /v1/reports/disposals/{id}/certificate [get]
func (h *ReportsHandler) DisposalCertificate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path, err := h.svc.DisposalCertificate(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.FileAttachment(path, "disposal_certificate.pdf")
}
