package infra

// pdf.go — disposal certificate generation using go-pdf/fpdf. An A4 one-pager
// recording the asset identity, the disposal reason, date and value. The
// output file is saved to storagePath/disposal_{tag}_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateDisposalCertificatePDF writes a disposal certificate for an asset.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateDisposalCertificatePDF(asset *model.Asset, disposal *model.Disposal, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("disposal_%s_%s.pdf", asset.Tag, disposal.ID.String()[:8])
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, "Asset Disposal Certificate", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(6)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW-50, 8, value, "", 1, "L", false, 0, "")
	}

	// ── Asset identity ───────────────────────────────────────────────────────
	row("Asset tag:", asset.Tag)
	row("Description:", asset.Description)
	if asset.SerialNo != nil {
		row("Serial no:", *asset.SerialNo)
	}
	if asset.Brand != nil {
		row("Brand:", *asset.Brand)
	}
	pdf.Ln(4)

	// ── Disposal detail ──────────────────────────────────────────────────────
	row("Disposed as:", disposal.Reason)
	row("Disposal date:", disposal.DisposeDate.Format("02 Jan 2006"))
	if disposal.Value != nil {
		row("Value:", "$"+disposal.Value.StringFixed(2))
	}
	if disposal.ReasonText != nil && *disposal.ReasonText != "" {
		row("Detail:", *disposal.ReasonText)
	}
	if disposal.Notes != nil && *disposal.Notes != "" {
		row("Notes:", *disposal.Notes)
	}

	pdf.Ln(10)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(6)

	// ── Signature block ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 8, "Authorized by: _____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 8, "Date: _____________________", "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Certificate id %s", disposal.ID), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
