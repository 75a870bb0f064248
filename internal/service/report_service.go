package service

import (
	"context"
	"fmt"
	"io"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/infra"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportAssetsXLSX streams the asset register, honoring the same filter
	// as the list endpoint, as an XLSX workbook.
	ExportAssetsXLSX(ctx context.Context, filter dto.AssetFilter, w io.Writer) error
	// DisposalCertificate renders the certificate PDF for a disposal record
	// and returns the path of the generated file.
	DisposalCertificate(ctx context.Context, disposalID uuid.UUID) (string, error)
}

type reportService struct {
	assets      repository.AssetRepository
	disposals   repository.DisposalRepository
	storagePath string
}

func NewReportService(assets repository.AssetRepository, disposals repository.DisposalRepository, storagePath string) ReportService {
	return &reportService{assets: assets, disposals: disposals, storagePath: storagePath}
}

var assetRegisterColumns = []string{
	"Tag", "Description", "Status", "Location", "Department", "Site",
	"Category", "Serial No", "Brand", "Model", "Purchase Date", "Cost",
}

func (s *reportService) ExportAssetsXLSX(ctx context.Context, filter dto.AssetFilter, w io.Writer) error {
	assets, err := s.assets.ListForExport(ctx, filter)
	if err != nil {
		return classifyDBError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assets"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range assetRegisterColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for row := range assets {
		a := &assets[row]
		values := []interface{}{
			a.Tag, a.Description, a.Status, a.Location, a.Department, a.Site,
			a.Category, deref(a.SerialNo), deref(a.Brand), deref(a.ModelName),
			"", "",
		}
		if a.PurchaseDate != nil {
			values[10] = formatDate(*a.PurchaseDate)
		}
		if a.Cost != nil {
			cost, _ := a.Cost.Float64()
			values[11] = cost
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx row %d: %w", row+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func (s *reportService) DisposalCertificate(ctx context.Context, disposalID uuid.UUID) (string, error) {
	disposal, err := s.disposals.FindByID(ctx, disposalID)
	if err != nil {
		return "", fmt.Errorf("disposal %s: %w", disposalID, classifyDBError(err))
	}
	asset, err := s.assets.FindByID(ctx, disposal.AssetID)
	if err != nil {
		return "", fmt.Errorf("asset %s: %w", disposal.AssetID, classifyDBError(err))
	}
	path, err := infra.GenerateDisposalCertificatePDF(asset, disposal, s.storagePath)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, ErrPersistence)
	}
	return path, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
