package service_test

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAssetsXLSX(t *testing.T) {
	assets := newStubAssetRepo()
	disposals := &stubDisposalRepo{}

	cost := decimal.NewFromFloat(1299.50)
	purchase := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	assets.add(&model.Asset{
		Tag:          "LT-0100",
		Description:  "MacBook Air",
		Location:     "HQ",
		Category:     "Laptops",
		Cost:         &cost,
		PurchaseDate: &purchase,
	})

	svc := service.NewReportService(assets, disposals, t.TempDir())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportAssetsXLSX(context.Background(), dto.AssetFilter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Assets", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tag", header)

	tag, err := f.GetCellValue("Assets", "A2")
	require.NoError(t, err)
	assert.Equal(t, "LT-0100", tag)

	date, err := f.GetCellValue("Assets", "K2")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", date)
}

func TestDisposalCertificateWritesPDF(t *testing.T) {
	assets := newStubAssetRepo()
	disposals := &stubDisposalRepo{}

	asset := assets.add(&model.Asset{Tag: "LT-0101", Description: "Old printer"})
	value := decimal.NewFromInt(40)
	disposal := &model.Disposal{
		AssetID:     asset.ID,
		DisposeDate: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		Reason:      model.StatusSold,
		Value:       &value,
	}
	require.NoError(t, disposals.CreateTx(nil, disposal))

	svc := service.NewReportService(assets, disposals, t.TempDir())

	path, err := svc.DisposalCertificate(context.Background(), disposal.ID)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDisposalCertificateUnknownDisposal(t *testing.T) {
	svc := service.NewReportService(newStubAssetRepo(), &stubDisposalRepo{}, t.TempDir())

	_, err := svc.DisposalCertificate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
