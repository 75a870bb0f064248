package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisposalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Disposal, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Disposal, error)
	CreateTx(tx *gorm.DB, d *model.Disposal) error
}

type disposalRepo struct{ db *gorm.DB }

func NewDisposalRepository(db *gorm.DB) DisposalRepository { return &disposalRepo{db: db} }

func (r *disposalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Disposal, error) {
	var d model.Disposal
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *disposalRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Disposal, error) {
	var disposals []model.Disposal
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("dispose_date DESC").Find(&disposals).Error
	return disposals, err
}

func (r *disposalRepo) CreateTx(tx *gorm.DB, d *model.Disposal) error {
	return tx.Create(d).Error
}
