package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Reservation, error)

	CreateTx(tx *gorm.DB, res *model.Reservation) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	CountByAssetTx(tx *gorm.DB, assetID uuid.UUID) (int64, error)
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) ReservationRepository { return &reservationRepo{db: db} }

func (r *reservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("reservation_date ASC").Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) CreateTx(tx *gorm.DB, res *model.Reservation) error {
	return tx.Create(res).Error
}

func (r *reservationRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Reservation{}, "id = ?", id).Error
}

func (r *reservationRepo) CountByAssetTx(tx *gorm.DB, assetID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.Reservation{}).Where("asset_id = ?", assetID).Count(&count).Error
	return count, err
}
