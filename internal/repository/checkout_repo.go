package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutRepository resolves "active" checkouts with an explicit query —
// a checkout is active while it has an employee and no checkin row closes it.
type CheckoutRepository interface {
	FindActiveByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Checkout, error)

	// Tx variants for use inside lifecycle transactions.
	FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID) ([]model.Checkout, error)
	CreateTx(tx *gorm.DB, c *model.Checkout) error
	UpdateTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	CreateCheckinTx(tx *gorm.DB, c *model.Checkin) error
}

type checkoutRepo struct{ db *gorm.DB }

func NewCheckoutRepository(db *gorm.DB) CheckoutRepository { return &checkoutRepo{db: db} }

// activeCheckoutQuery: no associated checkin and a non-null employee, most
// recent checkout first.
func activeCheckoutQuery(db *gorm.DB, assetID uuid.UUID) *gorm.DB {
	return db.Model(&model.Checkout{}).
		Where("asset_id = ?", assetID).
		Where("employee_id IS NOT NULL").
		Where("NOT EXISTS (SELECT 1 FROM checkins WHERE checkins.checkout_id = checkouts.id)").
		Order("checkout_date DESC")
}

func (r *checkoutRepo) FindActiveByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Checkout, error) {
	var checkouts []model.Checkout
	err := activeCheckoutQuery(r.db.WithContext(ctx), assetID).Preload("Employee").Find(&checkouts).Error
	return checkouts, err
}

func (r *checkoutRepo) FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID) ([]model.Checkout, error) {
	var checkouts []model.Checkout
	err := activeCheckoutQuery(tx, assetID).Preload("Employee").Find(&checkouts).Error
	return checkouts, err
}

func (r *checkoutRepo) CreateTx(tx *gorm.DB, c *model.Checkout) error {
	return tx.Create(c).Error
}

func (r *checkoutRepo) UpdateTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return tx.Model(&model.Checkout{}).Where("id = ?", id).Updates(fields).Error
}

func (r *checkoutRepo) CreateCheckinTx(tx *gorm.DB, c *model.Checkin) error {
	return tx.Create(c).Error
}
