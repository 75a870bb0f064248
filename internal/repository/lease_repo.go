package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaseRepository resolves the "active lease" of an asset with an explicit
// query: no lease return exists and (lease_end_date is null or >= asOf).
// Find methods return (nil, nil) when no row matches.
type LeaseRepository interface {
	FindActiveByAsset(ctx context.Context, assetID uuid.UUID, asOf time.Time) (*model.Lease, error)

	FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error)
	// FindLatestMatchingTx ignores returns: the most recent lease whose end
	// date is open or >= asOf. Lease-return conflict detection is separate.
	FindLatestMatchingTx(tx *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error)
	HasReturnTx(tx *gorm.DB, leaseID uuid.UUID) (bool, error)
	CreateTx(tx *gorm.DB, l *model.Lease) error
	CreateReturnTx(tx *gorm.DB, lr *model.LeaseReturn) error
}

type leaseRepo struct{ db *gorm.DB }

func NewLeaseRepository(db *gorm.DB) LeaseRepository { return &leaseRepo{db: db} }

func matchingLeaseQuery(db *gorm.DB, assetID uuid.UUID, asOf time.Time) *gorm.DB {
	return db.Model(&model.Lease{}).
		Where("asset_id = ?", assetID).
		Where("lease_end_date IS NULL OR lease_end_date >= ?", asOf).
		Order("lease_start_date DESC")
}

func firstLease(q *gorm.DB) (*model.Lease, error) {
	var l model.Lease
	err := q.First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepo) FindActiveByAsset(ctx context.Context, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return firstLease(matchingLeaseQuery(r.db.WithContext(ctx), assetID, asOf).
		Where("NOT EXISTS (SELECT 1 FROM lease_returns WHERE lease_returns.lease_id = leases.id)"))
}

func (r *leaseRepo) FindActiveByAssetTx(tx *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return firstLease(matchingLeaseQuery(tx, assetID, asOf).
		Where("NOT EXISTS (SELECT 1 FROM lease_returns WHERE lease_returns.lease_id = leases.id)"))
}

func (r *leaseRepo) FindLatestMatchingTx(tx *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return firstLease(matchingLeaseQuery(tx, assetID, asOf))
}

func (r *leaseRepo) HasReturnTx(tx *gorm.DB, leaseID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&model.LeaseReturn{}).Where("lease_id = ?", leaseID).Count(&count).Error
	return count > 0, err
}

func (r *leaseRepo) CreateTx(tx *gorm.DB, l *model.Lease) error {
	return tx.Create(l).Error
}

func (r *leaseRepo) CreateReturnTx(tx *gorm.DB, lr *model.LeaseReturn) error {
	return tx.Create(lr).Error
}
