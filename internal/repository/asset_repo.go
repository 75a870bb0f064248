package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetRepository defines the data access contract for assets.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type AssetRepository interface {
	Create(ctx context.Context, a *model.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	FindByTag(ctx context.Context, tag string) (*model.Asset, error)
	List(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, int64, error)
	ListForExport(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, error)
	Update(ctx context.Context, a *model.Asset) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Asset, error)
	UpdateTx(tx *gorm.DB, a *model.Asset) error
	UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	// SetStatusTx writes the status unconditionally.
	SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	// SetStatusIfTx writes the status only when the current status equals from.
	// Returns false when the guard did not match (zero rows affected).
	SetStatusIfTx(tx *gorm.DB, id uuid.UUID, from, to string) (bool, error)
	// SetStatusUnlessTerminalTx writes the status only when the current status
	// is not a disposal outcome. Returns false when the guard did not match.
	SetStatusUnlessTerminalTx(tx *gorm.DB, id uuid.UUID, to string) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) AssetRepository { return &assetRepo{db: db} }

func (r *assetRepo) DB() *gorm.DB { return r.db }

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assetRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) FindByTag(ctx context.Context, tag string) (*model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).Where("tag = ? AND active = true", tag).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func applyAssetFilter(q *gorm.DB, filter dto.AssetFilter) *gorm.DB {
	// Active filter: "false" = deleted, "all" = both, anything else = active (default)
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if filter.Site != "" {
		q = q.Where("site = ?", filter.Site)
	}
	if filter.Department != "" {
		q = q.Where("department = ?", filter.Department)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("tag ILIKE ? OR description ILIKE ?", like, like)
	}
	return q
}

func (r *assetRepo) List(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, int64, error) {
	var assets []model.Asset
	var total int64

	q := applyAssetFilter(r.db.WithContext(ctx).Model(&model.Asset{}), filter)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("tag ASC").Limit(filter.Limit).Offset(offset).Find(&assets).Error
	return assets, total, err
}

// ListForExport returns the full filtered set, unpaginated, for report builds.
func (r *assetRepo) ListForExport(ctx context.Context, filter dto.AssetFilter) ([]model.Asset, error) {
	var assets []model.Asset
	q := applyAssetFilter(r.db.WithContext(ctx).Model(&model.Asset{}), filter)
	err := q.Order("tag ASC").Find(&assets).Error
	return assets, err
}

func (r *assetRepo) Update(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *assetRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).Update("active", false).Error
}

func (r *assetRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).Update("active", true).Error
}

func (r *assetRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	var a model.Asset
	err := tx.First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) UpdateTx(tx *gorm.DB, a *model.Asset) error {
	return tx.Save(a).Error
}

func (r *assetRepo) UpdateFieldsTx(tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return tx.Model(&model.Asset{}).Where("id = ?", id).Updates(fields).Error
}

func (r *assetRepo) SetStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Asset{}).Where("id = ?", id).Update("status", status).Error
}

func (r *assetRepo) SetStatusIfTx(tx *gorm.DB, id uuid.UUID, from, to string) (bool, error) {
	res := tx.Model(&model.Asset{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *assetRepo) SetStatusUnlessTerminalTx(tx *gorm.DB, id uuid.UUID, to string) (bool, error) {
	res := tx.Model(&model.Asset{}).
		Where("id = ? AND status NOT IN ?", id, model.DisposeReasons).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
