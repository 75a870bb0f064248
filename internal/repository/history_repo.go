package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository is append-only from the engine's point of view. Entries
// are never mutated or deleted here.
type HistoryRepository interface {
	ListByAsset(ctx context.Context, assetID uuid.UUID, page, limit int) ([]model.HistoryLog, int64, error)
	AppendTx(tx *gorm.DB, entries []model.HistoryLog) error
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, page, limit int) ([]model.HistoryLog, int64, error) {
	var entries []model.HistoryLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.HistoryLog{}).Where("asset_id = ?", assetID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Order("event_date DESC, created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *historyRepo) AppendTx(tx *gorm.DB, entries []model.HistoryLog) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}
