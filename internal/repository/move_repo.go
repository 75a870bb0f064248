package repository

import (
	"context"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoveRepository persists immutable move audit records. There is no update or
// delete — moves only accumulate.
type MoveRepository interface {
	ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Move, error)
	CreateTx(tx *gorm.DB, m *model.Move) error
}

type moveRepo struct{ db *gorm.DB }

func NewMoveRepository(db *gorm.DB) MoveRepository { return &moveRepo{db: db} }

func (r *moveRepo) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]model.Move, error) {
	var moves []model.Move
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("move_date DESC").Find(&moves).Error
	return moves, err
}

func (r *moveRepo) CreateTx(tx *gorm.DB, m *model.Move) error {
	return tx.Create(m).Error
}
