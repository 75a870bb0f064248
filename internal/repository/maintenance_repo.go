package repository

import (
	"context"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaintenanceRepository interface {
	CreateMaintenance(ctx context.Context, m *model.Maintenance) error
	FindMaintenanceByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID, status string) ([]model.Maintenance, error)
	UpdateMaintenance(ctx context.Context, m *model.Maintenance) error

	CreateSchedule(ctx context.Context, s *model.MaintenanceSchedule) error
	FindScheduleByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error)
	ListSchedulesByAsset(ctx context.Context, assetID uuid.UUID) ([]model.MaintenanceSchedule, error)
	UpdateSchedule(ctx context.Context, s *model.MaintenanceSchedule) error
	DeactivateSchedule(ctx context.Context, id uuid.UUID) error

	// ListDueSchedules feeds the cron tick: active schedules whose next_run_at
	// is at or before asOf, oldest first, capped at limit.
	ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]model.MaintenanceSchedule, error)
}

type maintenanceRepo struct{ db *gorm.DB }

func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepository { return &maintenanceRepo{db: db} }

func (r *maintenanceRepo) CreateMaintenance(ctx context.Context, m *model.Maintenance) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *maintenanceRepo) FindMaintenanceByID(ctx context.Context, id uuid.UUID) (*model.Maintenance, error) {
	var m model.Maintenance
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, status string) ([]model.Maintenance, error) {
	var items []model.Maintenance
	q := r.db.WithContext(ctx).Where("asset_id = ?", assetID)
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("due_date ASC").Find(&items).Error
	return items, err
}

func (r *maintenanceRepo) UpdateMaintenance(ctx context.Context, m *model.Maintenance) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *maintenanceRepo) CreateSchedule(ctx context.Context, s *model.MaintenanceSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *maintenanceRepo) FindScheduleByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceSchedule, error) {
	var s model.MaintenanceSchedule
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *maintenanceRepo) ListSchedulesByAsset(ctx context.Context, assetID uuid.UUID) ([]model.MaintenanceSchedule, error) {
	var schedules []model.MaintenanceSchedule
	err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).
		Order("next_run_at ASC").Find(&schedules).Error
	return schedules, err
}

func (r *maintenanceRepo) UpdateSchedule(ctx context.Context, s *model.MaintenanceSchedule) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *maintenanceRepo) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MaintenanceSchedule{}).
		Where("id = ?", id).Update("active", false).Error
}

func (r *maintenanceRepo) ListDueSchedules(ctx context.Context, asOf time.Time, limit int) ([]model.MaintenanceSchedule, error) {
	var schedules []model.MaintenanceSchedule
	err := r.db.WithContext(ctx).
		Where("active = true AND next_run_at <= ?", asOf).
		Order("next_run_at ASC").
		Limit(limit).
		Find(&schedules).Error
	return schedules, err
}
