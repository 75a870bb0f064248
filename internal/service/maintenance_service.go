package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaintenanceNotifier enqueues a due-maintenance notification. The worker
// pool drains the queue and sends the actual mail.
type MaintenanceNotifier interface {
	NotifyMaintenanceDue(ctx context.Context, email, assetTag, title string, dueDate time.Time) error
}

type MaintenanceService interface {
	Create(ctx context.Context, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req dto.CompleteMaintenanceRequest) (*dto.MaintenanceResponse, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID, status string) ([]dto.MaintenanceResponse, error)

	CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	ListSchedules(ctx context.Context, assetID uuid.UUID) ([]dto.ScheduleResponse, error)
	DeactivateSchedule(ctx context.Context, id uuid.UUID) error

	// RunDueSchedules spawns maintenance rows for every schedule whose
	// NextRunAt has passed and advances each schedule to its next occurrence.
	// Called by the cron loop; returns the number of rows spawned.
	RunDueSchedules(ctx context.Context, asOf time.Time) (int, error)
}

type maintenanceService struct {
	maintenance repository.MaintenanceRepository
	assets      repository.AssetRepository
	notifier    MaintenanceNotifier
}

func NewMaintenanceService(
	maintenance repository.MaintenanceRepository,
	assets repository.AssetRepository,
	notifier MaintenanceNotifier,
) MaintenanceService {
	return &maintenanceService{maintenance: maintenance, assets: assets, notifier: notifier}
}

func (s *maintenanceService) Create(ctx context.Context, req dto.CreateMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	assetID, err := parseUUID(req.AssetID, "asset")
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}

	m := model.Maintenance{
		AssetID: assetID,
		Title:   req.Title,
		Details: req.Details,
		Status:  model.MaintenanceScheduled,
		DueDate: dueDate,
		Cost:    req.Cost,
	}
	if err := s.maintenance.CreateMaintenance(ctx, &m); err != nil {
		return nil, classifyDBError(err)
	}
	return maintenanceToResponse(&m), nil
}

func (s *maintenanceService) Complete(ctx context.Context, id uuid.UUID, req dto.CompleteMaintenanceRequest) (*dto.MaintenanceResponse, error) {
	m, err := s.maintenance.FindMaintenanceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("maintenance %s: %w", id, classifyDBError(err))
	}
	if m.Status == model.MaintenanceCompleted {
		return nil, fmt.Errorf("maintenance %s is already completed: %w", id, ErrInvalidState)
	}
	completedDate, err := parseDate(req.CompletedDate)
	if err != nil {
		return nil, err
	}

	m.Status = model.MaintenanceCompleted
	m.CompletedDate = &completedDate
	if req.Cost != nil {
		m.Cost = req.Cost
	}
	if err := s.maintenance.UpdateMaintenance(ctx, m); err != nil {
		return nil, classifyDBError(err)
	}
	return maintenanceToResponse(m), nil
}

func (s *maintenanceService) ListByAsset(ctx context.Context, assetID uuid.UUID, status string) ([]dto.MaintenanceResponse, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}
	rows, err := s.maintenance.ListByAsset(ctx, assetID, status)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.MaintenanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *maintenanceToResponse(&rows[i]))
	}
	return out, nil
}

func (s *maintenanceService) CreateSchedule(ctx context.Context, req dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	assetID, err := parseUUID(req.AssetID, "asset")
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}

	sched := model.MaintenanceSchedule{
		AssetID:     assetID,
		Title:       req.Title,
		Details:     req.Details,
		Frequency:   req.Frequency,
		DayOfWeek:   req.DayOfWeek,
		DayOfMonth:  req.DayOfMonth,
		MonthOfYear: req.MonthOfYear,
		NotifyEmail: req.NotifyEmail,
		Active:      true,
	}
	sched.NextRunAt = firstRunAt(&sched, startDate)

	if err := s.maintenance.CreateSchedule(ctx, &sched); err != nil {
		return nil, classifyDBError(err)
	}
	return scheduleToResponse(&sched), nil
}

func (s *maintenanceService) ListSchedules(ctx context.Context, assetID uuid.UUID) ([]dto.ScheduleResponse, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}
	rows, err := s.maintenance.ListSchedulesByAsset(ctx, assetID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.ScheduleResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *scheduleToResponse(&rows[i]))
	}
	return out, nil
}

func (s *maintenanceService) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.maintenance.FindScheduleByID(ctx, id); err != nil {
		return fmt.Errorf("schedule %s: %w", id, classifyDBError(err))
	}
	return classifyDBError(s.maintenance.DeactivateSchedule(ctx, id))
}

const dueSchedulesBatch = 100

func (s *maintenanceService) RunDueSchedules(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.maintenance.ListDueSchedules(ctx, asOf, dueSchedulesBatch)
	if err != nil {
		return 0, classifyDBError(err)
	}

	spawned := 0
	for i := range due {
		sched := &due[i]

		m := model.Maintenance{
			AssetID:    sched.AssetID,
			ScheduleID: &sched.ID,
			Title:      sched.Title,
			Details:    sched.Details,
			Status:     model.MaintenanceScheduled,
			DueDate:    sched.NextRunAt,
		}
		if err := s.maintenance.CreateMaintenance(ctx, &m); err != nil {
			log.Error().Err(err).Str("schedule_id", sched.ID.String()).Msg("failed to spawn maintenance from schedule")
			continue
		}
		spawned++

		// Advance past asOf so a long outage does not fire once per tick.
		next := NextRunAt(sched, sched.NextRunAt)
		for !next.After(asOf) {
			next = NextRunAt(sched, next)
		}
		sched.NextRunAt = next
		if err := s.maintenance.UpdateSchedule(ctx, sched); err != nil {
			return spawned, classifyDBError(err)
		}

		if s.notifier != nil && sched.NotifyEmail != nil {
			tag := sched.AssetID.String()
			if asset, err := s.assets.FindByID(ctx, sched.AssetID); err == nil {
				tag = asset.Tag
			}
			if err := s.notifier.NotifyMaintenanceDue(ctx, *sched.NotifyEmail, tag, sched.Title, m.DueDate); err != nil {
				log.Error().Err(err).Str("schedule_id", sched.ID.String()).Msg("failed to enqueue maintenance notification")
			}
		}
	}
	return spawned, nil
}

// firstRunAt aligns the start date to the schedule's recurrence fields. A
// weekly schedule starting on a Tuesday with DayOfWeek=Friday first runs on
// the following Friday; monthly and yearly schedules snap to DayOfMonth and
// MonthOfYear on or after the start date.
func firstRunAt(s *model.MaintenanceSchedule, start time.Time) time.Time {
	start = normalizeDate(start)
	switch s.Frequency {
	case model.FrequencyWeekly:
		if s.DayOfWeek == nil {
			return start
		}
		offset := (*s.DayOfWeek - int(start.Weekday()) + 7) % 7
		return start.AddDate(0, 0, offset)
	case model.FrequencyMonthly, model.FrequencyQuarterly:
		if s.DayOfMonth == nil {
			return start
		}
		candidate := dayInMonth(start.Year(), start.Month(), *s.DayOfMonth)
		if candidate.Before(start) {
			return NextRunAt(s, candidate)
		}
		return candidate
	case model.FrequencyYearly:
		month := start.Month()
		if s.MonthOfYear != nil {
			month = time.Month(*s.MonthOfYear)
		}
		day := start.Day()
		if s.DayOfMonth != nil {
			day = *s.DayOfMonth
		}
		candidate := dayInMonth(start.Year(), month, day)
		if candidate.Before(start) {
			return dayInMonth(start.Year()+1, month, day)
		}
		return candidate
	default:
		return start
	}
}

// NextRunAt computes the occurrence after the given one. Months advance by
// calendar arithmetic with the day clamped to the target month's length, so a
// monthly schedule on the 31st runs on Feb 28 (or 29) rather than skipping to
// March.
func NextRunAt(s *model.MaintenanceSchedule, after time.Time) time.Time {
	after = normalizeDate(after)
	switch s.Frequency {
	case model.FrequencyDaily:
		return after.AddDate(0, 0, 1)
	case model.FrequencyWeekly:
		return after.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		return addMonthsClamped(s, after, 1)
	case model.FrequencyQuarterly:
		return addMonthsClamped(s, after, 3)
	case model.FrequencyYearly:
		return addMonthsClamped(s, after, 12)
	default:
		return after.AddDate(0, 0, 1)
	}
}

func addMonthsClamped(s *model.MaintenanceSchedule, after time.Time, months int) time.Time {
	year, month, _ := after.Date()
	targetMonth := time.Month(int(month) + months)
	day := after.Day()
	if s.DayOfMonth != nil {
		day = *s.DayOfMonth
	}
	// time.Date normalizes the overflowing month into the year.
	anchor := time.Date(year, targetMonth, 1, 0, 0, 0, 0, time.UTC)
	return dayInMonth(anchor.Year(), anchor.Month(), day)
}

// dayInMonth clamps day to the number of days in the month.
func dayInMonth(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func maintenanceToResponse(m *model.Maintenance) *dto.MaintenanceResponse {
	resp := &dto.MaintenanceResponse{
		ID:            m.ID.String(),
		AssetID:       m.AssetID.String(),
		Title:         m.Title,
		Details:       m.Details,
		Status:        m.Status,
		DueDate:       formatDate(m.DueDate),
		CompletedDate: formatOptionalDate(m.CompletedDate),
		Cost:          m.Cost,
	}
	if m.ScheduleID != nil {
		id := m.ScheduleID.String()
		resp.ScheduleID = &id
	}
	return resp
}

func scheduleToResponse(s *model.MaintenanceSchedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:          s.ID.String(),
		AssetID:     s.AssetID.String(),
		Title:       s.Title,
		Details:     s.Details,
		Frequency:   s.Frequency,
		DayOfWeek:   s.DayOfWeek,
		DayOfMonth:  s.DayOfMonth,
		MonthOfYear: s.MonthOfYear,
		NextRunAt:   formatDate(s.NextRunAt),
		NotifyEmail: s.NotifyEmail,
		Active:      s.Active,
	}
}
