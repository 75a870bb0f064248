package dto

import "github.com/shopspring/decimal"

type CreateMaintenanceRequest struct {
	AssetID string           `json:"asset_id" validate:"required,uuid"`
	Title   string           `json:"title"    validate:"required"`
	Details *string          `json:"details"`
	DueDate string           `json:"due_date" validate:"required,datetime=2006-01-02"`
	Cost    *decimal.Decimal `json:"cost"`
}

type CompleteMaintenanceRequest struct {
	CompletedDate string           `json:"completed_date" validate:"required,datetime=2006-01-02"`
	Cost          *decimal.Decimal `json:"cost"`
}

type MaintenanceResponse struct {
	ID            string           `json:"id"`
	AssetID       string           `json:"asset_id"`
	ScheduleID    *string          `json:"schedule_id"`
	Title         string           `json:"title"`
	Details       *string          `json:"details"`
	Status        string           `json:"status"`
	DueDate       string           `json:"due_date"`
	CompletedDate *string          `json:"completed_date"`
	Cost          *decimal.Decimal `json:"cost"`
}

// ─── Recurring schedules ─────────────────────────────────────────────────────

type CreateScheduleRequest struct {
	AssetID   string  `json:"asset_id"  validate:"required,uuid"`
	Title     string  `json:"title"     validate:"required"`
	Details   *string `json:"details"`
	Frequency string  `json:"frequency" validate:"required,oneof=daily weekly monthly quarterly yearly"`
	// DayOfWeek: 0=Sunday..6=Saturday (weekly).
	DayOfWeek *int `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	// DayOfMonth: 1..31 (monthly/quarterly/yearly); clamped to month length.
	DayOfMonth *int `json:"day_of_month" validate:"omitempty,min=1,max=31"`
	// MonthOfYear: 1..12 (yearly).
	MonthOfYear *int    `json:"month_of_year" validate:"omitempty,min=1,max=12"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	NotifyEmail *string `json:"notify_email" validate:"omitempty,email"`
}

type ScheduleResponse struct {
	ID          string  `json:"id"`
	AssetID     string  `json:"asset_id"`
	Title       string  `json:"title"`
	Details     *string `json:"details"`
	Frequency   string  `json:"frequency"`
	DayOfWeek   *int    `json:"day_of_week"`
	DayOfMonth  *int    `json:"day_of_month"`
	MonthOfYear *int    `json:"month_of_year"`
	NextRunAt   string  `json:"next_run_at"`
	NotifyEmail *string `json:"notify_email"`
	Active      bool    `json:"active"`
}
