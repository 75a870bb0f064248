package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// AssetFilter is bound from the query string of GET /v1/assets.
type AssetFilter struct {
	Status     string `form:"status"`     // exact status, or "all" (default: all)
	Location   string `form:"location"`
	Site       string `form:"site"`
	Department string `form:"department"`
	Category   string `form:"category"`
	Search     string `form:"search"` // matches tag or description
	Active     string `form:"active"` // "false" = deleted only, "all" = both, default active
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type AssetListResponse struct {
	Data  []AssetResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateAssetRequest struct {
	Tag          string           `json:"tag"         validate:"required"`
	Description  string           `json:"description" validate:"required"`
	Location     string           `json:"location"`
	Department   string           `json:"department"`
	Site         string           `json:"site"`
	Category     string           `json:"category"`
	SerialNo     *string          `json:"serial_no"`
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	PurchaseDate *string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Cost         *decimal.Decimal `json:"cost"`
}

// UpdateAssetRequest covers descriptive fields only. Status, location,
// department and site change exclusively through lifecycle operations.
type UpdateAssetRequest struct {
	Tag          *string          `json:"tag"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	SerialNo     *string          `json:"serial_no"`
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	PurchaseDate *string          `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Cost         *decimal.Decimal `json:"cost"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AssetResponse struct {
	ID           string           `json:"id"`
	Tag          string           `json:"tag"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	Location     string           `json:"location"`
	Department   string           `json:"department"`
	Site         string           `json:"site"`
	Category     string           `json:"category"`
	SerialNo     *string          `json:"serial_no"`
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	PurchaseDate *string          `json:"purchase_date"`
	Cost         *decimal.Decimal `json:"cost"`
	Active       bool             `json:"active"`
	CreatedAt    string           `json:"created_at"`
}

// HistoryEntry is one audit-trail row in the asset timeline.
type HistoryEntry struct {
	ID         string `json:"id"`
	EventType  string `json:"event_type"`
	Field      string `json:"field"`
	ChangeFrom string `json:"change_from"`
	ChangeTo   string `json:"change_to"`
	ActionBy   string `json:"action_by"`
	EventDate  string `json:"event_date"`
}

type HistoryListResponse struct {
	Data  []HistoryEntry `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
