package dto

import "github.com/shopspring/decimal"

// Lifecycle request DTOs. Dates travel as YYYY-MM-DD strings and are
// normalized to UTC midnight by the engine.

// AssetFieldUpdates carries optional per-asset placement updates accepted by
// checkout / check-in / lease-return. Only fields that actually differ from
// the current value produce history rows.
type AssetFieldUpdates struct {
	Location   *string `json:"location"`
	Department *string `json:"department"`
	Site       *string `json:"site"`
}

// ─── Checkout / Check-in ─────────────────────────────────────────────────────

type CheckoutRequest struct {
	AssetIDs           []string `json:"asset_ids"     validate:"required,min=1,dive,uuid"`
	EmployeeID         string   `json:"employee_id"   validate:"required,uuid"`
	CheckoutDate       string   `json:"checkout_date" validate:"required,datetime=2006-01-02"`
	ExpectedReturnDate *string  `json:"expected_return_date" validate:"omitempty,datetime=2006-01-02"`
	Notes              *string  `json:"notes"`
	// Updates is keyed by asset id.
	Updates map[string]AssetFieldUpdates `json:"updates"`
}

type CheckinAssetUpdate struct {
	ReturnLocation *string `json:"return_location"`
	Condition      *string `json:"condition"`
	Notes          *string `json:"notes"`
}

type CheckinRequest struct {
	AssetIDs    []string `json:"asset_ids"    validate:"required,min=1,dive,uuid"`
	CheckinDate string   `json:"checkin_date" validate:"required,datetime=2006-01-02"`
	// Updates is keyed by asset id.
	Updates map[string]CheckinAssetUpdate `json:"updates"`
}

// ─── Move ────────────────────────────────────────────────────────────────────

type MoveRequest struct {
	AssetID    string  `json:"asset_id"  validate:"required,uuid"`
	MoveType   string  `json:"move_type" validate:"required,oneof=LocationTransfer EmployeeAssignment DepartmentTransfer"`
	MoveDate   string  `json:"move_date" validate:"required,datetime=2006-01-02"`
	Location   *string `json:"location"`
	Department *string `json:"department"`
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
	Notes      *string `json:"notes"`
}

// ─── Reserve ─────────────────────────────────────────────────────────────────

type ReserveRequest struct {
	AssetID         string  `json:"asset_id"         validate:"required,uuid"`
	ReservationType string  `json:"reservation_type" validate:"required,oneof=Employee Department"`
	ReservationDate string  `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	EmployeeID      *string `json:"employee_id" validate:"omitempty,uuid"`
	Department      *string `json:"department"`
	Notes           *string `json:"notes"`
}

type ReservationResponse struct {
	ID              string  `json:"id"`
	AssetID         string  `json:"asset_id"`
	ReservationType string  `json:"reservation_type"`
	EmployeeID      *string `json:"employee_id"`
	Department      *string `json:"department"`
	ReservationDate string  `json:"reservation_date"`
	Notes           *string `json:"notes"`
}

type MoveResponse struct {
	ID        string  `json:"id"`
	AssetID   string  `json:"asset_id"`
	MoveType  string  `json:"move_type"`
	MoveDate  string  `json:"move_date"`
	FromValue string  `json:"from_value"`
	ToValue   string  `json:"to_value"`
	Notes     *string `json:"notes"`
}

type DisposalResponse struct {
	ID          string           `json:"id"`
	AssetID     string           `json:"asset_id"`
	DisposeDate string           `json:"dispose_date"`
	Reason      string           `json:"reason"`
	ReasonText  *string          `json:"reason_text"`
	Value       *decimal.Decimal `json:"value"`
	Notes       *string          `json:"notes"`
}

// ─── Lease / Lease return ───────────────────────────────────────────────────

type LeaseRequest struct {
	AssetID        string           `json:"asset_id"         validate:"required,uuid"`
	Lessee         string           `json:"lessee"           validate:"required"`
	LeaseStartDate string           `json:"lease_start_date" validate:"required,datetime=2006-01-02"`
	LeaseEndDate   *string          `json:"lease_end_date"   validate:"omitempty,datetime=2006-01-02"`
	Rate           *decimal.Decimal `json:"rate"`
	Notes          *string          `json:"notes"`
}

type LeaseResponse struct {
	ID             string           `json:"id"`
	AssetID        string           `json:"asset_id"`
	Lessee         string           `json:"lessee"`
	LeaseStartDate string           `json:"lease_start_date"`
	LeaseEndDate   *string          `json:"lease_end_date"`
	Rate           *decimal.Decimal `json:"rate"`
}

type LeaseReturnRequest struct {
	AssetIDs   []string `json:"asset_ids"   validate:"required,min=1,dive,uuid"`
	ReturnDate string   `json:"return_date" validate:"required,datetime=2006-01-02"`
	Notes      *string  `json:"notes"`
	// Updates is keyed by asset id.
	Updates map[string]AssetFieldUpdates `json:"updates"`
}

// ─── Dispose ─────────────────────────────────────────────────────────────────

type DisposeAssetValue struct {
	AssetID string           `json:"asset_id" validate:"required,uuid"`
	Value   *decimal.Decimal `json:"value"`
}

type DisposeRequest struct {
	AssetIDs      []string            `json:"asset_ids"      validate:"required,min=1,dive,uuid"`
	DisposeDate   string              `json:"dispose_date"   validate:"required,datetime=2006-01-02"`
	DisposeReason string              `json:"dispose_reason" validate:"required"`
	ReasonText    *string             `json:"reason_text"`
	CommonValue   *decimal.Decimal    `json:"common_value"`
	PerAsset      []DisposeAssetValue `json:"per_asset" validate:"omitempty,dive"`
	Notes         *string             `json:"notes"`
}
