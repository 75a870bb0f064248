package dto

// Shared request/response shapes for the directory tables (sites, locations,
// departments, categories).

type CreateLookupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	// SiteID only applies to locations.
	SiteID *string `json:"site_id" validate:"omitempty,uuid"`
}

type UpdateLookupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SiteID      *string `json:"site_id" validate:"omitempty,uuid"`
}

type LookupResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	SiteID      *string `json:"site_id,omitempty"`
	Active      bool    `json:"active"`
}
