package dto

type CreateEmployeeRequest struct {
	Name       string  `json:"name"  validate:"required"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Title      *string `json:"title"`
	Department *string `json:"department"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Title      *string `json:"title"`
	Department *string `json:"department"`
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Title      *string `json:"title"`
	Department *string `json:"department"`
	Active     bool    `json:"active"`
}
