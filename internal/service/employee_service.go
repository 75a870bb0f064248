package service

import (
	"context"
	"fmt"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"

	"github.com/google/uuid"
)

type EmployeeService interface {
	Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type employeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeService(employees repository.EmployeeRepository) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee := model.Employee{
		Name:       req.Name,
		Email:      req.Email,
		Title:      req.Title,
		Department: req.Department,
		Active:     true,
	}
	if err := s.employees.Create(ctx, &employee); err != nil {
		return nil, classifyDBError(err)
	}
	return employeeToResponse(&employee), nil
}

func (s *employeeService) Get(ctx context.Context, id uuid.UUID) (*dto.EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("employee %s: %w", id, classifyDBError(err))
	}
	return employeeToResponse(employee), nil
}

func (s *employeeService) List(ctx context.Context, includeInactive bool) ([]dto.EmployeeResponse, error) {
	employees, err := s.employees.List(ctx, includeInactive)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, *employeeToResponse(&employees[i]))
	}
	return out, nil
}

func (s *employeeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("employee %s: %w", id, classifyDBError(err))
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = req.Email
	}
	if req.Title != nil {
		employee.Title = req.Title
	}
	if req.Department != nil {
		employee.Department = req.Department
	}
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, classifyDBError(err)
	}
	return employeeToResponse(employee), nil
}

func (s *employeeService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		return fmt.Errorf("employee %s: %w", id, classifyDBError(err))
	}
	return classifyDBError(s.employees.SoftDelete(ctx, id))
}

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Title:      e.Title,
		Department: e.Department,
		Active:     e.Active,
	}
}
