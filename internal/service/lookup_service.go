package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"

	"github.com/google/uuid"
)

// lookupModel is satisfied by pointers to the directory types (Site,
// Location, Department, Category).
type lookupModel interface {
	GetID() uuid.UUID
	GetName() string
	GetDescription() *string
	IsActive() bool
	SetName(string)
	SetDescription(*string)
}

// LookupService is the shared CRUD surface of the four directory tables.
type LookupService[T any] interface {
	Create(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LookupResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.LookupResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateLookupRequest) (*dto.LookupResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type lookupService[T any, PT interface {
	lookupModel
	*T
}] struct {
	what string
	repo repository.LookupRepository[T]
	// siteID accessors are only set for locations.
	getSiteID func(PT) *uuid.UUID
	setSiteID func(PT, *uuid.UUID)
}

func NewSiteService(repo repository.LookupRepository[model.Site]) LookupService[model.Site] {
	return &lookupService[model.Site, *model.Site]{what: "site", repo: repo}
}

func NewDepartmentService(repo repository.LookupRepository[model.Department]) LookupService[model.Department] {
	return &lookupService[model.Department, *model.Department]{what: "department", repo: repo}
}

func NewCategoryService(repo repository.LookupRepository[model.Category]) LookupService[model.Category] {
	return &lookupService[model.Category, *model.Category]{what: "category", repo: repo}
}

func NewLocationService(repo repository.LookupRepository[model.Location]) LookupService[model.Location] {
	return &lookupService[model.Location, *model.Location]{
		what:      "location",
		repo:      repo,
		getSiteID: func(l *model.Location) *uuid.UUID { return l.SiteID },
		setSiteID: func(l *model.Location, id *uuid.UUID) { l.SiteID = id },
	}
}

func (s *lookupService[T, PT]) Create(ctx context.Context, req dto.CreateLookupRequest) (*dto.LookupResponse, error) {
	var m T
	p := PT(&m)
	p.SetName(req.Name)
	p.SetDescription(req.Description)
	if req.SiteID != nil {
		if s.setSiteID == nil {
			return nil, fmt.Errorf("site_id is not valid for a %s: %w", s.what, ErrValidation)
		}
		siteID, err := parseUUID(*req.SiteID, "site")
		if err != nil {
			return nil, err
		}
		s.setSiteID(p, &siteID)
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		classified := classifyDBError(err)
		if errors.Is(classified, ErrConflict) {
			return nil, fmt.Errorf("%s %q already exists: %w", s.what, req.Name, ErrConflict)
		}
		return nil, classified
	}
	return s.toResponse(p), nil
}

func (s *lookupService[T, PT]) Get(ctx context.Context, id uuid.UUID) (*dto.LookupResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", s.what, id, classifyDBError(err))
	}
	return s.toResponse(PT(m)), nil
}

func (s *lookupService[T, PT]) List(ctx context.Context, includeInactive bool) ([]dto.LookupResponse, error) {
	items, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.LookupResponse, 0, len(items))
	for i := range items {
		out = append(out, *s.toResponse(PT(&items[i])))
	}
	return out, nil
}

func (s *lookupService[T, PT]) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLookupRequest) (*dto.LookupResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", s.what, id, classifyDBError(err))
	}
	p := PT(m)
	if req.Name != nil {
		p.SetName(*req.Name)
	}
	if req.Description != nil {
		p.SetDescription(req.Description)
	}
	if req.SiteID != nil {
		if s.setSiteID == nil {
			return nil, fmt.Errorf("site_id is not valid for a %s: %w", s.what, ErrValidation)
		}
		siteID, err := parseUUID(*req.SiteID, "site")
		if err != nil {
			return nil, err
		}
		s.setSiteID(p, &siteID)
	}
	if err := s.repo.Update(ctx, m); err != nil {
		classified := classifyDBError(err)
		if errors.Is(classified, ErrConflict) {
			return nil, fmt.Errorf("%s name %q already exists: %w", s.what, p.GetName(), ErrConflict)
		}
		return nil, classified
	}
	return s.toResponse(p), nil
}

func (s *lookupService[T, PT]) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%s %s: %w", s.what, id, classifyDBError(err))
	}
	return classifyDBError(s.repo.Deactivate(ctx, id))
}

func (s *lookupService[T, PT]) toResponse(p PT) *dto.LookupResponse {
	resp := &dto.LookupResponse{
		ID:          p.GetID().String(),
		Name:        p.GetName(),
		Description: p.GetDescription(),
		Active:      p.IsActive(),
	}
	if s.getSiteID != nil {
		if siteID := s.getSiteID(p); siteID != nil {
			id := siteID.String()
			resp.SiteID = &id
		}
	}
	return resp
}
