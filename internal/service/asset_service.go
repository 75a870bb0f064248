package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TagCache is the read-through cache in front of GetByTag, keyed by asset
// tag. Asset mutations invalidate the cached entry.
type TagCache interface {
	Get(ctx context.Context, tag string) (*dto.AssetResponse, bool)
	Set(ctx context.Context, tag string, asset *dto.AssetResponse)
	Invalidate(ctx context.Context, tag string)
}

type AssetService interface {
	Create(ctx context.Context, req dto.CreateAssetRequest) (*dto.AssetResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error)
	GetByTag(ctx context.Context, tag string) (*dto.AssetResponse, error)
	List(ctx context.Context, filter dto.AssetFilter) (*dto.AssetListResponse, error)
	Update(ctx context.Context, actor string, id uuid.UUID, req dto.UpdateAssetRequest) (*dto.AssetResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, id uuid.UUID, page, limit int) (*dto.HistoryListResponse, error)
}

type assetService struct {
	assets    repository.AssetRepository
	checkouts repository.CheckoutRepository
	leases    repository.LeaseRepository
	history   repository.HistoryRepository
	cache     TagCache
}

func NewAssetService(
	assets repository.AssetRepository,
	checkouts repository.CheckoutRepository,
	leases repository.LeaseRepository,
	history repository.HistoryRepository,
	cache TagCache,
) AssetService {
	return &assetService{assets: assets, checkouts: checkouts, leases: leases, history: history, cache: cache}
}

func (s *assetService) Create(ctx context.Context, req dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	purchaseDate, err := parseOptionalDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	asset := model.Asset{
		Tag:          req.Tag,
		Description:  req.Description,
		Status:       model.StatusAvailable,
		Location:     req.Location,
		Department:   req.Department,
		Site:         req.Site,
		Category:     req.Category,
		SerialNo:     req.SerialNo,
		Brand:        req.Brand,
		ModelName:    req.Model,
		PurchaseDate: purchaseDate,
		Cost:         req.Cost,
		Active:       true,
	}
	if err := s.assets.Create(ctx, &asset); err != nil {
		classified := classifyDBError(err)
		if errors.Is(classified, ErrConflict) {
			return nil, fmt.Errorf("tag %q is already in use: %w", req.Tag, ErrConflict)
		}
		return nil, classified
	}
	return assetToResponse(&asset), nil
}

func (s *assetService) GetByID(ctx context.Context, id uuid.UUID) (*dto.AssetResponse, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}
	return assetToResponse(asset), nil
}

func (s *assetService) GetByTag(ctx context.Context, tag string) (*dto.AssetResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, tag); ok {
			return cached, nil
		}
	}
	asset, err := s.assets.FindByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("asset tag %q: %w", tag, classifyDBError(err))
	}
	resp := assetToResponse(asset)
	if s.cache != nil {
		s.cache.Set(ctx, tag, resp)
	}
	return resp, nil
}

func (s *assetService) List(ctx context.Context, filter dto.AssetFilter) (*dto.AssetListResponse, error) {
	assets, total, err := s.assets.List(ctx, filter)
	if err != nil {
		return nil, classifyDBError(err)
	}
	data := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		data = append(data, *assetToResponse(&assets[i]))
	}
	return &dto.AssetListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// trackedUpdateFields are the descriptive fields whose edits land in the
// history trail as update events.
func (s *assetService) Update(ctx context.Context, actor string, id uuid.UUID, req dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}
	oldTag := asset.Tag

	var entries []model.HistoryLog
	track := func(field, from, to string) {
		entries = append(entries, model.HistoryLog{
			AssetID:    id,
			EventType:  model.EventAssetUpdate,
			Field:      field,
			ChangeFrom: from,
			ChangeTo:   to,
			ActionBy:   actor,
			EventDate:  normalizeDate(time.Now()),
		})
	}

	if req.Tag != nil && *req.Tag != asset.Tag {
		track("tag", asset.Tag, *req.Tag)
		asset.Tag = *req.Tag
	}
	if req.Description != nil && *req.Description != asset.Description {
		track("description", asset.Description, *req.Description)
		asset.Description = *req.Description
	}
	if req.Category != nil && *req.Category != asset.Category {
		track("category", asset.Category, *req.Category)
		asset.Category = *req.Category
	}
	if req.SerialNo != nil {
		asset.SerialNo = req.SerialNo
	}
	if req.Brand != nil {
		asset.Brand = req.Brand
	}
	if req.Model != nil {
		asset.ModelName = req.Model
	}
	if req.PurchaseDate != nil {
		d, err := parseOptionalDate(req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		asset.PurchaseDate = d
	}
	if req.Cost != nil {
		asset.Cost = req.Cost
	}

	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		if err := classifyDBError(s.assets.UpdateTx(tx, asset)); err != nil {
			if errors.Is(err, ErrConflict) {
				return fmt.Errorf("tag %q is already in use: %w", asset.Tag, ErrConflict)
			}
			return err
		}
		return classifyDBError(s.history.AppendTx(tx, entries))
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, oldTag)
		if asset.Tag != oldTag {
			s.cache.Invalidate(ctx, asset.Tag)
		}
	}
	return assetToResponse(asset), nil
}

// Delete soft-deletes. An asset with an active checkout or lease stays live
// until it is checked in or returned.
func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}

	actives, err := s.checkouts.FindActiveByAsset(ctx, id)
	if err != nil {
		return classifyDBError(err)
	}
	if len(actives) > 0 {
		return fmt.Errorf("asset %s has an active checkout: %w", asset.Tag, ErrInvalidState)
	}
	lease, err := s.leases.FindActiveByAsset(ctx, id, normalizeDate(time.Now()))
	if err != nil {
		return classifyDBError(err)
	}
	if lease != nil {
		return fmt.Errorf("asset %s is currently leased: %w", asset.Tag, ErrInvalidState)
	}

	if err := s.assets.SoftDelete(ctx, id); err != nil {
		return classifyDBError(err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, asset.Tag)
	}
	log.Info().Str("asset_id", id.String()).Str("tag", asset.Tag).Msg("asset soft-deleted")
	return nil
}

func (s *assetService) Restore(ctx context.Context, id uuid.UUID) error {
	if _, err := s.assets.FindByID(ctx, id); err != nil {
		return fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}
	return classifyDBError(s.assets.Restore(ctx, id))
}

func (s *assetService) History(ctx context.Context, id uuid.UUID, page, limit int) (*dto.HistoryListResponse, error) {
	if _, err := s.assets.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}
	rows, total, err := s.history.ListByAsset(ctx, id, page, limit)
	if err != nil {
		return nil, classifyDBError(err)
	}
	data := make([]dto.HistoryEntry, 0, len(rows))
	for i := range rows {
		data = append(data, dto.HistoryEntry{
			ID:         rows[i].ID.String(),
			EventType:  rows[i].EventType,
			Field:      rows[i].Field,
			ChangeFrom: rows[i].ChangeFrom,
			ChangeTo:   rows[i].ChangeTo,
			ActionBy:   rows[i].ActionBy,
			EventDate:  formatDate(rows[i].EventDate),
		})
	}
	return &dto.HistoryListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func assetToResponse(a *model.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:           a.ID.String(),
		Tag:          a.Tag,
		Description:  a.Description,
		Status:       a.Status,
		Location:     a.Location,
		Department:   a.Department,
		Site:         a.Site,
		Category:     a.Category,
		SerialNo:     a.SerialNo,
		Brand:        a.Brand,
		Model:        a.ModelName,
		PurchaseDate: formatOptionalDate(a.PurchaseDate),
		Cost:         a.Cost,
		Active:       a.Active,
		CreatedAt:    formatTimestamp(a.CreatedAt),
	}
}
