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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutNotifier enqueues a confirmation mail to the employee an asset was
// checked out to. Delivery is best-effort and never fails the checkout.
type CheckoutNotifier interface {
	NotifyCheckoutConfirmation(ctx context.Context, email, employeeName string, assetTags []string, expectedReturn *time.Time) error
}

// LifecycleService owns every status transition of an asset and the
// append-only history trail describing how the status changed. Handlers stay
// thin: all transition validation and history emission lives here, so the
// single-active-checkout and single-active-lease invariants are enforced in
// one place.
//
// Batch operations are all-or-nothing: each call runs inside one transaction,
// and a failure on any asset rolls back the whole batch.
type LifecycleService interface {
	Checkout(ctx context.Context, actor string, req dto.CheckoutRequest) error
	Checkin(ctx context.Context, actor string, req dto.CheckinRequest) error
	Move(ctx context.Context, actor string, req dto.MoveRequest) error
	Reserve(ctx context.Context, actor string, req dto.ReserveRequest) (*dto.ReservationResponse, error)
	DeleteReservation(ctx context.Context, actor string, reservationID uuid.UUID) error
	Lease(ctx context.Context, actor string, req dto.LeaseRequest) (*dto.LeaseResponse, error)
	LeaseReturn(ctx context.Context, actor string, req dto.LeaseReturnRequest) error
	Dispose(ctx context.Context, actor string, req dto.DisposeRequest) error

	ListReservations(ctx context.Context, assetID uuid.UUID) ([]dto.ReservationResponse, error)
	ListMoves(ctx context.Context, assetID uuid.UUID) ([]dto.MoveResponse, error)
	ListDisposals(ctx context.Context, assetID uuid.UUID) ([]dto.DisposalResponse, error)
}

type lifecycleService struct {
	assets       repository.AssetRepository
	checkouts    repository.CheckoutRepository
	leases       repository.LeaseRepository
	reservations repository.ReservationRepository
	moves        repository.MoveRepository
	disposals    repository.DisposalRepository
	history      repository.HistoryRepository
	employees    repository.EmployeeRepository
	notifier     CheckoutNotifier
}

func NewLifecycleService(
	assets repository.AssetRepository,
	checkouts repository.CheckoutRepository,
	leases repository.LeaseRepository,
	reservations repository.ReservationRepository,
	moves repository.MoveRepository,
	disposals repository.DisposalRepository,
	history repository.HistoryRepository,
	employees repository.EmployeeRepository,
	notifier CheckoutNotifier,
) LifecycleService {
	return &lifecycleService{
		assets:       assets,
		checkouts:    checkouts,
		leases:       leases,
		reservations: reservations,
		moves:        moves,
		disposals:    disposals,
		history:      history,
		employees:    employees,
		notifier:     notifier,
	}
}

// ── helpers ──────────────────────────────────────────────────────────────────

func parseUUID(s, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q: %w", what, s, ErrValidation)
	}
	return id, nil
}

func parseUUIDs(ss []string, what string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := parseUUID(s, what)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *lifecycleService) findAssetTx(tx *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	asset, err := s.assets.FindByIDTx(tx, id)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", id, classifyDBError(err))
	}
	return asset, nil
}

// employeeName resolves an employee id to a display name for history rows,
// falling back to the raw id when the lookup fails.
func (s *lifecycleService) employeeName(ctx context.Context, id uuid.UUID) string {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil || emp == nil {
		return id.String()
	}
	return emp.Name
}

// checkoutEmployeeName returns the display name of the employee on a checkout
// row, preferring the preloaded association.
func (s *lifecycleService) checkoutEmployeeName(ctx context.Context, c *model.Checkout) string {
	if c.Employee != nil {
		return c.Employee.Name
	}
	if c.EmployeeID != nil {
		return s.employeeName(ctx, *c.EmployeeID)
	}
	return ""
}

// placementChanges compares requested placement updates against the current
// asset row and returns the column updates plus one history row per field
// that actually changed. Unchanged fields never produce history rows.
func placementChanges(asset *model.Asset, upd dto.AssetFieldUpdates) (map[string]interface{}, []fieldChange) {
	fields := make(map[string]interface{})
	var changes []fieldChange
	if upd.Location != nil && *upd.Location != asset.Location {
		fields["location"] = *upd.Location
		changes = append(changes, fieldChange{model.FieldLocation, asset.Location, *upd.Location})
	}
	if upd.Department != nil && *upd.Department != asset.Department {
		fields["department"] = *upd.Department
		changes = append(changes, fieldChange{model.FieldDepartment, asset.Department, *upd.Department})
	}
	if upd.Site != nil && *upd.Site != asset.Site {
		fields["site"] = *upd.Site
		changes = append(changes, fieldChange{model.FieldSite, asset.Site, *upd.Site})
	}
	return fields, changes
}

type fieldChange struct {
	field string
	from  string
	to    string
}

// ── Checkout ─────────────────────────────────────────────────────────────────
// Policy: checkout is permitted from any non-terminal status, but an asset
// with an active checkout or an active lease is rejected — otherwise a second
// active checkout could exist, which the engine forbids. The status write is
// a guarded UPDATE so a concurrently disposed asset cannot flip back to
// Checked out.

func (s *lifecycleService) Checkout(ctx context.Context, actor string, req dto.CheckoutRequest) error {
	assetIDs, err := parseUUIDs(req.AssetIDs, "asset")
	if err != nil {
		return err
	}
	employeeID, err := parseUUID(req.EmployeeID, "employee")
	if err != nil {
		return err
	}
	checkoutDate, err := parseDate(req.CheckoutDate)
	if err != nil {
		return err
	}
	expectedReturn, err := parseOptionalDate(req.ExpectedReturnDate)
	if err != nil {
		return err
	}

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("employee %s: %w", employeeID, classifyDBError(err))
	}

	tags := make([]string, 0, len(assetIDs))
	err = runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		tags = tags[:0]
		for _, assetID := range assetIDs {
			asset, err := s.findAssetTx(tx, assetID)
			if err != nil {
				return err
			}
			if model.IsTerminalStatus(asset.Status) {
				return fmt.Errorf("asset %s is disposed (%s): %w", asset.Tag, asset.Status, ErrInvalidState)
			}
			tags = append(tags, asset.Tag)

			actives, err := s.checkouts.FindActiveByAssetTx(tx, assetID)
			if err != nil {
				return classifyDBError(err)
			}
			if len(actives) > 0 {
				return fmt.Errorf("asset %s already has an active checkout: %w", asset.Tag, ErrInvalidState)
			}
			activeLease, err := s.leases.FindActiveByAssetTx(tx, assetID, checkoutDate)
			if err != nil {
				return classifyDBError(err)
			}
			if activeLease != nil {
				return fmt.Errorf("asset %s is currently leased: %w", asset.Tag, ErrInvalidState)
			}

			if err := s.checkouts.CreateTx(tx, &model.Checkout{
				AssetID:            assetID,
				EmployeeID:         &employeeID,
				CheckoutDate:       checkoutDate,
				ExpectedReturnDate: expectedReturn,
				Notes:              req.Notes,
			}); err != nil {
				return classifyDBError(err)
			}

			var entries []model.HistoryLog
			addEntry := func(field, from, to string) {
				entries = append(entries, model.HistoryLog{
					AssetID:    assetID,
					EventType:  model.EventCheckout,
					Field:      field,
					ChangeFrom: from,
					ChangeTo:   to,
					ActionBy:   actor,
					EventDate:  checkoutDate,
				})
			}

			if upd, ok := req.Updates[assetID.String()]; ok {
				fields, changes := placementChanges(asset, upd)
				if len(fields) > 0 {
					if err := s.assets.UpdateFieldsTx(tx, assetID, fields); err != nil {
						return classifyDBError(err)
					}
					for _, ch := range changes {
						addEntry(ch.field, ch.from, ch.to)
					}
				}
			}

			if asset.Status != model.StatusCheckedOut {
				ok, err := s.assets.SetStatusUnlessTerminalTx(tx, assetID, model.StatusCheckedOut)
				if err != nil {
					return classifyDBError(err)
				}
				if !ok {
					return fmt.Errorf("asset %s was disposed concurrently: %w", asset.Tag, ErrInvalidState)
				}
				addEntry(model.FieldStatus, asset.Status, model.StatusCheckedOut)
			}
			addEntry(model.FieldAssignedEmployee, "", employee.Name)

			if err := s.history.AppendTx(tx, entries); err != nil {
				return classifyDBError(err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.notifier != nil && employee.Email != nil && *employee.Email != "" {
		if nerr := s.notifier.NotifyCheckoutConfirmation(ctx, *employee.Email, employee.Name, tags, expectedReturn); nerr != nil {
			log.Error().Err(nerr).Str("employee_id", employeeID.String()).Msg("failed to enqueue checkout confirmation")
		}
	}
	return nil
}

// ── Check-in ─────────────────────────────────────────────────────────────────
// A check-in closes every active checkout found for the asset (most recent
// first); the most recent one supplies the employee name for the
// assignedEmployee history row.

func (s *lifecycleService) Checkin(ctx context.Context, actor string, req dto.CheckinRequest) error {
	assetIDs, err := parseUUIDs(req.AssetIDs, "asset")
	if err != nil {
		return err
	}
	checkinDate, err := parseDate(req.CheckinDate)
	if err != nil {
		return err
	}

	return runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		for _, assetID := range assetIDs {
			asset, err := s.findAssetTx(tx, assetID)
			if err != nil {
				return err
			}
			if asset.Status != model.StatusCheckedOut {
				return fmt.Errorf("asset %s is not checked out (%s): %w", asset.Tag, asset.Status, ErrInvalidState)
			}

			actives, err := s.checkouts.FindActiveByAssetTx(tx, assetID)
			if err != nil {
				return classifyDBError(err)
			}
			if len(actives) == 0 {
				return fmt.Errorf("active checkout for asset %s: %w", asset.Tag, ErrNotFound)
			}

			upd := req.Updates[assetID.String()]
			for i := range actives {
				if err := s.checkouts.CreateCheckinTx(tx, &model.Checkin{
					CheckoutID:  actives[i].ID,
					AssetID:     assetID,
					CheckinDate: checkinDate,
					Condition:   upd.Condition,
					Notes:       upd.Notes,
				}); err != nil {
					return classifyDBError(err)
				}
			}

			entries := []model.HistoryLog{{
				AssetID:    assetID,
				EventType:  model.EventCheckin,
				Field:      model.FieldAssignedEmployee,
				ChangeFrom: s.checkoutEmployeeName(ctx, &actives[0]),
				ChangeTo:   "",
				ActionBy:   actor,
				EventDate:  checkinDate,
			}}

			if err := s.assets.SetStatusTx(tx, assetID, model.StatusAvailable); err != nil {
				return classifyDBError(err)
			}
			entries = append(entries, model.HistoryLog{
				AssetID:    assetID,
				EventType:  model.EventCheckin,
				Field:      model.FieldStatus,
				ChangeFrom: model.StatusCheckedOut,
				ChangeTo:   model.StatusAvailable,
				ActionBy:   actor,
				EventDate:  checkinDate,
			})

			if upd.ReturnLocation != nil && *upd.ReturnLocation != asset.Location {
				if err := s.assets.UpdateFieldsTx(tx, assetID, map[string]interface{}{"location": *upd.ReturnLocation}); err != nil {
					return classifyDBError(err)
				}
				entries = append(entries, model.HistoryLog{
					AssetID:    assetID,
					EventType:  model.EventCheckin,
					Field:      model.FieldLocation,
					ChangeFrom: asset.Location,
					ChangeTo:   *upd.ReturnLocation,
					ActionBy:   actor,
					EventDate:  checkinDate,
				})
			}

			if err := s.history.AppendTx(tx, entries); err != nil {
				return classifyDBError(err)
			}
		}
		return nil
	})
}

// ── Move ─────────────────────────────────────────────────────────────────────
// A leased asset may not be moved. One immutable Move record is always
// written, even when nothing actually changed; history rows are only written
// for fields that did change.

func (s *lifecycleService) Move(ctx context.Context, actor string, req dto.MoveRequest) error {
	assetID, err := parseUUID(req.AssetID, "asset")
	if err != nil {
		return err
	}
	moveDate, err := parseDate(req.MoveDate)
	if err != nil {
		return err
	}

	return runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err := s.findAssetTx(tx, assetID)
		if err != nil {
			return err
		}

		activeLease, err := s.leases.FindActiveByAssetTx(tx, assetID, moveDate)
		if err != nil {
			return classifyDBError(err)
		}
		if activeLease != nil {
			return fmt.Errorf("asset %s is currently leased: %w", asset.Tag, ErrInvalidState)
		}

		var entries []model.HistoryLog
		addEntry := func(field, from, to string) {
			entries = append(entries, model.HistoryLog{
				AssetID:    assetID,
				EventType:  model.EventMove,
				Field:      field,
				ChangeFrom: from,
				ChangeTo:   to,
				ActionBy:   actor,
				EventDate:  moveDate,
			})
		}

		var fromValue, toValue string

		switch req.MoveType {
		case model.MoveTypeLocation:
			if req.Location == nil {
				return fmt.Errorf("location is required for a location transfer: %w", ErrValidation)
			}
			fromValue, toValue = asset.Location, *req.Location
			if toValue != fromValue {
				if err := s.assets.UpdateFieldsTx(tx, assetID, map[string]interface{}{"location": toValue}); err != nil {
					return classifyDBError(err)
				}
				addEntry(model.FieldLocation, fromValue, toValue)
			}

		case model.MoveTypeDepartment:
			if req.Department == nil {
				return fmt.Errorf("department is required for a department transfer: %w", ErrValidation)
			}
			fromValue, toValue = asset.Department, *req.Department
			if toValue != fromValue {
				if err := s.assets.UpdateFieldsTx(tx, assetID, map[string]interface{}{"department": toValue}); err != nil {
					return classifyDBError(err)
				}
				addEntry(model.FieldDepartment, fromValue, toValue)
			}

		case model.MoveTypeEmployee:
			if req.EmployeeID == nil {
				return fmt.Errorf("employee_id is required for an employee assignment: %w", ErrValidation)
			}
			employeeID, err := parseUUID(*req.EmployeeID, "employee")
			if err != nil {
				return err
			}
			newName := s.employeeName(ctx, employeeID)

			actives, err := s.checkouts.FindActiveByAssetTx(tx, assetID)
			if err != nil {
				return classifyDBError(err)
			}
			if len(actives) > 0 {
				// Re-target the most recent active checkout in place.
				oldName := s.checkoutEmployeeName(ctx, &actives[0])
				if err := s.checkouts.UpdateTx(tx, actives[0].ID, map[string]interface{}{
					"employee_id":   employeeID,
					"checkout_date": moveDate,
				}); err != nil {
					return classifyDBError(err)
				}
				addEntry(model.FieldAssignedEmployee, oldName, newName)
				fromValue, toValue = oldName, newName
			} else {
				if err := s.checkouts.CreateTx(tx, &model.Checkout{
					AssetID:      assetID,
					EmployeeID:   &employeeID,
					CheckoutDate: moveDate,
					Notes:        req.Notes,
				}); err != nil {
					return classifyDBError(err)
				}
				if asset.Status != model.StatusCheckedOut {
					if err := s.assets.SetStatusTx(tx, assetID, model.StatusCheckedOut); err != nil {
						return classifyDBError(err)
					}
					addEntry(model.FieldStatus, asset.Status, model.StatusCheckedOut)
				}
				addEntry(model.FieldAssignedEmployee, "", newName)
				fromValue, toValue = "", newName
			}

		default:
			return fmt.Errorf("unknown move type %q: %w", req.MoveType, ErrValidation)
		}

		// The Move record is the audit of the attempt, not of the diff.
		if err := s.moves.CreateTx(tx, &model.Move{
			AssetID:   assetID,
			MoveType:  req.MoveType,
			MoveDate:  moveDate,
			FromValue: fromValue,
			ToValue:   toValue,
			Notes:     req.Notes,
		}); err != nil {
			return classifyDBError(err)
		}

		return s.history.AppendTx(tx, entries)
	})
}

// ── Reserve / DeleteReservation ──────────────────────────────────────────────
// The first active reservation flips the status to Reserved; removing the
// last one flips it back to Available. Reservations in between only change
// the count.

func (s *lifecycleService) Reserve(ctx context.Context, actor string, req dto.ReserveRequest) (*dto.ReservationResponse, error) {
	assetID, err := parseUUID(req.AssetID, "asset")
	if err != nil {
		return nil, err
	}
	reservationDate, err := parseDate(req.ReservationDate)
	if err != nil {
		return nil, err
	}

	reservation := model.Reservation{
		AssetID:         assetID,
		ReservationType: req.ReservationType,
		ReservationDate: reservationDate,
		Notes:           req.Notes,
	}

	switch req.ReservationType {
	case model.ReservationTypeEmployee:
		if req.EmployeeID == nil {
			return nil, fmt.Errorf("employee_id is required for an employee reservation: %w", ErrValidation)
		}
		employeeID, err := parseUUID(*req.EmployeeID, "employee")
		if err != nil {
			return nil, err
		}
		reservation.EmployeeID = &employeeID
	case model.ReservationTypeDepartment:
		if req.Department == nil {
			return nil, fmt.Errorf("department is required for a department reservation: %w", ErrValidation)
		}
		reservation.Department = req.Department
	default:
		return nil, fmt.Errorf("unknown reservation type %q: %w", req.ReservationType, ErrValidation)
	}

	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err := s.findAssetTx(tx, assetID)
		if err != nil {
			return err
		}
		if model.IsTerminalStatus(asset.Status) {
			return fmt.Errorf("asset %s is disposed (%s): %w", asset.Tag, asset.Status, ErrInvalidState)
		}

		if asset.Status != model.StatusReserved {
			if err := s.assets.SetStatusTx(tx, assetID, model.StatusReserved); err != nil {
				return classifyDBError(err)
			}
			if err := s.history.AppendTx(tx, []model.HistoryLog{{
				AssetID:    assetID,
				EventType:  model.EventReserve,
				Field:      model.FieldStatus,
				ChangeFrom: asset.Status,
				ChangeTo:   model.StatusReserved,
				ActionBy:   actor,
				EventDate:  reservationDate,
			}}); err != nil {
				return classifyDBError(err)
			}
		}

		return classifyDBError(s.reservations.CreateTx(tx, &reservation))
	})
	if txErr != nil {
		return nil, txErr
	}

	return reservationToResponse(&reservation), nil
}

func (s *lifecycleService) DeleteReservation(ctx context.Context, actor string, reservationID uuid.UUID) error {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return fmt.Errorf("reservation %s: %w", reservationID, classifyDBError(err))
	}

	return runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		if err := s.reservations.DeleteTx(tx, reservationID); err != nil {
			return classifyDBError(err)
		}
		remaining, err := s.reservations.CountByAssetTx(tx, reservation.AssetID)
		if err != nil {
			return classifyDBError(err)
		}
		if remaining > 0 {
			return nil
		}

		asset, err := s.findAssetTx(tx, reservation.AssetID)
		if err != nil {
			return err
		}
		if asset.Status != model.StatusReserved {
			return nil
		}
		if err := s.assets.SetStatusTx(tx, reservation.AssetID, model.StatusAvailable); err != nil {
			return classifyDBError(err)
		}
		return s.history.AppendTx(tx, []model.HistoryLog{{
			AssetID:    reservation.AssetID,
			EventType:  model.EventUnreserve,
			Field:      model.FieldStatus,
			ChangeFrom: model.StatusReserved,
			ChangeTo:   model.StatusAvailable,
			ActionBy:   actor,
			EventDate:  normalizeDate(time.Now()),
		}})
	})
}

// ── Lease / LeaseReturn ──────────────────────────────────────────────────────
// Leasing requires Available and no overlapping active lease. The status
// write is a conditional UPDATE ... WHERE status = 'Available' so a
// concurrent double-lease loses with Conflict instead of silently winning.
// Lease transitions emit no per-field history rows.

func (s *lifecycleService) Lease(ctx context.Context, actor string, req dto.LeaseRequest) (*dto.LeaseResponse, error) {
	assetID, err := parseUUID(req.AssetID, "asset")
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate(req.LeaseStartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.LeaseEndDate)
	if err != nil {
		return nil, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("lease end date before start date: %w", ErrValidation)
	}

	lease := model.Lease{
		AssetID:        assetID,
		Lessee:         req.Lessee,
		LeaseStartDate: startDate,
		LeaseEndDate:   endDate,
		Rate:           req.Rate,
		Notes:          req.Notes,
	}

	txErr := runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		asset, err := s.findAssetTx(tx, assetID)
		if err != nil {
			return err
		}
		if asset.Status != model.StatusAvailable {
			return fmt.Errorf("asset %s is not available (%s): %w", asset.Tag, asset.Status, ErrInvalidState)
		}

		existing, err := s.leases.FindActiveByAssetTx(tx, assetID, startDate)
		if err != nil {
			return classifyDBError(err)
		}
		if existing != nil {
			return fmt.Errorf("asset %s already has an active lease: %w", asset.Tag, ErrConflict)
		}

		if err := s.leases.CreateTx(tx, &lease); err != nil {
			return classifyDBError(err)
		}

		ok, err := s.assets.SetStatusIfTx(tx, assetID, model.StatusAvailable, model.StatusLeased)
		if err != nil {
			return classifyDBError(err)
		}
		if !ok {
			return fmt.Errorf("asset %s changed state concurrently: %w", asset.Tag, ErrConflict)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.LeaseResponse{
		ID:             lease.ID.String(),
		AssetID:        assetID.String(),
		Lessee:         lease.Lessee,
		LeaseStartDate: formatDate(lease.LeaseStartDate),
		LeaseEndDate:   formatOptionalDate(lease.LeaseEndDate),
		Rate:           lease.Rate,
	}, nil
}

func (s *lifecycleService) LeaseReturn(ctx context.Context, actor string, req dto.LeaseReturnRequest) error {
	assetIDs, err := parseUUIDs(req.AssetIDs, "asset")
	if err != nil {
		return err
	}
	returnDate, err := parseDate(req.ReturnDate)
	if err != nil {
		return err
	}

	return runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		for _, assetID := range assetIDs {
			asset, err := s.findAssetTx(tx, assetID)
			if err != nil {
				return err
			}

			lease, err := s.leases.FindLatestMatchingTx(tx, assetID, returnDate)
			if err != nil {
				return classifyDBError(err)
			}
			if lease == nil {
				return fmt.Errorf("active lease for asset %s: %w", asset.Tag, ErrNotFound)
			}
			returned, err := s.leases.HasReturnTx(tx, lease.ID)
			if err != nil {
				return classifyDBError(err)
			}
			if returned {
				return fmt.Errorf("lease for asset %s was already returned: %w", asset.Tag, ErrConflict)
			}

			if err := s.leases.CreateReturnTx(tx, &model.LeaseReturn{
				LeaseID:    lease.ID,
				AssetID:    assetID,
				ReturnDate: returnDate,
				Notes:      req.Notes,
			}); err != nil {
				return classifyDBError(err)
			}
			if err := s.assets.SetStatusTx(tx, assetID, model.StatusAvailable); err != nil {
				return classifyDBError(err)
			}

			// Placement updates on return are applied without history rows —
			// the lease family does not audit per-field changes.
			if upd, ok := req.Updates[assetID.String()]; ok {
				fields, _ := placementChanges(asset, upd)
				if len(fields) > 0 {
					if err := s.assets.UpdateFieldsTx(tx, assetID, fields); err != nil {
						return classifyDBError(err)
					}
				}
			}
		}
		return nil
	})
}

// ── Dispose ──────────────────────────────────────────────────────────────────
// Terminal and irreversible. The Sold-needs-a-value rule is checked before
// any write. Disposal closes active checkouts with a synthesized check-in,
// writes the reason string as the status and clears placement fields without
// history rows.

func (s *lifecycleService) Dispose(ctx context.Context, actor string, req dto.DisposeRequest) error {
	if !model.IsDisposeReason(req.DisposeReason) {
		return fmt.Errorf("unknown dispose reason %q: %w", req.DisposeReason, ErrValidation)
	}

	perAssetValue := make(map[string]*decimal.Decimal, len(req.PerAsset))
	for i := range req.PerAsset {
		perAssetValue[req.PerAsset[i].AssetID] = req.PerAsset[i].Value
	}

	if req.DisposeReason == model.StatusSold && !hasPositiveValue(req.CommonValue, perAssetValue) {
		return fmt.Errorf("a sale value is required when disposing as Sold: %w", ErrValidation)
	}

	assetIDs, err := parseUUIDs(req.AssetIDs, "asset")
	if err != nil {
		return err
	}
	disposeDate, err := parseDate(req.DisposeDate)
	if err != nil {
		return err
	}

	return runTx(ctx, s.assets.DB(), func(tx *gorm.DB) error {
		for _, assetID := range assetIDs {
			asset, err := s.findAssetTx(tx, assetID)
			if err != nil {
				return err
			}
			if model.IsTerminalStatus(asset.Status) {
				return fmt.Errorf("asset %s is already disposed (%s): %w", asset.Tag, asset.Status, ErrInvalidState)
			}

			// Close any active checkout with a synthesized check-in.
			actives, err := s.checkouts.FindActiveByAssetTx(tx, assetID)
			if err != nil {
				return classifyDBError(err)
			}
			for i := range actives {
				note := fmt.Sprintf("Closed on disposal (%s)", req.DisposeReason)
				if err := s.checkouts.CreateCheckinTx(tx, &model.Checkin{
					CheckoutID:  actives[i].ID,
					AssetID:     assetID,
					CheckinDate: disposeDate,
					Notes:       &note,
				}); err != nil {
					return classifyDBError(err)
				}
			}

			value := req.CommonValue
			if v, ok := perAssetValue[assetID.String()]; ok && v != nil {
				value = v
			}

			if err := s.disposals.CreateTx(tx, &model.Disposal{
				AssetID:     assetID,
				DisposeDate: disposeDate,
				Reason:      req.DisposeReason,
				ReasonText:  req.ReasonText,
				Value:       value,
				Notes:       req.Notes,
			}); err != nil {
				return classifyDBError(err)
			}

			// The disposal reason string becomes the terminal status;
			// placement is cleared unconditionally and without history rows.
			if err := s.assets.UpdateFieldsTx(tx, assetID, map[string]interface{}{
				"status":     req.DisposeReason,
				"location":   "",
				"department": "",
				"site":       "",
			}); err != nil {
				return classifyDBError(err)
			}
		}
		return nil
	})
}

// ── Per-asset record listings ────────────────────────────────────────────────

func (s *lifecycleService) ListReservations(ctx context.Context, assetID uuid.UUID) ([]dto.ReservationResponse, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}
	rows, err := s.reservations.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.ReservationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *reservationToResponse(&rows[i]))
	}
	return out, nil
}

func (s *lifecycleService) ListMoves(ctx context.Context, assetID uuid.UUID) ([]dto.MoveResponse, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}
	rows, err := s.moves.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.MoveResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.MoveResponse{
			ID:        rows[i].ID.String(),
			AssetID:   rows[i].AssetID.String(),
			MoveType:  rows[i].MoveType,
			MoveDate:  formatDate(rows[i].MoveDate),
			FromValue: rows[i].FromValue,
			ToValue:   rows[i].ToValue,
			Notes:     rows[i].Notes,
		})
	}
	return out, nil
}

func (s *lifecycleService) ListDisposals(ctx context.Context, assetID uuid.UUID) ([]dto.DisposalResponse, error) {
	if _, err := s.assets.FindByID(ctx, assetID); err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, classifyDBError(err))
	}
	rows, err := s.disposals.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, classifyDBError(err)
	}
	out := make([]dto.DisposalResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.DisposalResponse{
			ID:          rows[i].ID.String(),
			AssetID:     rows[i].AssetID.String(),
			DisposeDate: formatDate(rows[i].DisposeDate),
			Reason:      rows[i].Reason,
			ReasonText:  rows[i].ReasonText,
			Value:       rows[i].Value,
			Notes:       rows[i].Notes,
		})
	}
	return out, nil
}

func hasPositiveValue(common *decimal.Decimal, perAsset map[string]*decimal.Decimal) bool {
	if common != nil && common.GreaterThan(decimal.Zero) {
		return true
	}
	for _, v := range perAsset {
		if v != nil && v.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

func reservationToResponse(r *model.Reservation) *dto.ReservationResponse {
	resp := &dto.ReservationResponse{
		ID:              r.ID.String(),
		AssetID:         r.AssetID.String(),
		ReservationType: r.ReservationType,
		Department:      r.Department,
		ReservationDate: formatDate(r.ReservationDate),
		Notes:           r.Notes,
	}
	if r.EmployeeID != nil {
		id := r.EmployeeID.String()
		resp.EmployeeID = &id
	}
	return resp
}
