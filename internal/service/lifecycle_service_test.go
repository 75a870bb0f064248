package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/dto"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/model"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/repository"
	"github.com/shoreagents/shoreagents-asset-dog-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubAssetRepo is an in-memory AssetRepository for testing.
type stubAssetRepo struct {
	assets     map[uuid.UUID]*model.Asset
	ctxUpdates int
	txUpdates  int
}

func newStubAssetRepo() *stubAssetRepo {
	return &stubAssetRepo{assets: make(map[uuid.UUID]*model.Asset)}
}

func (r *stubAssetRepo) add(a *model.Asset) *model.Asset {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = model.StatusAvailable
	}
	a.Active = true
	r.assets[a.ID] = a
	return a
}

func (r *stubAssetRepo) Create(_ context.Context, a *model.Asset) error {
	for _, other := range r.assets {
		if other.Tag == a.Tag {
			return gorm.ErrDuplicatedKey
		}
	}
	r.add(a)
	return nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAssetRepo) FindByTag(_ context.Context, tag string) (*model.Asset, error) {
	for _, a := range r.assets {
		if a.Tag == tag {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAssetRepo) List(_ context.Context, _ dto.AssetFilter) ([]model.Asset, int64, error) {
	out := make([]model.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAssetRepo) ListForExport(ctx context.Context, f dto.AssetFilter) ([]model.Asset, error) {
	out, _, err := r.List(ctx, f)
	return out, err
}

func (r *stubAssetRepo) Update(_ context.Context, a *model.Asset) error {
	r.ctxUpdates++
	return r.save(a)
}

func (r *stubAssetRepo) UpdateTx(_ *gorm.DB, a *model.Asset) error {
	r.txUpdates++
	return r.save(a)
}

func (r *stubAssetRepo) save(a *model.Asset) error {
	for _, other := range r.assets {
		if other.ID != a.ID && other.Tag == a.Tag {
			return gorm.ErrDuplicatedKey
		}
	}
	r.assets[a.ID] = a
	return nil
}

func (r *stubAssetRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	a, ok := r.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Active = false
	return nil
}

func (r *stubAssetRepo) Restore(_ context.Context, id uuid.UUID) error {
	a, ok := r.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Active = true
	return nil
}

func (r *stubAssetRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Asset, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubAssetRepo) UpdateFieldsTx(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	a, ok := r.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		s, _ := v.(string)
		switch k {
		case "status":
			a.Status = s
		case "location":
			a.Location = s
		case "department":
			a.Department = s
		case "site":
			a.Site = s
		}
	}
	return nil
}

func (r *stubAssetRepo) SetStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	a, ok := r.assets[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (r *stubAssetRepo) SetStatusIfTx(_ *gorm.DB, id uuid.UUID, from, to string) (bool, error) {
	a, ok := r.assets[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if a.Status != from {
		return false, nil
	}
	a.Status = to
	return true, nil
}

func (r *stubAssetRepo) SetStatusUnlessTerminalTx(_ *gorm.DB, id uuid.UUID, to string) (bool, error) {
	a, ok := r.assets[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if model.IsTerminalStatus(a.Status) {
		return false, nil
	}
	a.Status = to
	return true, nil
}

func (r *stubAssetRepo) DB() *gorm.DB { return nil }

var _ repository.AssetRepository = (*stubAssetRepo)(nil)

// stubCheckoutRepo keeps checkouts and check-ins in slices.
type stubCheckoutRepo struct {
	checkouts []*model.Checkout
	checkins  []*model.Checkin
}

func (r *stubCheckoutRepo) active(assetID uuid.UUID) []model.Checkout {
	returned := make(map[uuid.UUID]bool)
	for _, ci := range r.checkins {
		returned[ci.CheckoutID] = true
	}
	var out []model.Checkout
	for _, co := range r.checkouts {
		if co.AssetID == assetID && co.EmployeeID != nil && !returned[co.ID] {
			out = append(out, *co)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckoutDate.After(out[j].CheckoutDate) })
	return out
}

func (r *stubCheckoutRepo) FindActiveByAsset(_ context.Context, assetID uuid.UUID) ([]model.Checkout, error) {
	return r.active(assetID), nil
}

func (r *stubCheckoutRepo) FindActiveByAssetTx(_ *gorm.DB, assetID uuid.UUID) ([]model.Checkout, error) {
	return r.active(assetID), nil
}

func (r *stubCheckoutRepo) CreateTx(_ *gorm.DB, c *model.Checkout) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.checkouts = append(r.checkouts, c)
	return nil
}

func (r *stubCheckoutRepo) UpdateTx(_ *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	for _, co := range r.checkouts {
		if co.ID == id {
			if v, ok := fields["employee_id"].(uuid.UUID); ok {
				co.EmployeeID = &v
			}
			if v, ok := fields["checkout_date"].(time.Time); ok {
				co.CheckoutDate = v
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubCheckoutRepo) CreateCheckinTx(_ *gorm.DB, c *model.Checkin) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.checkins = append(r.checkins, c)
	return nil
}

var _ repository.CheckoutRepository = (*stubCheckoutRepo)(nil)

// stubLeaseRepo keeps leases and lease returns in slices.
type stubLeaseRepo struct {
	leases  []*model.Lease
	returns []*model.LeaseReturn
}

func (r *stubLeaseRepo) hasReturn(leaseID uuid.UUID) bool {
	for _, lr := range r.returns {
		if lr.LeaseID == leaseID {
			return true
		}
	}
	return false
}

func (r *stubLeaseRepo) matching(assetID uuid.UUID, asOf time.Time, ignoreReturns bool) *model.Lease {
	var best *model.Lease
	for _, l := range r.leases {
		if l.AssetID != assetID {
			continue
		}
		if !ignoreReturns && r.hasReturn(l.ID) {
			continue
		}
		if l.LeaseEndDate != nil && l.LeaseEndDate.Before(asOf) {
			continue
		}
		if best == nil || l.LeaseStartDate.After(best.LeaseStartDate) {
			best = l
		}
	}
	return best
}

func (r *stubLeaseRepo) FindActiveByAsset(_ context.Context, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return r.matching(assetID, asOf, false), nil
}

func (r *stubLeaseRepo) FindActiveByAssetTx(_ *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return r.matching(assetID, asOf, false), nil
}

func (r *stubLeaseRepo) FindLatestMatchingTx(_ *gorm.DB, assetID uuid.UUID, asOf time.Time) (*model.Lease, error) {
	return r.matching(assetID, asOf, true), nil
}

func (r *stubLeaseRepo) HasReturnTx(_ *gorm.DB, leaseID uuid.UUID) (bool, error) {
	return r.hasReturn(leaseID), nil
}

func (r *stubLeaseRepo) CreateTx(_ *gorm.DB, l *model.Lease) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.leases = append(r.leases, l)
	return nil
}

func (r *stubLeaseRepo) CreateReturnTx(_ *gorm.DB, lr *model.LeaseReturn) error {
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	r.returns = append(r.returns, lr)
	return nil
}

var _ repository.LeaseRepository = (*stubLeaseRepo)(nil)

// stubReservationRepo keeps reservations in a map.
type stubReservationRepo struct {
	reservations map[uuid.UUID]*model.Reservation
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{reservations: make(map[uuid.UUID]*model.Reservation)}
}

func (r *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return res, nil
}

func (r *stubReservationRepo) ListByAsset(_ context.Context, assetID uuid.UUID) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range r.reservations {
		if res.AssetID == assetID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (r *stubReservationRepo) CreateTx(_ *gorm.DB, res *model.Reservation) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	r.reservations[res.ID] = res
	return nil
}

func (r *stubReservationRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.reservations, id)
	return nil
}

func (r *stubReservationRepo) CountByAssetTx(_ *gorm.DB, assetID uuid.UUID) (int64, error) {
	var n int64
	for _, res := range r.reservations {
		if res.AssetID == assetID {
			n++
		}
	}
	return n, nil
}

var _ repository.ReservationRepository = (*stubReservationRepo)(nil)

// stubMoveRepo records created moves.
type stubMoveRepo struct {
	moves []*model.Move
}

func (r *stubMoveRepo) ListByAsset(_ context.Context, assetID uuid.UUID) ([]model.Move, error) {
	var out []model.Move
	for _, m := range r.moves {
		if m.AssetID == assetID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMoveRepo) CreateTx(_ *gorm.DB, m *model.Move) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.moves = append(r.moves, m)
	return nil
}

var _ repository.MoveRepository = (*stubMoveRepo)(nil)

// stubDisposalRepo records created disposals.
type stubDisposalRepo struct {
	disposals []*model.Disposal
}

func (r *stubDisposalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Disposal, error) {
	for _, d := range r.disposals {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubDisposalRepo) ListByAsset(_ context.Context, assetID uuid.UUID) ([]model.Disposal, error) {
	var out []model.Disposal
	for _, d := range r.disposals {
		if d.AssetID == assetID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDisposalRepo) CreateTx(_ *gorm.DB, d *model.Disposal) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.disposals = append(r.disposals, d)
	return nil
}

var _ repository.DisposalRepository = (*stubDisposalRepo)(nil)

// stubHistoryRepo records appended history entries.
type stubHistoryRepo struct {
	entries   []model.HistoryLog
	appendErr error
}

func (r *stubHistoryRepo) ListByAsset(_ context.Context, assetID uuid.UUID, _, _ int) ([]model.HistoryLog, int64, error) {
	var out []model.HistoryLog
	for _, e := range r.entries {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubHistoryRepo) AppendTx(_ *gorm.DB, entries []model.HistoryLog) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *stubHistoryRepo) forAsset(assetID uuid.UUID) []model.HistoryLog {
	var out []model.HistoryLog
	for _, e := range r.entries {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out
}

var _ repository.HistoryRepository = (*stubHistoryRepo)(nil)

// stubEmployeeRepo keeps employees in a map.
type stubEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
}

func (r *stubEmployeeRepo) add(name string) *model.Employee {
	e := &model.Employee{ID: uuid.New(), Name: name, Active: true}
	r.employees[e.ID] = e
	return e
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEmployeeRepo) List(_ context.Context, includeInactive bool) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.employees {
		if !includeInactive && !e.Active {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	e, ok := r.employees[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Active = false
	return nil
}

var _ repository.EmployeeRepository = (*stubEmployeeRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type engineFixture struct {
	svc          service.LifecycleService
	assets       *stubAssetRepo
	checkouts    *stubCheckoutRepo
	leases       *stubLeaseRepo
	reservations *stubReservationRepo
	moves        *stubMoveRepo
	disposals    *stubDisposalRepo
	history      *stubHistoryRepo
	employees    *stubEmployeeRepo
	notifier     *stubCheckoutNotifier
}

type stubCheckoutNotifier struct {
	calls []string
}

var _ service.CheckoutNotifier = (*stubCheckoutNotifier)(nil)

func (n *stubCheckoutNotifier) NotifyCheckoutConfirmation(_ context.Context, email, _ string, assetTags []string, _ *time.Time) error {
	n.calls = append(n.calls, email+":"+strings.Join(assetTags, ","))
	return nil
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		assets:       newStubAssetRepo(),
		checkouts:    &stubCheckoutRepo{},
		leases:       &stubLeaseRepo{},
		reservations: newStubReservationRepo(),
		moves:        &stubMoveRepo{},
		disposals:    &stubDisposalRepo{},
		history:      &stubHistoryRepo{},
		employees:    newStubEmployeeRepo(),
		notifier:     &stubCheckoutNotifier{},
	}
	f.svc = service.NewLifecycleService(
		f.assets, f.checkouts, f.leases, f.reservations,
		f.moves, f.disposals, f.history, f.employees, f.notifier,
	)
	return f
}

func historyFields(entries []model.HistoryLog) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Field)
	}
	return out
}

// ── Checkout / check-in ───────────────────────────────────────────────────────

func TestCheckoutHappyPath(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-001", Description: "Laptop", Location: "HQ"})
	emp := f.employees.add("Rivera")

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCheckedOut, asset.Status)
	require.Len(t, f.checkouts.active(asset.ID), 1)

	entries := f.history.forAsset(asset.ID)
	require.Len(t, entries, 2)
	assert.Contains(t, historyFields(entries), model.FieldStatus)
	assert.Contains(t, historyFields(entries), model.FieldAssignedEmployee)
	for _, e := range entries {
		assert.Equal(t, model.EventCheckout, e.EventType)
		assert.Equal(t, "tester", e.ActionBy)
	}

	// No email on file, so no confirmation is enqueued.
	assert.Empty(t, f.notifier.calls)
}

func TestCheckoutNotifiesEmployeeWithEmail(t *testing.T) {
	f := newEngineFixture()
	a1 := f.assets.add(&model.Asset{Tag: "A-010", Location: "HQ"})
	a2 := f.assets.add(&model.Asset{Tag: "A-011", Location: "HQ"})
	emp := f.employees.add("Rivera")
	email := "rivera@example.com"
	emp.Email = &email

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{a1.ID.String(), a2.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	})
	require.NoError(t, err)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "rivera@example.com:A-010,A-011", f.notifier.calls[0])
}

func TestCheckoutFailureSendsNoConfirmation(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-012", Status: model.StatusSold})
	emp := f.employees.add("Chen")
	email := "chen@example.com"
	emp.Email = &email

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	})
	require.ErrorIs(t, err, service.ErrInvalidState)
	assert.Empty(t, f.notifier.calls)
}

func TestCheckoutAppliesFieldUpdates(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-002", Location: "HQ", Department: "IT"})
	emp := f.employees.add("Chen")

	warehouse := "Warehouse"
	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
		Updates: map[string]dto.AssetFieldUpdates{
			asset.ID.String(): {Location: &warehouse},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Warehouse", asset.Location)
	// Unchanged department must not produce a history row.
	fields := historyFields(f.history.forAsset(asset.ID))
	assert.Contains(t, fields, model.FieldLocation)
	assert.NotContains(t, fields, model.FieldDepartment)
}

func TestCheckoutRejectsSecondActiveCheckout(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-003"})
	emp := f.employees.add("Rivera")

	req := dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	}
	require.NoError(t, f.svc.Checkout(context.Background(), "tester", req))

	before := len(f.history.forAsset(asset.ID))
	err := f.svc.Checkout(context.Background(), "tester", req)
	assert.ErrorIs(t, err, service.ErrInvalidState)
	assert.Len(t, f.history.forAsset(asset.ID), before)
	assert.Len(t, f.checkouts.active(asset.ID), 1)
}

func TestCheckoutRejectsDisposedAsset(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-004", Status: model.StatusScrapped})
	emp := f.employees.add("Rivera")

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestCheckoutUnknownEmployee(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-005"})

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   uuid.NewString(),
		CheckoutDate: "2026-03-02",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCheckinHappyPath(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-006", Location: "HQ"})
	emp := f.employees.add("Rivera")

	require.NoError(t, f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-03-02",
	}))

	storage := "Storage"
	err := f.svc.Checkin(context.Background(), "tester", dto.CheckinRequest{
		AssetIDs:    []string{asset.ID.String()},
		CheckinDate: "2026-03-10",
		Updates: map[string]dto.CheckinAssetUpdate{
			asset.ID.String(): {ReturnLocation: &storage},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusAvailable, asset.Status)
	assert.Equal(t, "Storage", asset.Location)
	assert.Empty(t, f.checkouts.active(asset.ID))
	require.Len(t, f.checkouts.checkins, 1)

	var checkinEntries []model.HistoryLog
	for _, e := range f.history.forAsset(asset.ID) {
		if e.EventType == model.EventCheckin {
			checkinEntries = append(checkinEntries, e)
		}
	}
	require.Len(t, checkinEntries, 3)
	for _, e := range checkinEntries {
		if e.Field == model.FieldAssignedEmployee {
			assert.Equal(t, "Rivera", e.ChangeFrom)
			assert.Equal(t, "", e.ChangeTo)
		}
	}
}

func TestCheckinRejectsNotCheckedOut(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-007"})

	err := f.svc.Checkin(context.Background(), "tester", dto.CheckinRequest{
		AssetIDs:    []string{asset.ID.String()},
		CheckinDate: "2026-03-10",
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)
	assert.Empty(t, f.history.forAsset(asset.ID))
}

// ── Move ──────────────────────────────────────────────────────────────────────

func TestMoveSameLocationEmitsNoHistory(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-010", Location: "HQ"})

	hq := "HQ"
	err := f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:  asset.ID.String(),
		MoveType: model.MoveTypeLocation,
		MoveDate: "2026-04-01",
		Location: &hq,
	})
	require.NoError(t, err)

	// The move record is always written, the history row only on change.
	assert.Len(t, f.moves.moves, 1)
	assert.Empty(t, f.history.forAsset(asset.ID))
}

func TestMoveLocationTransfer(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-011", Location: "HQ"})

	warehouse := "Warehouse"
	err := f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:  asset.ID.String(),
		MoveType: model.MoveTypeLocation,
		MoveDate: "2026-04-01",
		Location: &warehouse,
	})
	require.NoError(t, err)

	assert.Equal(t, "Warehouse", asset.Location)
	require.Len(t, f.moves.moves, 1)
	assert.Equal(t, "HQ", f.moves.moves[0].FromValue)
	assert.Equal(t, "Warehouse", f.moves.moves[0].ToValue)

	entries := f.history.forAsset(asset.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EventMove, entries[0].EventType)
	assert.Equal(t, model.FieldLocation, entries[0].Field)
}

func TestMoveRejectsMissingField(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-012"})

	err := f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:  asset.ID.String(),
		MoveType: model.MoveTypeLocation,
		MoveDate: "2026-04-01",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Empty(t, f.moves.moves)
}

func TestMoveRejectsLeasedAsset(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-013"})

	_, err := f.svc.Lease(context.Background(), "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-04-01",
	})
	require.NoError(t, err)

	warehouse := "Warehouse"
	err = f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:  asset.ID.String(),
		MoveType: model.MoveTypeLocation,
		MoveDate: "2026-04-15",
		Location: &warehouse,
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestMoveEmployeeAssignmentRetargetsActiveCheckout(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-014"})
	first := f.employees.add("Rivera")
	second := f.employees.add("Chen")

	require.NoError(t, f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   first.ID.String(),
		CheckoutDate: "2026-04-01",
	}))

	secondID := second.ID.String()
	err := f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:    asset.ID.String(),
		MoveType:   model.MoveTypeEmployee,
		MoveDate:   "2026-04-10",
		EmployeeID: &secondID,
	})
	require.NoError(t, err)

	// Still one active checkout, now pointing at the new employee.
	actives := f.checkouts.active(asset.ID)
	require.Len(t, actives, 1)
	assert.Equal(t, second.ID, *actives[0].EmployeeID)

	require.Len(t, f.moves.moves, 1)
	assert.Equal(t, "Rivera", f.moves.moves[0].FromValue)
	assert.Equal(t, "Chen", f.moves.moves[0].ToValue)
}

func TestMoveEmployeeAssignmentCreatesCheckout(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-015"})
	emp := f.employees.add("Rivera")

	empID := emp.ID.String()
	err := f.svc.Move(context.Background(), "tester", dto.MoveRequest{
		AssetID:    asset.ID.String(),
		MoveType:   model.MoveTypeEmployee,
		MoveDate:   "2026-04-10",
		EmployeeID: &empID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusCheckedOut, asset.Status)
	assert.Len(t, f.checkouts.active(asset.ID), 1)
}

// ── Reserve ───────────────────────────────────────────────────────────────────

func TestReserveCountSemantics(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-020"})
	emp := f.employees.add("Rivera")
	ctx := context.Background()

	empID := emp.ID.String()
	first, err := f.svc.Reserve(ctx, "tester", dto.ReserveRequest{
		AssetID:         asset.ID.String(),
		ReservationType: model.ReservationTypeEmployee,
		ReservationDate: "2026-05-01",
		EmployeeID:      &empID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusReserved, asset.Status)

	it := "IT"
	second, err := f.svc.Reserve(ctx, "tester", dto.ReserveRequest{
		AssetID:         asset.ID.String(),
		ReservationType: model.ReservationTypeDepartment,
		ReservationDate: "2026-05-02",
		Department:      &it,
	})
	require.NoError(t, err)

	// Only the first reservation flips the status, so only one status row.
	statusRows := 0
	for _, e := range f.history.forAsset(asset.ID) {
		if e.Field == model.FieldStatus {
			statusRows++
		}
	}
	assert.Equal(t, 1, statusRows)

	// Removing one of two reservations keeps the asset Reserved.
	firstID := uuid.MustParse(first.ID)
	require.NoError(t, f.svc.DeleteReservation(ctx, "tester", firstID))
	assert.Equal(t, model.StatusReserved, asset.Status)

	// Removing the last one releases it.
	secondID := uuid.MustParse(second.ID)
	require.NoError(t, f.svc.DeleteReservation(ctx, "tester", secondID))
	assert.Equal(t, model.StatusAvailable, asset.Status)

	last := f.history.forAsset(asset.ID)[len(f.history.forAsset(asset.ID))-1]
	assert.Equal(t, model.EventUnreserve, last.EventType)
}

func TestReserveRequiresTypeField(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-021"})

	_, err := f.svc.Reserve(context.Background(), "tester", dto.ReserveRequest{
		AssetID:         asset.ID.String(),
		ReservationType: model.ReservationTypeEmployee,
		ReservationDate: "2026-05-01",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestReserveRejectsDisposedAsset(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-022", Status: model.StatusSold})
	dept := "Facilities"

	_, err := f.svc.Reserve(context.Background(), "tester", dto.ReserveRequest{
		AssetID:         asset.ID.String(),
		ReservationType: model.ReservationTypeDepartment,
		Department:      &dept,
		ReservationDate: "2026-05-01",
	})
	require.ErrorIs(t, err, service.ErrInvalidState)

	assert.Equal(t, model.StatusSold, asset.Status)
	assert.Empty(t, f.history.forAsset(asset.ID))
}

func TestDeleteReservationNotFound(t *testing.T) {
	f := newEngineFixture()
	err := f.svc.DeleteReservation(context.Background(), "tester", uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

// ── Lease ─────────────────────────────────────────────────────────────────────

func TestLeaseLifecycle(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-030"})
	ctx := context.Background()

	_, err := f.svc.Lease(ctx, "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusLeased, asset.Status)

	// Leasing an already-leased asset fails.
	_, err = f.svc.Lease(ctx, "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Other Corp",
		LeaseStartDate: "2026-06-15",
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)

	// Return makes it available again.
	require.NoError(t, f.svc.LeaseReturn(ctx, "tester", dto.LeaseReturnRequest{
		AssetIDs:   []string{asset.ID.String()},
		ReturnDate: "2026-07-01",
	}))
	assert.Equal(t, model.StatusAvailable, asset.Status)

	// A second return of the same lease conflicts.
	err = f.svc.LeaseReturn(ctx, "tester", dto.LeaseReturnRequest{
		AssetIDs:   []string{asset.ID.String()},
		ReturnDate: "2026-07-02",
	})
	assert.ErrorIs(t, err, service.ErrConflict)

	// And a fresh lease succeeds after the return.
	_, err = f.svc.Lease(ctx, "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-08-01",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusLeased, asset.Status)
}

func TestLeaseEmitsNoHistory(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-031"})

	_, err := f.svc.Lease(context.Background(), "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-06-01",
	})
	require.NoError(t, err)
	assert.Empty(t, f.history.forAsset(asset.ID))
}

func TestLeaseRejectsEndBeforeStart(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-032"})

	end := "2026-05-01"
	_, err := f.svc.Lease(context.Background(), "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-06-01",
		LeaseEndDate:   &end,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestLeaseRequiresAvailable(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-033"})
	emp := f.employees.add("Rivera")

	require.NoError(t, f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-06-01",
	}))

	_, err := f.svc.Lease(context.Background(), "tester", dto.LeaseRequest{
		AssetID:        asset.ID.String(),
		Lessee:         "Acme Staffing",
		LeaseStartDate: "2026-06-02",
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

// ── Dispose ───────────────────────────────────────────────────────────────────

func TestDisposeSoldRequiresValue(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-040"})

	err := f.svc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		AssetIDs:      []string{asset.ID.String()},
		DisposeDate:   "2026-07-01",
		DisposeReason: model.StatusSold,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
	// Nothing written — the check runs before any persistence.
	assert.Empty(t, f.disposals.disposals)
	assert.Equal(t, model.StatusAvailable, asset.Status)
}

func TestDisposeSoldWithCommonValue(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-041", Location: "HQ", Department: "IT", Site: "Manila"})

	value := decimal.NewFromInt(150)
	err := f.svc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		AssetIDs:      []string{asset.ID.String()},
		DisposeDate:   "2026-07-01",
		DisposeReason: model.StatusSold,
		CommonValue:   &value,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSold, asset.Status)
	assert.Empty(t, asset.Location)
	assert.Empty(t, asset.Department)
	assert.Empty(t, asset.Site)
	require.Len(t, f.disposals.disposals, 1)
	assert.True(t, f.disposals.disposals[0].Value.Equal(value))
}

func TestDisposePerAssetValueOverridesCommon(t *testing.T) {
	f := newEngineFixture()
	a1 := f.assets.add(&model.Asset{Tag: "A-042"})
	a2 := f.assets.add(&model.Asset{Tag: "A-043"})

	common := decimal.NewFromInt(100)
	special := decimal.NewFromInt(250)
	err := f.svc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		AssetIDs:      []string{a1.ID.String(), a2.ID.String()},
		DisposeDate:   "2026-07-01",
		DisposeReason: model.StatusSold,
		CommonValue:   &common,
		PerAsset: []dto.DisposeAssetValue{
			{AssetID: a2.ID.String(), Value: &special},
		},
	})
	require.NoError(t, err)

	byAsset := make(map[uuid.UUID]decimal.Decimal)
	for _, d := range f.disposals.disposals {
		byAsset[d.AssetID] = *d.Value
	}
	assert.True(t, byAsset[a1.ID].Equal(common))
	assert.True(t, byAsset[a2.ID].Equal(special))
}

func TestDisposeClosesActiveCheckouts(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-044"})
	emp := f.employees.add("Rivera")
	ctx := context.Background()

	require.NoError(t, f.svc.Checkout(ctx, "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-07-01",
	}))
	historyBefore := len(f.history.forAsset(asset.ID))

	err := f.svc.Dispose(ctx, "tester", dto.DisposeRequest{
		AssetIDs:      []string{asset.ID.String()},
		DisposeDate:   "2026-07-15",
		DisposeReason: model.StatusScrapped,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusScrapped, asset.Status)
	assert.Empty(t, f.checkouts.active(asset.ID))
	// Disposal writes no history rows of its own.
	assert.Len(t, f.history.forAsset(asset.ID), historyBefore)
}

func TestDisposeRejectsAlreadyDisposed(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-045", Status: model.StatusDonated})

	err := f.svc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		AssetIDs:      []string{asset.ID.String()},
		DisposeDate:   "2026-07-01",
		DisposeReason: model.StatusScrapped,
	})
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestDisposeRejectsUnknownReason(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-046"})

	err := f.svc.Dispose(context.Background(), "tester", dto.DisposeRequest{
		AssetIDs:      []string{asset.ID.String()},
		DisposeDate:   "2026-07-01",
		DisposeReason: "Recycled",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestBatchFailsOnMissingAsset(t *testing.T) {
	f := newEngineFixture()
	asset := f.assets.add(&model.Asset{Tag: "A-047"})
	emp := f.employees.add("Rivera")

	err := f.svc.Checkout(context.Background(), "tester", dto.CheckoutRequest{
		AssetIDs:     []string{asset.ID.String(), uuid.NewString()},
		EmployeeID:   emp.ID.String(),
		CheckoutDate: "2026-07-01",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
