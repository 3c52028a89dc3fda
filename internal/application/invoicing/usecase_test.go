package invoicing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaltours/invoice-api/internal/application/dto"
	"github.com/globaltours/invoice-api/internal/domain"
	"github.com/globaltours/invoice-api/internal/domain/entity"
)

// ── fakes ──

type fakeInvoiceRepo struct {
	byID   map[string]*entity.Invoice
	order  []string // newest first
	maxNum int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if _, ok := r.byID[inv.ID]; ok {
		return domain.ErrConflict
	}
	r.byID[inv.ID] = inv
	r.order = append([]string{inv.ID}, r.order...)
	if inv.InvoiceNumber > r.maxNum {
		r.maxNum = inv.InvoiceNumber
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.byID[id], nil
}

func (r *fakeInvoiceRepo) ListAll() ([]*entity.Invoice, error) {
	out := make([]*entity.Invoice, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) GetMaxInvoiceNumber() (int, error) { return r.maxNum, nil }

type memoryDraftStore struct {
	data map[string][]byte
}

func newMemoryDraftStore() *memoryDraftStore {
	return &memoryDraftStore{data: map[string][]byte{}}
}

func (s *memoryDraftStore) Save(_ context.Context, key string, data []byte) error {
	s.data[key] = data
	return nil
}

func (s *memoryDraftStore) Load(_ context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memoryDraftStore) Clear(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func validRequest() dto.SaveInvoiceRequest {
	return dto.SaveInvoiceRequest{
		InvoiceDate:    "2025-01-15",
		CustomerName:   "Asha Patil",
		CustomerPhone:  "9876543210",
		PickupLocation: "Mumbai Airport",
		Destination:    "Pune Station",
		TripType:       entity.TripOneWay,
		FareAmount:     decimal.NewFromInt(2500),
		PaymentMode:    entity.PaymentCash,
	}
}

// ── create ──

func TestCreate_AssignsNextNumber(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.maxNum = 41
	uc := NewInvoiceUseCase(repo, nil)

	inv, err := uc.Create(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, 42, inv.InvoiceNumber)
	assert.NotEmpty(t, inv.ID)
}

func TestCreate_RecomputesTotalIgnoringClient(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo, nil)

	in := validRequest()
	in.FareAmount = decimal.NewFromInt(2000)
	in.DriverAllowance = decimal.NewFromInt(300)
	in.Charges = []dto.ChargeDTO{
		{Type: "Toll", Amount: decimal.NewFromInt(120)},
		{Type: "Parking", Amount: decimal.NewFromInt(80)},
	}

	inv, err := uc.Create(context.Background(), "u1", in)

	require.NoError(t, err)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(2500)),
		"got %s", inv.TotalAmount)
}

func TestCreate_ClearsDraftOnSuccess(t *testing.T) {
	repo := newFakeInvoiceRepo()
	store := newMemoryDraftStore()
	drafts := NewDraftUseCase(store)
	uc := NewInvoiceUseCase(repo, drafts)

	require.NoError(t, drafts.Save(context.Background(), "u1", &dto.InvoiceDraft{CustomerName: "Asha"}))

	_, err := uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	draft, err := drafts.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, draft, "draft slot should be cleared after create")
}

func TestCreate_KeepsDraftOnValidationFailure(t *testing.T) {
	repo := newFakeInvoiceRepo()
	store := newMemoryDraftStore()
	drafts := NewDraftUseCase(store)
	uc := NewInvoiceUseCase(repo, drafts)

	require.NoError(t, drafts.Save(context.Background(), "u1", &dto.InvoiceDraft{CustomerName: "Asha"}))

	in := validRequest()
	in.CustomerName = ""
	_, err := uc.Create(context.Background(), "u1", in)
	require.Error(t, err)

	draft, err := drafts.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, draft, "failed submission must not clear the draft")
}

// ── trip-type field exclusion ──

func TestCreate_LocalTripDropsStops(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	in := validRequest()
	in.TripType = entity.TripLocal
	in.Stops = []dto.StopDTO{{Location: "Lonavala"}}
	in.TotalKm = 80
	in.TotalHours = 8

	inv, err := uc.Create(context.Background(), "u1", in)

	require.NoError(t, err)
	assert.Empty(t, inv.Stops)
	assert.Equal(t, 80.0, inv.TotalKm)
	assert.Equal(t, 8.0, inv.TotalHours)
}

func TestCreate_OutstationTripDropsUsage(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	in := validRequest()
	in.TripType = entity.TripRoundTrip
	in.Stops = []dto.StopDTO{{Location: "Lonavala"}}
	in.TotalKm = 80
	in.TotalHours = 8

	inv, err := uc.Create(context.Background(), "u1", in)

	require.NoError(t, err)
	require.Len(t, inv.Stops, 1)
	assert.Zero(t, inv.TotalKm)
	assert.Zero(t, inv.TotalHours)
	assert.Equal(t, entity.JourneyTwoWay, inv.JourneyType)
}

// ── validation ──

func TestCreate_Validation(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	cases := []struct {
		name   string
		mutate func(*dto.SaveInvoiceRequest)
	}{
		{"missing customer name", func(r *dto.SaveInvoiceRequest) { r.CustomerName = " " }},
		{"short phone", func(r *dto.SaveInvoiceRequest) { r.CustomerPhone = "98765" }},
		{"missing pickup", func(r *dto.SaveInvoiceRequest) { r.PickupLocation = "" }},
		{"missing destination", func(r *dto.SaveInvoiceRequest) { r.Destination = "" }},
		{"bad payment mode", func(r *dto.SaveInvoiceRequest) { r.PaymentMode = "cheque" }},
		{"bad invoice date", func(r *dto.SaveInvoiceRequest) { r.InvoiceDate = "15-01-2025" }},
		{"bad return date", func(r *dto.SaveInvoiceRequest) { r.ReturnDate = "soon" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRequest()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), "u1", in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestCreate_JourneyDateDefaultsToInvoiceDate(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	inv, err := uc.Create(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceDate, inv.JourneyDate)
	assert.True(t, inv.ReturnDate.IsZero())
}

func TestCreate_ClampsNegativeAmounts(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	in := validRequest()
	in.FareAmount = decimal.NewFromInt(-500)
	in.DriverAllowance = decimal.NewFromInt(-100)
	in.StartingKm = -10

	inv, err := uc.Create(context.Background(), "u1", in)

	require.NoError(t, err)
	assert.True(t, inv.FareAmount.IsZero())
	assert.True(t, inv.TotalAmount.IsZero())
	assert.Zero(t, inv.StartingKm)
}

// ── update ──

func TestUpdate_PreservesIdentityAndResetsToll(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo, nil)

	created, err := uc.Create(context.Background(), "u1", validRequest())
	require.NoError(t, err)

	// Simulate a legacy row carrying a toll amount.
	created.TollAmount = decimal.NewFromInt(200)

	in := validRequest()
	in.CustomerName = "Asha P"
	in.FareAmount = decimal.NewFromInt(3000)

	updated, err := uc.Update(context.Background(), created.ID, in)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Asha P", updated.CustomerName)
	assert.True(t, updated.TollAmount.IsZero(), "resubmission resets the legacy toll")
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(3000)))
}

func TestUpdate_NotFound(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	_, err := uc.Update(context.Background(), "missing", validRequest())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── list / search ──

func TestList_FiltersByQuery(t *testing.T) {
	repo := newFakeInvoiceRepo()
	uc := NewInvoiceUseCase(repo, nil)

	first := validRequest()
	_, err := uc.Create(context.Background(), "u1", first)
	require.NoError(t, err)

	second := validRequest()
	second.CustomerName = "Rohit Kumar"
	second.CustomerPhone = "9123456780"
	_, err = uc.Create(context.Background(), "u1", second)
	require.NoError(t, err)

	all, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rohit Kumar", all[0].CustomerName, "newest first")

	byName, err := uc.List(context.Background(), "rohit")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byPhone, err := uc.List(context.Background(), "912345")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)

	byNumber, err := uc.List(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, 2, byNumber[0].InvoiceNumber)
}

// ── delete / next number ──

func TestDelete_NotFound(t *testing.T) {
	uc := NewInvoiceUseCase(newFakeInvoiceRepo(), nil)

	assert.ErrorIs(t, uc.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestNextNumber(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.maxNum = 6
	uc := NewInvoiceUseCase(repo, nil)

	n, err := uc.NextNumber(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
