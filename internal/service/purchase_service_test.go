package service

import (
	"context"
	"testing"

	"pos-service/config"
	"pos-service/internal/apperrors"
	"pos-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore implements PurchaseStore for testing
type mockStore struct {
	products     map[string]*models.Product
	createErr    error
	nextID       int64
	createCalls  int
	lastTxn      *models.Transaction
	lastItems    []models.PurchaseItem
}

func (m *mockStore) GetProductByCode(_ context.Context, code string) (*models.Product, error) {
	if p, ok := m.products[code]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("product", code)
}

func (m *mockStore) CreatePurchase(_ context.Context, txn *models.Transaction, items []models.PurchaseItem) error {
	m.createCalls++
	m.lastTxn = txn
	m.lastItems = items
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	txn.ID = m.nextID
	return nil
}

// mockPublisher implements PurchasePublisher for testing
type mockPublisher struct {
	events     []*models.PurchaseRecordedEvent
	publishErr error
}

func (m *mockPublisher) PublishPurchaseRecorded(_ context.Context, event *models.PurchaseRecordedEvent) error {
	m.events = append(m.events, event)
	return m.publishErr
}

func testBusinessConfig() config.BusinessConfig {
	return config.BusinessConfig{
		DefaultStoreCode: "30",
		DefaultPosNo:     "90",
		Timezone:         "Asia/Tokyo",
	}
}

func newTestService(t *testing.T, store *mockStore, publisher *mockPublisher) *PurchaseService {
	t.Helper()
	svc, err := NewPurchaseService(store, publisher, testBusinessConfig())
	require.NoError(t, err)
	return svc
}

func TestRecordPurchase_Success(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items: []PurchaseItemRequest{
			{Code: "11111111111", Name: "Dummy A", Price: 100, Quantity: 1},
		},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Positive(t, resp.TransactionID)
	assert.Equal(t, int64(100), resp.TotalAmount)

	require.NotNil(t, store.lastTxn)
	assert.Equal(t, "E001", store.lastTxn.EmpCode)
	assert.Equal(t, int64(100), store.lastTxn.TotalAmount)
	require.Len(t, store.lastItems, 1)
	assert.Equal(t, int64(100), store.lastItems[0].Price)
}

func TestRecordPurchase_DefaultsApplied(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	_, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "30", store.lastTxn.StoreCode)
	assert.Equal(t, "90", store.lastTxn.PosNo)
}

func TestRecordPurchase_ExplicitCodesKept(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode:   "E001",
		StoreCode: "55",
		PosNo:     "12",
		Items:     []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	_, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "55", store.lastTxn.StoreCode)
	assert.Equal(t, "12", store.lastTxn.PosNo)
}

func TestRecordPurchase_TotalAcrossQuantities(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items: []PurchaseItemRequest{
			{Code: "11111111111", Name: "Dummy A", Price: 100, Quantity: 2},
			{Code: "22222222222", Name: "Dummy B", Price: 200, Quantity: 1},
		},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(400), resp.TotalAmount)

	// Item order flows through to the store unchanged.
	require.Len(t, store.lastItems, 2)
	assert.Equal(t, "11111111111", store.lastItems[0].Code)
	assert.Equal(t, "22222222222", store.lastItems[1].Code)
}

func TestRecordPurchase_QuantityDefaultsToOne(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 150}},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(150), resp.TotalAmount)
	assert.Equal(t, 1, store.lastItems[0].Quantity)
}

func TestRecordPurchase_EmptyCart(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{EmpCode: "E001"}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, resp)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "cart is empty")

	// No store access, no events.
	assert.Zero(t, store.createCalls)
	assert.Empty(t, publisher.events)
}

func TestRecordPurchase_NegativePrice(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: -5, Quantity: 1}},
	}

	_, err := svc.RecordPurchase(context.Background(), req)

	var validationErr *apperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, store.createCalls)
}

func TestRecordPurchase_UnknownProductCode(t *testing.T) {
	store := &mockStore{createErr: apperrors.NewNotFoundError("product", "99999999999")}
	publisher := &mockPublisher{}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "99999999999", Name: "Ghost", Price: 100, Quantity: 1}},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, resp)

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Contains(t, err.Error(), "99999999999")

	assert.Empty(t, publisher.events)
}

func TestRecordPurchase_StoreFailure(t *testing.T) {
	store := &mockStore{createErr: apperrors.NewStoreError("insert transaction", assert.AnError)}
	publisher := &mockPublisher{}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	_, err := svc.RecordPurchase(context.Background(), req)

	var storeErr *apperrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, publisher.events)
}

func TestRecordPurchase_NotIdempotent(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	first, err := svc.RecordPurchase(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.RecordPurchase(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
}

func TestRecordPurchase_TimestampInBusinessTimezone(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store, &mockPublisher{})

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	_, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", store.lastTxn.TransactionAt.Location().String())
}

func TestRecordPurchase_PublishesEvent(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items: []PurchaseItemRequest{
			{Code: "11111111111", Name: "Dummy A", Price: 100, Quantity: 2},
		},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, models.EventTypePurchaseRecorded, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, resp.TransactionID, event.TransactionID)
	assert.Equal(t, int64(200), event.TotalAmount)
	require.Len(t, event.Items, 1)
	assert.Equal(t, 2, event.Items[0].Quantity)
}

func TestRecordPurchase_PublishFailureDoesNotFailPurchase(t *testing.T) {
	store := &mockStore{}
	publisher := &mockPublisher{publishErr: assert.AnError}
	svc := newTestService(t, store, publisher)

	req := &PurchaseRequest{
		EmpCode: "E001",
		Items:   []PurchaseItemRequest{{Code: "1", Name: "A", Price: 10, Quantity: 1}},
	}

	resp, err := svc.RecordPurchase(context.Background(), req)

	require.NoError(t, err)
	assert.Positive(t, resp.TransactionID)
}

func TestNewPurchaseService_InvalidTimezone(t *testing.T) {
	cfg := testBusinessConfig()
	cfg.Timezone = "Not/AZone"

	_, err := NewPurchaseService(&mockStore{}, &mockPublisher{}, cfg)

	require.Error(t, err)
}

func TestGetProduct_Found(t *testing.T) {
	store := &mockStore{products: map[string]*models.Product{
		"11111111111": {ID: 1, Code: "11111111111", Name: "Dummy A", Price: 100},
	}}
	svc := newTestService(t, store, &mockPublisher{})

	product, err := svc.GetProduct(context.Background(), "11111111111")

	require.NoError(t, err)
	assert.Equal(t, "Dummy A", product.Name)
	assert.Equal(t, int64(100), product.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	store := &mockStore{products: map[string]*models.Product{}}
	svc := newTestService(t, store, &mockPublisher{})

	_, err := svc.GetProduct(context.Background(), "00000000000")

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
