package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/config"
	"pos-service/internal/apperrors"
	"pos-service/internal/models"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseStore is the store surface the service needs. *store.Store
// satisfies it; tests substitute a mock.
type PurchaseStore interface {
	GetProductByCode(ctx context.Context, code string) (*models.Product, error)
	CreatePurchase(ctx context.Context, txn *models.Transaction, items []models.PurchaseItem) error
}

// PurchasePublisher publishes domain events after a purchase commits.
type PurchasePublisher interface {
	PublishPurchaseRecorded(ctx context.Context, event *models.PurchaseRecordedEvent) error
}

// PurchaseService handles product lookup and purchase recording
type PurchaseService struct {
	store     PurchaseStore
	publisher PurchasePublisher
	defaults  config.BusinessConfig
	location  *time.Location
	logger    *zap.Logger
}

// NewPurchaseService creates a new purchase service. The business timezone is
// resolved once here; an unknown zone name is a startup error.
func NewPurchaseService(store PurchaseStore, publisher PurchasePublisher, business config.BusinessConfig) (*PurchaseService, error) {
	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", business.Timezone, err)
	}

	return &PurchaseService{
		store:     store,
		publisher: publisher,
		defaults:  business,
		location:  loc,
		logger:    util.GetLogger(),
	}, nil
}

// PurchaseRequest represents a request to record a purchase
type PurchaseRequest struct {
	EmpCode   string                `json:"emp_cd" binding:"required"`
	StoreCode string                `json:"store_cd"`
	PosNo     string                `json:"pos_no"`
	Items     []PurchaseItemRequest `json:"items"`
}

// PurchaseItemRequest represents one cart line in a purchase request. Price
// and name are trusted as supplied; they become the receipt snapshot.
type PurchaseItemRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"min=0"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1"`
}

// PurchaseResponse represents the result of recording a purchase
type PurchaseResponse struct {
	TransactionID int64 `json:"trd_id"`
	TotalAmount   int64 `json:"total_amt"`
}

// RecordPurchase validates the request, then writes the header and detail
// rows as one atomic unit of work. On success a PurchaseRecorded event is
// published best-effort; publish failures never fail the purchase.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := util.StartSpan(ctx, "PurchaseService.RecordPurchase")
	defer span.End()

	start := time.Now()
	defer func() {
		util.PurchaseRecordLatency.Observe(time.Since(start).Seconds())
	}()

	items, totalAmount, err := s.validateItems(req.Items)
	if err != nil {
		util.PurchasesFailedTotal.WithLabelValues("invalid_request").Inc()
		return nil, err
	}

	storeCode := req.StoreCode
	if storeCode == "" {
		storeCode = s.defaults.DefaultStoreCode
	}
	posNo := req.PosNo
	if posNo == "" {
		posNo = s.defaults.DefaultPosNo
	}

	txn := &models.Transaction{
		TransactionAt: time.Now().In(s.location),
		EmpCode:       req.EmpCode,
		StoreCode:     storeCode,
		PosNo:         posNo,
		TotalAmount:   totalAmount,
	}

	if err := s.store.CreatePurchase(ctx, txn, items); err != nil {
		util.PurchasesFailedTotal.WithLabelValues(failureReason(err)).Inc()
		s.logger.Warn("Purchase recording failed",
			zap.String("emp_code", req.EmpCode),
			zap.Error(err))
		return nil, err
	}

	util.PurchasesRecordedTotal.Inc()
	s.logger.Info("Purchase recorded",
		zap.Int64("transaction_id", txn.ID),
		zap.Int64("total_amount", totalAmount),
		zap.Int("item_count", len(items)))

	s.publishPurchaseRecorded(ctx, txn, req.Items)

	return &PurchaseResponse{
		TransactionID: txn.ID,
		TotalAmount:   totalAmount,
	}, nil
}

// validateItems checks the cart before any store access and computes the
// total from the caller-supplied prices.
func (s *PurchaseService) validateItems(reqItems []PurchaseItemRequest) ([]models.PurchaseItem, int64, error) {
	if len(reqItems) == 0 {
		return nil, 0, apperrors.NewValidationError("cart is empty")
	}

	items := make([]models.PurchaseItem, 0, len(reqItems))
	var total int64
	for i, item := range reqItems {
		if item.Code == "" {
			return nil, 0, apperrors.NewValidationError(fmt.Sprintf("item %d: product code is required", i))
		}
		if item.Price < 0 {
			return nil, 0, apperrors.NewValidationError(fmt.Sprintf("item %d: price must not be negative", i))
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return nil, 0, apperrors.NewValidationError(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}

		total += item.Price * int64(quantity)
		items = append(items, models.PurchaseItem{
			Code:     item.Code,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
		})
	}
	return items, total, nil
}

func (s *PurchaseService) publishPurchaseRecorded(ctx context.Context, txn *models.Transaction, reqItems []PurchaseItemRequest) {
	eventItems := make([]models.PurchaseItemData, 0, len(reqItems))
	for _, item := range reqItems {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		eventItems = append(eventItems, models.PurchaseItemData{
			Code:     item.Code,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: quantity,
		})
	}

	event := &models.PurchaseRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePurchaseRecorded,
			Timestamp: time.Now(),
		},
		TransactionID: txn.ID,
		EmpCode:       txn.EmpCode,
		StoreCode:     txn.StoreCode,
		PosNo:         txn.PosNo,
		TotalAmount:   txn.TotalAmount,
		Items:         eventItems,
	}

	if err := s.publisher.PublishPurchaseRecorded(ctx, event); err != nil {
		s.logger.Error("Failed to publish PurchaseRecorded event",
			zap.Int64("transaction_id", txn.ID),
			zap.Error(err))
	}
}

// GetProduct looks up a product by its public code
func (s *PurchaseService) GetProduct(ctx context.Context, code string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "PurchaseService.GetProduct")
	defer span.End()

	product, err := s.store.GetProductByCode(ctx, code)
	if err != nil {
		util.ProductLookupsTotal.WithLabelValues("miss").Inc()
		return nil, err
	}

	util.ProductLookupsTotal.WithLabelValues("hit").Inc()
	return product, nil
}

func failureReason(err error) string {
	var notFound *apperrors.NotFoundError
	var internal *apperrors.InternalError
	switch {
	case errors.As(err, &notFound):
		return "product_not_found"
	case errors.As(err, &internal):
		return "store_integrity"
	default:
		return "store_error"
	}
}
