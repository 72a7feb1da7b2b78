package worker

import (
	"context"
	"log"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// JournalWorker consumes purchase events and maintains the sales journal:
// one structured log line per purchase plus per-store sales metrics.
type JournalWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewJournalWorker creates a new journal worker
func NewJournalWorker(consumer *broker.Consumer) *JournalWorker {
	w := &JournalWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnPurchaseRecorded(w.handlePurchaseRecorded)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *JournalWorker) Start(ctx context.Context) error {
	log.Println("Starting journal worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *JournalWorker) Stop() error {
	log.Println("Stopping journal worker...")
	return w.consumer.Close()
}

func (w *JournalWorker) handlePurchaseRecorded(ctx context.Context, event *models.PurchaseRecordedEvent) error {
	itemCount := 0
	for _, item := range event.Items {
		itemCount += item.Quantity
	}

	util.SalesAmountTotal.WithLabelValues(event.StoreCode).Add(float64(event.TotalAmount))
	util.SalesItemsTotal.WithLabelValues(event.StoreCode).Add(float64(itemCount))

	w.logger.Info("Sales journal entry",
		zap.Int64("transaction_id", event.TransactionID),
		zap.String("emp_code", event.EmpCode),
		zap.String("store_code", event.StoreCode),
		zap.String("pos_no", event.PosNo),
		zap.Int64("total_amount", event.TotalAmount),
		zap.Int("items_sold", itemCount))

	return nil
}
