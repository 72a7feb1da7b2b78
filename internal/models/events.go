package models

import "time"

// Event types
const (
	EventTypePurchaseRecorded = "PURCHASE_RECORDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// PurchaseRecordedEvent is published after a purchase unit of work commits
type PurchaseRecordedEvent struct {
	BaseEvent
	TransactionID int64              `json:"transaction_id"`
	EmpCode       string             `json:"emp_code"`
	StoreCode     string             `json:"store_code"`
	PosNo         string             `json:"pos_no"`
	TotalAmount   int64              `json:"total_amount"`
	Items         []PurchaseItemData `json:"items"`
}

// PurchaseItemData represents one line item in a purchase event
type PurchaseItemData struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}
