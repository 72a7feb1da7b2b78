package models

import "time"

// Product represents an item in the product master. Rows are maintained by a
// separate administrative path; this service only reads them.
type Product struct {
	ID    int64  `db:"id" json:"id"`
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Price int64  `db:"price" json:"price"`
}

// Transaction is the header row recorded once per purchase. TotalAmount is a
// frozen snapshot computed at recording time, never recomputed from details.
type Transaction struct {
	ID            int64     `db:"id" json:"id"`
	TransactionAt time.Time `db:"transaction_at" json:"transaction_at"`
	EmpCode       string    `db:"emp_code" json:"emp_code"`
	StoreCode     string    `db:"store_code" json:"store_code"`
	PosNo         string    `db:"pos_no" json:"pos_no"`
	TotalAmount   int64     `db:"total_amount" json:"total_amount"`
}

// TransactionDetail is one line item of a purchase. Code, name and price are
// snapshots taken at transaction time, intentionally decoupled from later
// changes to the product master.
type TransactionDetail struct {
	ID            int64  `db:"id" json:"id"`
	TransactionID int64  `db:"transaction_id" json:"transaction_id"`
	ProductID     int64  `db:"product_id" json:"product_id"`
	PrdCode       string `db:"prd_code" json:"prd_code"`
	PrdName       string `db:"prd_name" json:"prd_name"`
	PrdPrice      int64  `db:"prd_price" json:"prd_price"`
}

// PurchaseItem is one cart line as supplied by the caller. Quantity only
// contributes to the total; each line still yields exactly one detail row.
type PurchaseItem struct {
	Code     string
	Name     string
	Price    int64
	Quantity int
}
