package store

import (
	"context"
	"database/sql"
	"strconv"

	"pos-service/internal/apperrors"
	"pos-service/internal/models"
)

const (
	insertTransactionQuery = `
		INSERT INTO transactions (transaction_at, emp_code, store_code, pos_no, total_amount)
		VALUES (?, ?, ?, ?, ?)`

	selectProductIDQuery = `SELECT id FROM products WHERE code = ?`

	insertDetailQuery = `
		INSERT INTO transaction_details (transaction_id, product_id, prd_code, prd_name, prd_price)
		VALUES (?, ?, ?, ?, ?)`
)

// CreatePurchase writes the transaction header and one detail row per item as
// a single database transaction. Every failure path rolls back the whole
// unit of work; on success txn.ID carries the generated identifier.
//
// Product identifiers are resolved by public code inside the same transaction
// so the detail rows see a consistent view of the product master. The detail
// snapshot (code, name, price) comes from the caller, not from the master,
// which is what preserves point-in-time receipt data.
func (s *Store) CreatePurchase(ctx context.Context, txn *models.Transaction, items []models.PurchaseItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewStoreError("begin transaction", err)
	}
	// No-op after a successful commit.
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertTransactionQuery,
		txn.TransactionAt, txn.EmpCode, txn.StoreCode, txn.PosNo, txn.TotalAmount)
	if err != nil {
		return apperrors.NewStoreError("insert transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		// The store not reporting a generated key is an integrity fault,
		// not a retryable condition.
		return apperrors.NewInternalError("transaction id was not generated")
	}
	txn.ID = id

	for _, item := range items {
		var productID int64
		err := tx.GetContext(ctx, &productID, selectProductIDQuery, item.Code)
		if err == sql.ErrNoRows {
			return apperrors.NewNotFoundError("product", item.Code)
		}
		if err != nil {
			return apperrors.NewStoreError("resolve product id", err)
		}

		_, err = tx.ExecContext(ctx, insertDetailQuery,
			txn.ID, productID, item.Code, item.Name, item.Price)
		if err != nil {
			return apperrors.NewStoreError("insert transaction detail", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStoreError("commit transaction", err)
	}
	return nil
}

// GetTransactionByID retrieves a transaction header by identifier
func (s *Store) GetTransactionByID(ctx context.Context, id int64) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.GetContext(ctx, &txn,
		"SELECT id, transaction_at, emp_code, store_code, pos_no, total_amount FROM transactions WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("transaction", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get transaction", err)
	}
	return &txn, nil
}

// GetDetailsByTransactionID retrieves the detail rows of a transaction in
// insertion order.
func (s *Store) GetDetailsByTransactionID(ctx context.Context, transactionID int64) ([]models.TransactionDetail, error) {
	var details []models.TransactionDetail
	err := s.db.SelectContext(ctx, &details,
		"SELECT id, transaction_id, product_id, prd_code, prd_name, prd_price FROM transaction_details WHERE transaction_id = ? ORDER BY id",
		transactionID)
	if err != nil {
		return nil, apperrors.NewStoreError("get transaction details", err)
	}
	return details, nil
}
