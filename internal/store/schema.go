package store

import (
	"context"
	"fmt"

	"pos-service/internal/models"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id     BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		code   VARCHAR(50)  NOT NULL,
		name   VARCHAR(255) NOT NULL,
		price  INT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_products_code (code)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		transaction_at DATETIME     NOT NULL,
		emp_code       VARCHAR(10)  NOT NULL,
		store_code     VARCHAR(10)  NOT NULL,
		pos_no         VARCHAR(10)  NOT NULL,
		total_amount   INT          NOT NULL,
		PRIMARY KEY (id)
	)`,
	`CREATE TABLE IF NOT EXISTS transaction_details (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		transaction_id BIGINT UNSIGNED NOT NULL,
		product_id     BIGINT UNSIGNED NOT NULL,
		prd_code       VARCHAR(50),
		prd_name       VARCHAR(255),
		prd_price      INT,
		PRIMARY KEY (id),
		CONSTRAINT fk_details_transaction FOREIGN KEY (transaction_id) REFERENCES transactions (id),
		CONSTRAINT fk_details_product FOREIGN KEY (product_id) REFERENCES products (id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet. Product master
// content itself arrives through a separate administrative path.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SeedProducts inserts products into the master, skipping codes that already
// exist. Used by local setups and integration tests.
func (s *Store) SeedProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		_, err := s.db.ExecContext(ctx,
			"INSERT IGNORE INTO products (code, name, price) VALUES (?, ?, ?)",
			p.Code, p.Name, p.Price)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.Code, err)
		}
	}
	return nil
}
