package store

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"fmt"
	"time"

	"pos-service/internal/apperrors"
	"pos-service/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// tlsConfigName is the key under which the CA material is registered with the
// mysql driver.
const tlsConfigName = "managed"

type Store struct {
	db *sqlx.DB
}

// NewStore opens the MySQL connection pool. caCertPEM, when non-empty, is the
// CA certificate for the managed database endpoint; it is handed to the driver
// in memory, never written to disk.
func NewStore(dsn, caCertPEM string) (*Store, error) {
	dsn, err := buildDSN(dsn, caCertPEM)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// buildDSN normalizes the DSN and registers the TLS material when present.
func buildDSN(dsn, caCertPEM string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database DSN: %w", err)
	}
	cfg.ParseTime = true

	if caCertPEM != "" {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM([]byte(caCertPEM)) {
			return "", fmt.Errorf("failed to parse database CA certificate")
		}
		if err := mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{RootCAs: pool}); err != nil {
			return "", fmt.Errorf("failed to register TLS config: %w", err)
		}
		cfg.TLSConfig = tlsConfigName
	}

	return cfg.FormatDSN(), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByCode retrieves a product by its public code
func (s *Store) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT id, code, name, price FROM products WHERE code = ?", code)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("product", code)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get product", err)
	}
	return &product, nil
}
