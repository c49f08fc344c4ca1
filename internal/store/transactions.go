package store

import (
	"context"
	"fmt"

	"sales-service/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS sales_transactions (
	seq                 BIGSERIAL PRIMARY KEY,
	transaction_id      TEXT NOT NULL,
	date                DATE,
	date_raw            TEXT NOT NULL DEFAULT '',
	customer_id         TEXT NOT NULL DEFAULT '',
	customer_name       TEXT NOT NULL DEFAULT '',
	phone_number        TEXT NOT NULL DEFAULT '',
	gender              TEXT NOT NULL DEFAULT '',
	age                 INTEGER,
	customer_region     TEXT NOT NULL DEFAULT '',
	customer_type       TEXT NOT NULL DEFAULT '',
	product_id          TEXT NOT NULL DEFAULT '',
	product_name        TEXT NOT NULL DEFAULT '',
	brand               TEXT NOT NULL DEFAULT '',
	product_category    TEXT NOT NULL DEFAULT '',
	tags                TEXT NOT NULL DEFAULT '',
	quantity            INTEGER,
	price_per_unit      DOUBLE PRECISION,
	discount_percentage DOUBLE PRECISION,
	total_amount        DOUBLE PRECISION,
	final_amount        DOUBLE PRECISION,
	payment_method      TEXT NOT NULL DEFAULT '',
	order_status        TEXT NOT NULL DEFAULT '',
	delivery_type       TEXT NOT NULL DEFAULT '',
	store_id            TEXT NOT NULL DEFAULT '',
	store_location      TEXT NOT NULL DEFAULT '',
	salesperson_id      TEXT NOT NULL DEFAULT '',
	employee_name       TEXT NOT NULL DEFAULT ''
)`

const transactionColumns = `transaction_id, date, date_raw, customer_id, customer_name, phone_number,
	gender, age, customer_region, customer_type, product_id, product_name, brand, product_category,
	tags, quantity, price_per_unit, discount_percentage, total_amount, final_amount, payment_method,
	order_status, delivery_type, store_id, store_location, salesperson_id, employee_name`

const insertTransaction = `
	INSERT INTO sales_transactions (` + transactionColumns + `)
	VALUES (:transaction_id, :date, :date_raw, :customer_id, :customer_name, :phone_number,
	:gender, :age, :customer_region, :customer_type, :product_id, :product_name, :brand, :product_category,
	:tags, :quantity, :price_per_unit, :discount_percentage, :total_amount, :final_amount, :payment_method,
	:order_status, :delivery_type, :store_id, :store_location, :salesperson_id, :employee_name)`

// EnsureSchema creates the transactions table if missing
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Rows retrieves every transaction in ingestion order
func (s *Store) Rows(ctx context.Context) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+transactionColumns+" FROM sales_transactions ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	return rows, nil
}

// Count returns the number of stored transactions
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sales_transactions")
	return n, err
}

// ReplaceTransactions swaps the whole dataset inside one transaction
func (s *Store) ReplaceTransactions(ctx context.Context, rows []models.Transaction) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE sales_transactions RESTART IDENTITY"); err != nil {
		return fmt.Errorf("failed to truncate transactions: %w", err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, insertTransaction)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		if _, err := stmt.ExecContext(ctx, &rows[i]); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", rows[i].ID, err)
		}
	}

	return tx.Commit()
}
