// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mmynk/billed/internal/models"
	"github.com/mmynk/billed/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    seq BIGSERIAL PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL DEFAULT '',
    amount DOUBLE PRECISION NOT NULL DEFAULT 0,
    date TEXT NOT NULL DEFAULT '',
    vat TEXT NOT NULL DEFAULT '',
    pct INTEGER NOT NULL DEFAULT 20,
    commentary TEXT NOT NULL DEFAULT '',
    comment_admin TEXT NOT NULL DEFAULT '',
    file_url TEXT NOT NULL DEFAULT '',
    file_name TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending'
);

CREATE INDEX IF NOT EXISTS idx_bills_email ON bills(email);
`

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ErrDuplicate is returned when an insert collides with an existing key.
var ErrDuplicate = errors.New("duplicate key")

// PostgresStore implements storage.Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// New connects to the database at dsn and runs migrations.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const billColumns = `id, email, type, name, amount, date, vat, pct, commentary, comment_admin, file_url, file_name, status`

func scanBill(row interface{ Scan(...any) error }, bill *models.Bill) error {
	return row.Scan(
		&bill.ID, &bill.Email, &bill.Type, &bill.Name, &bill.Amount, &bill.Date,
		&bill.VAT, &bill.Pct, &bill.Commentary, &bill.CommentAdmin,
		&bill.FileURL, &bill.FileName, &bill.Status,
	)
}

func wrapInsertErr(what string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("failed to insert %s: %w: %s", what, ErrDuplicate, pqErr.Detail)
	}
	return fmt.Errorf("failed to insert %s: %w", what, err)
}

// CreateBill persists a new bill.
func (s *PostgresStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.Status == "" {
		bill.Status = models.StatusPending
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bills ("+billColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)",
		bill.ID, bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date,
		bill.VAT, bill.Pct, bill.Commentary, bill.CommentAdmin,
		bill.FileURL, bill.FileName, bill.Status,
	)
	if err != nil {
		return wrapInsertErr("bill", err)
	}
	return nil
}

// GetBill retrieves a bill by ID.
func (s *PostgresStore) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := scanBill(s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = $1", billID,
	), bill)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// UpdateBill overwrites every mutable column of an existing bill.
func (s *PostgresStore) UpdateBill(ctx context.Context, bill *models.Bill) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE bills SET email = $1, type = $2, name = $3, amount = $4, date = $5, vat = $6, pct = $7,
		 commentary = $8, comment_admin = $9, file_url = $10, file_name = $11, status = $12
		 WHERE id = $13`,
		bill.Email, bill.Type, bill.Name, bill.Amount, bill.Date, bill.VAT, bill.Pct,
		bill.Commentary, bill.CommentAdmin, bill.FileURL, bill.FileName, bill.Status,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
	}
	return nil
}

// ListBills returns bills in insertion order, filtered by owner when email is set.
func (s *PostgresStore) ListBills(ctx context.Context, email string) ([]models.Bill, error) {
	query := "SELECT " + billColumns + " FROM bills"
	var args []any
	if email != "" {
		query += " WHERE email = $1"
		args = append(args, email)
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var bill models.Bill
		if err := scanBill(rows, &bill); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// CreateUser inserts a new account.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, type, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Type, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return wrapInsertErr("user", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, type, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Type, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}
