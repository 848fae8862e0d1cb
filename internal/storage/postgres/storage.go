package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mugworks/storefront/internal/domain/repository"
)

const uniqueViolation = "23505"

// PgxPool is the subset of pgxpool.Pool the storage layer relies on.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   PgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type profileRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type serialRepository struct {
	storage *Storage
}

type mugAssignmentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Serials() repository.SerialRepository {
	return &serialRepository{storage: s}
}

func (s *Storage) MugAssignments() repository.MugAssignmentRepository {
	return &mugAssignmentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS profiles (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            type TEXT NOT NULL,
            name TEXT NOT NULL,
            state TEXT NOT NULL DEFAULT '',
            district TEXT NOT NULL DEFAULT '',
            date_of_birth DATE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS addresses (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            full_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            address_line1 TEXT NOT NULL,
            city TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL,
            district TEXT NOT NULL,
            postal_code TEXT NOT NULL,
            country TEXT NOT NULL DEFAULT 'India',
            landmark TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number TEXT UNIQUE NOT NULL,
            status TEXT NOT NULL,
            shipping_full_name TEXT NOT NULL DEFAULT '',
            shipping_phone TEXT NOT NULL DEFAULT '',
            shipping_address_line1 TEXT NOT NULL DEFAULT '',
            shipping_city TEXT NOT NULL DEFAULT '',
            shipping_state TEXT NOT NULL DEFAULT '',
            shipping_district TEXT NOT NULL DEFAULT '',
            shipping_postal_code TEXT NOT NULL DEFAULT '',
            shipping_country TEXT NOT NULL DEFAULT 'India',
            shipping_landmark TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            payment_transaction_id TEXT NOT NULL DEFAULT '',
            payment_merchant_txn_id TEXT NOT NULL DEFAULT '',
            payment_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            payment_currency TEXT NOT NULL DEFAULT 'INR',
            total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            shipping_charges DOUBLE PRECISION NOT NULL DEFAULT 0,
            final_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id TEXT NOT NULL,
            product_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            reference_code TEXT NOT NULL DEFAULT '',
            serialized BOOLEAN NOT NULL DEFAULT FALSE,
            serials JSONB
        )`,
		`CREATE TABLE IF NOT EXISTS order_profiles (
            order_id BIGINT NOT NULL REFERENCES orders(id),
            profile_id BIGINT NOT NULL REFERENCES profiles(id),
            position INTEGER NOT NULL,
            PRIMARY KEY (order_id, profile_id)
        )`,
		`CREATE TABLE IF NOT EXISTS issued_serials (
            series_code TEXT NOT NULL,
            seq BIGINT NOT NULL,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (series_code, seq)
        )`,
		`CREATE TABLE IF NOT EXISTS serial_counters (
            series_code TEXT PRIMARY KEY,
            next_seq BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS mug_assignments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            profile_id BIGINT NOT NULL REFERENCES profiles(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            unit_id BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (profile_id, unit_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_user ON profiles(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_addresses_user ON addresses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_merchant_txn ON orders(payment_merchant_txn_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_pending_payment ON orders(payment_status, created_at) WHERE payment_status = 'pending'`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mug_assignments_order ON mug_assignments(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mug_assignments_user ON mug_assignments(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes raw connection pool for advanced use.
func (s *Storage) Pool() PgxPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
