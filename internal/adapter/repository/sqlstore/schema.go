package sqlstore

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		balance NUMERIC(20, 2) NOT NULL CHECK (balance >= 0),
		account_value NUMERIC(20, 2) NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS instruments (
		id UUID PRIMARY KEY,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		price NUMERIC(20, 2) NOT NULL CHECK (price >= 0),
		previous_price NUMERIC(20, 2) NOT NULL,
		price_change NUMERIC(20, 2) NOT NULL,
		mention_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_instruments_symbol ON instruments (LOWER(symbol))`,
	`CREATE TABLE IF NOT EXISTS holdings (
		account_id UUID NOT NULL,
		instrument_id UUID NOT NULL REFERENCES instruments (id),
		instrument_name TEXT NOT NULL,
		shares NUMERIC(20, 2) NOT NULL CHECK (shares > 0),
		current_price NUMERIC(20, 2) NOT NULL,
		owns BOOLEAN NOT NULL,
		PRIMARY KEY (account_id, instrument_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_holdings_instrument ON holdings (instrument_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		seq BIGSERIAL PRIMARY KEY,
		id UUID NOT NULL UNIQUE,
		account_id UUID NOT NULL,
		kind TEXT NOT NULL,
		amount NUMERIC(20, 2) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		instrument_id UUID,
		instrument_name TEXT NOT NULL DEFAULT '',
		shares NUMERIC(20, 2),
		owns BOOLEAN NOT NULL,
		success BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id, seq)`,
	`CREATE TABLE IF NOT EXISTS market_values (
		seq BIGSERIAL PRIMARY KEY,
		id UUID NOT NULL UNIQUE,
		account_id UUID NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		value NUMERIC(20, 2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_market_values_account ON market_values (account_id, seq)`,
	`CREATE TABLE IF NOT EXISTS market_hours (
		id INTEGER PRIMARY KEY,
		open_time TEXT NOT NULL,
		close_time TEXT NOT NULL,
		closed_days TEXT NOT NULL DEFAULT ''
	)`,
}

// SQLite stores decimals as TEXT so no value passes through a float
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		balance TEXT NOT NULL,
		account_value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS instruments (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		price TEXT NOT NULL,
		previous_price TEXT NOT NULL,
		price_change TEXT NOT NULL,
		mention_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_instruments_symbol ON instruments (LOWER(symbol))`,
	`CREATE TABLE IF NOT EXISTS holdings (
		account_id TEXT NOT NULL,
		instrument_id TEXT NOT NULL REFERENCES instruments (id),
		instrument_name TEXT NOT NULL,
		shares TEXT NOT NULL,
		current_price TEXT NOT NULL,
		owns INTEGER NOT NULL,
		PRIMARY KEY (account_id, instrument_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_holdings_instrument ON holdings (instrument_id)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		account_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		instrument_id TEXT,
		instrument_name TEXT NOT NULL DEFAULT '',
		shares TEXT,
		owns INTEGER NOT NULL,
		success INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id, seq)`,
	`CREATE TABLE IF NOT EXISTS market_values (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		account_id TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		value TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_market_values_account ON market_values (account_id, seq)`,
	`CREATE TABLE IF NOT EXISTS market_hours (
		id INTEGER PRIMARY KEY,
		open_time TEXT NOT NULL,
		close_time TEXT NOT NULL,
		closed_days TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the tables and indexes if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
