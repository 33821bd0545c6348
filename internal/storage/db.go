package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and ensures the schema exists.
// Safe to call on an existing database - uses IF NOT EXISTS.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

const schema = `
-- Sticker packets
CREATE TABLE IF NOT EXISTS packets (
    id TEXT PRIMARY KEY,
    state TEXT NOT NULL DEFAULT 'setup_pending'
        CHECK (state IN ('setup_pending', 'setup_done', 'config_pending', 'config_done')),
    redirect_url TEXT,
    allow_updates INTEGER NOT NULL DEFAULT 1,
    deleted INTEGER NOT NULL DEFAULT 0,
    scan_count INTEGER NOT NULL DEFAULT 0,
    last_scanned TIMESTAMP,
    qr_image_url TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_packets_state ON packets(state);

-- Rendered QR code records
CREATE TABLE IF NOT EXISTS qr_codes (
    id TEXT PRIMARY KEY,
    packet_id TEXT NOT NULL,
    url TEXT NOT NULL,
    settings TEXT NOT NULL,
    image_url TEXT,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_qr_codes_packet_id ON qr_codes(packet_id);

-- Scan log
CREATE TABLE IF NOT EXISTS scan_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    packet_id TEXT NOT NULL,
    scanned_at TIMESTAMP NOT NULL,
    user_agent TEXT,
    ip_address TEXT
);

CREATE INDEX IF NOT EXISTS idx_scan_logs_packet_id ON scan_logs(packet_id);
`
