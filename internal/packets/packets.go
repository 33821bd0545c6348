// Package packets tracks the sale and configuration lifecycle of QR
// sticker packets. A packet starts as setup_pending when created, becomes
// setup_done once the physical stickers are printed, config_pending when
// the buyer activates it, and config_done after a redirect destination is
// configured. Scans of a config_done packet redirect to that destination.
package packets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Packet states.
const (
	StateSetupPending  = "setup_pending"
	StateSetupDone     = "setup_done"
	StateConfigPending = "config_pending"
	StateConfigDone    = "config_done"
)

var (
	ErrNotFound = errors.New("packets: not found")
	ErrBadState = errors.New("packets: invalid state for operation")
)

type Packet struct {
	ID           string     `json:"id"`
	State        string     `json:"state"`
	RedirectURL  string     `json:"redirect_url,omitempty"`
	AllowUpdates bool       `json:"allow_updates"`
	Deleted      bool       `json:"-"`
	ScanCount    int        `json:"scan_count"`
	LastScanned  *time.Time `json:"last_scanned,omitempty"`
	QRImageURL   string     `json:"qr_image_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new packet in setup_pending state.
func (s *Store) Create(ctx context.Context) (*Packet, error) {
	now := time.Now().UTC()
	p := &Packet{
		ID:           uuid.New().String(),
		State:        StateSetupPending,
		AllowUpdates: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO packets (id, state, allow_updates, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)`,
		p.ID, p.State, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create packet: %w", err)
	}
	return p, nil
}

// Get loads a packet by id. Soft-deleted packets are still returned; the
// caller decides how to present them.
func (s *Store) Get(ctx context.Context, id string) (*Packet, error) {
	var p Packet
	var redirectURL, qrImageURL sql.NullString
	var lastScanned sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, state, redirect_url, allow_updates, deleted, scan_count,
		       last_scanned, qr_image_url, created_at, updated_at
		FROM packets WHERE id = ?`, id,
	).Scan(&p.ID, &p.State, &redirectURL, &p.AllowUpdates, &p.Deleted,
		&p.ScanCount, &lastScanned, &qrImageURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load packet: %w", err)
	}
	p.RedirectURL = redirectURL.String
	p.QRImageURL = qrImageURL.String
	if lastScanned.Valid {
		t := lastScanned.Time
		p.LastScanned = &t
	}
	return &p, nil
}

// MarkSetupDone transitions setup_pending -> setup_done.
func (s *Store) MarkSetupDone(ctx context.Context, id string) error {
	return s.transition(ctx, id, StateSetupPending, StateSetupDone)
}

// Activate transitions setup_done -> config_pending.
func (s *Store) Activate(ctx context.Context, id string) error {
	return s.transition(ctx, id, StateSetupDone, StateConfigPending)
}

func (s *Store) transition(ctx context.Context, id, from, to string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE packets SET state = ?, updated_at = ?
		WHERE id = ? AND state = ? AND deleted = 0`,
		to, time.Now().UTC(), id, from,
	)
	if err != nil {
		return fmt.Errorf("failed to update packet state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return ErrBadState
	}
	return nil
}

// Configure sets the redirect destination. Allowed from config_pending,
// or from config_done when the packet permits updates.
func (s *Store) Configure(ctx context.Context, id, redirectURL string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.Deleted {
		return ErrNotFound
	}
	switch p.State {
	case StateConfigPending:
	case StateConfigDone:
		if !p.AllowUpdates {
			return ErrBadState
		}
	default:
		return ErrBadState
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE packets SET state = ?, redirect_url = ?, updated_at = ?
		WHERE id = ?`,
		StateConfigDone, redirectURL, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to configure packet: %w", err)
	}
	return nil
}

// SetQRImageURL records the stored claim-QR image for a packet.
func (s *Store) SetQRImageURL(ctx context.Context, id, url string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE packets SET qr_image_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set packet qr image: %w", err)
	}
	return nil
}

// RecordScan logs one scan and bumps the scan counter.
func (s *Store) RecordScan(ctx context.Context, id, userAgent, ip string) error {
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE packets SET scan_count = scan_count + 1, last_scanned = ? WHERE id = ?`,
		now, id,
	); err != nil {
		return fmt.Errorf("failed to bump scan count: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO scan_logs (packet_id, scanned_at, user_agent, ip_address)
		VALUES (?, ?, ?, ?)`,
		id, now, userAgent, ip,
	); err != nil {
		return fmt.Errorf("failed to log scan: %w", err)
	}
	return nil
}

// Delete soft-deletes a packet; its stickers answer "expired" from then on.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE packets SET deleted = 1, updated_at = ? WHERE id = ? AND deleted = 0`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete packet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
