package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// QRRecord is one stored render: what was encoded, with which settings,
// and where the image lives.
type QRRecord struct {
	ID        string    `json:"id"`
	PacketID  string    `json:"packet_id"`
	URL       string    `json:"url"`
	Settings  string    `json:"settings"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordStore reads and writes qr_codes rows.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Save inserts a render record. CreatedAt/UpdatedAt are stamped here.
func (s *RecordStore) Save(ctx context.Context, rec *QRRecord) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO qr_codes (id, packet_id, url, settings, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PacketID, rec.URL, rec.Settings, rec.ImageURL, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save qr record: %w", err)
	}
	return nil
}

// ListByPacket returns all render records for a packet, newest first.
func (s *RecordStore) ListByPacket(ctx context.Context, packetID string) ([]QRRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, packet_id, url, settings, image_url, created_at, updated_at
		FROM qr_codes WHERE packet_id = ? ORDER BY created_at DESC`,
		packetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr records: %w", err)
	}
	defer rows.Close()

	var records []QRRecord
	for rows.Next() {
		var rec QRRecord
		var imageURL sql.NullString
		if err := rows.Scan(&rec.ID, &rec.PacketID, &rec.URL, &rec.Settings, &imageURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan qr record: %w", err)
		}
		rec.ImageURL = imageURL.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
