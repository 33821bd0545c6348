package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testDB(t *testing.T) *RecordStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRecordStore(db)
}

func TestRecordSaveAndList(t *testing.T) {
	s := testDB(t)
	ctx := context.Background()

	first := &QRRecord{
		ID:       uuid.New().String(),
		PacketID: "packet-1",
		URL:      "https://example.com/a",
		Settings: `{"module_drawer":"circle"}`,
		ImageURL: "http://localhost:8080/files/qr_codes/packet-1/a.png",
	}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first.CreatedAt.IsZero() {
		t.Error("Save() did not stamp CreatedAt")
	}

	// Distinct timestamps so the newest-first ordering is observable.
	time.Sleep(10 * time.Millisecond)
	second := &QRRecord{
		ID:       uuid.New().String(),
		PacketID: "packet-1",
		URL:      "https://example.com/b",
		Settings: `{}`,
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	records, err := s.ListByPacket(ctx, "packet-1")
	if err != nil {
		t.Fatalf("ListByPacket() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != second.ID {
		t.Errorf("records not newest first: %q then %q", records[0].URL, records[1].URL)
	}
	if records[1].URL != "https://example.com/a" || records[1].Settings != `{"module_drawer":"circle"}` {
		t.Errorf("record round trip mismatch: %+v", records[1])
	}
}

func TestRecordListOtherPacketEmpty(t *testing.T) {
	s := testDB(t)
	records, err := s.ListByPacket(context.Background(), "no-such-packet")
	if err != nil {
		t.Fatalf("ListByPacket() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
