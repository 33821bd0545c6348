package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

// createTestPacket creates a packet through the API and returns its id.
func createTestPacket(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, body := doJSON(t, r, http.MethodPost, "/api/packets", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create packet status = %d, body = %s", w.Code, w.Body.String())
	}
	packet, ok := body["packet"].(map[string]any)
	if !ok {
		t.Fatalf("packet missing: %s", w.Body.String())
	}
	id, _ := packet["id"].(string)
	if id == "" {
		t.Fatalf("packet id missing: %v", packet)
	}
	return id
}

func TestScanUnknownPacket(t *testing.T) {
	r := testRouter(t)
	w, _ := doJSON(t, r, http.MethodGet, "/r/no-such-packet", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestScanLifecycle(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)

	// Freshly created: stickers are still being prepared.
	w, _ := doJSON(t, r, http.MethodGet, "/r/"+id, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("setup_pending scan status = %d, want 503", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/setup-done", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("setup-done status = %d", w.Code)
	}

	// Printed but not sold yet.
	w, _ = doJSON(t, r, http.MethodGet, "/r/"+id, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("setup_done scan status = %d, want 403", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/activate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("activate status = %d", w.Code)
	}

	// Sold, awaiting configuration: the scan invites the owner to configure.
	w, body := doJSON(t, r, http.MethodGet, "/r/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("config_pending scan status = %d, want 200", w.Code)
	}
	if body["configure"] != true {
		t.Errorf("configure flag = %v", body["configure"])
	}

	w, _ = doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/configure", map[string]any{
		"redirect_url": "https://example.com/menu",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("configure status = %d, body = %s", w.Code, w.Body.String())
	}

	// Configured: scans redirect.
	w, _ = doJSON(t, r, http.MethodGet, "/r/"+id, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("config_done scan status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://example.com/menu" {
		t.Errorf("redirect location = %q", loc)
	}

	// Owner can reopen configuration while updates are allowed.
	w, body = doJSON(t, r, http.MethodGet, "/r/"+id+"?configure=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("reconfigure scan status = %d, want 200", w.Code)
	}
	if body["current_redirect"] != "https://example.com/menu" {
		t.Errorf("current_redirect = %v", body["current_redirect"])
	}

	// Scans were counted along the way.
	w, body = doJSON(t, r, http.MethodGet, "/api/packets/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get packet status = %d", w.Code)
	}
	packet := body["packet"].(map[string]any)
	if count, _ := packet["scan_count"].(float64); count < 4 {
		t.Errorf("scan_count = %v, want at least 4", packet["scan_count"])
	}
}

func TestScanDeletedPacket(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)

	w, _ := doJSON(t, r, http.MethodDelete, "/api/packets/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/r/"+id, nil)
	if w.Code != http.StatusGone {
		t.Fatalf("deleted scan status = %d, want 410", w.Code)
	}
}

func TestConfigureOutOfOrder(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/configure", map[string]any{
		"redirect_url": "https://example.com",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("early configure status = %d, want 409", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/activate", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("early activate status = %d, want 409", w.Code)
	}
}

func TestConfigureRejectsBadURL(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)
	doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/setup-done", nil)
	doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/activate", nil)

	w, _ := doJSON(t, r, http.MethodPost, "/api/packets/"+id+"/configure", map[string]any{
		"redirect_url": "javascript:alert(1)",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCheckPacketState(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)

	w, body := doJSON(t, r, http.MethodGet, "/r/"+id+"/check", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["state"] != "setup_pending" || body["configured"] != false {
		t.Errorf("state payload = %v", body)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/r/missing/check", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing packet status = %d, want 404", w.Code)
	}
}

func TestPacketClaimQRStream(t *testing.T) {
	r := testRouter(t)
	id := createTestPacket(t, r)

	w, _ := doJSON(t, r, http.MethodGet, "/api/packets/"+id+"/qr.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}
