package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/packets"
	"github.com/stickerlink/stickerlink/internal/qr"
	"github.com/stickerlink/stickerlink/internal/storage"
)

// testRouter wires a full handler stack against a temp database and
// object store, mirroring the production route table.
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := New(
		qr.Engine{},
		&storage.DiskStore{Root: t.TempDir(), BaseURL: "http://localhost:8080/files"},
		storage.NewRecordStore(db),
		packets.NewStore(db),
		"http://localhost:8080",
		zap.NewNop(),
	)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/qr", h.ClassicQR)
		api.POST("/qr/generate", h.GenerateQR)
		api.POST("/qr/save", h.SaveQR)
		api.GET("/qr/presets", h.Presets)
		api.GET("/qr/packet/:id", h.PacketQRCodes)
		api.POST("/packets", h.CreatePacket)
		api.GET("/packets/:id", h.GetPacket)
		api.POST("/packets/:id/setup-done", h.MarkPacketSetupDone)
		api.POST("/packets/:id/activate", h.ActivatePacket)
		api.POST("/packets/:id/configure", h.ConfigurePacket)
		api.DELETE("/packets/:id", h.DeletePacket)
		api.GET("/packets/:id/qr.png", h.PacketClaimQR)
	}
	r.GET("/r/:id", h.HandleScan)
	r.GET("/r/:id/check", h.CheckPacketState)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON (%d): %s", w.Code, w.Body.String())
		}
	}
	return w, decoded
}
