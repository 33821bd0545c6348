package handlers

import (
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/packets"
	"github.com/stickerlink/stickerlink/internal/qr"
	"github.com/stickerlink/stickerlink/internal/storage"
)

// Handler bundles the dependencies for HTTP handlers.
type Handler struct {
	engine  qr.Engine
	objects storage.ObjectStore
	records *storage.RecordStore
	packets *packets.Store
	baseURL string
	log     *zap.Logger
}

// New returns a new Handler instance.
func New(engine qr.Engine, objects storage.ObjectStore, records *storage.RecordStore, pkts *packets.Store, baseURL string, log *zap.Logger) *Handler {
	return &Handler{
		engine:  engine,
		objects: objects,
		records: records,
		packets: pkts,
		baseURL: baseURL,
		log:     log,
	}
}
