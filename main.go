package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/config"
	"github.com/stickerlink/stickerlink/internal/handlers"
	"github.com/stickerlink/stickerlink/internal/logger"
	"github.com/stickerlink/stickerlink/internal/packets"
	"github.com/stickerlink/stickerlink/internal/qr"
	"github.com/stickerlink/stickerlink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl := logger.New(cfg.Debug)
	defer zl.Sync()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		zl.Fatal("failed to create data dir", zap.Error(err))
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	objects := &storage.DiskStore{Root: cfg.DataDir, BaseURL: cfg.BaseURL + "/files"}
	h := handlers.New(
		qr.Engine{MaxDataLen: cfg.MaxDataLen},
		objects,
		storage.NewRecordStore(db),
		packets.NewStore(db),
		cfg.BaseURL,
		zl,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Stored images
	r.Static("/files", cfg.DataDir)

	// API routes
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

	// Customer-facing scan redirects
	r.GET("/r/:id", h.HandleScan)
	r.GET("/r/:id/check", h.CheckPacketState)

	zl.Info("stickerlink listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
