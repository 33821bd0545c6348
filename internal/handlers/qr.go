package handlers

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/qr"
	"github.com/stickerlink/stickerlink/internal/storage"
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	// Optional: cap length to avoid abuse
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

type generateRequest struct {
	URL      string      `json:"url"`
	Data     string      `json:"data"`
	PacketID string      `json:"packet_id"`
	Settings qr.Settings `json:"settings"`
}

func (r generateRequest) payload() string {
	if r.Data != "" {
		return r.Data
	}
	return r.URL
}

// GenerateQR renders a styled QR code and returns it inline as base64.
func (h *Handler) GenerateQR(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	st := req.Settings.Resolve()
	if name := req.Settings.EyeDrawer; name != "" && st.EyeDrawer.String() != name {
		h.log.Debug("unknown eye drawer, using square", zap.String("eye_drawer", name))
	}
	if name := req.Settings.ModuleDrawer; name != "" && st.ModuleDrawer.String() != name {
		h.log.Debug("unknown module drawer, using square", zap.String("module_drawer", name))
	}

	res, err := h.engine.Generate(req.payload(), st)
	if err != nil {
		h.log.Warn("qr generation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"image_base64":   res.Base64,
		"image_data_url": res.DataURL,
		"size":           []int{res.Width, res.Height},
		"format":         res.Format,
		"settings":       st.Settings(),
		"packet_id":      req.PacketID,
	})
}

// SaveQR renders a styled QR code, stores the image and writes a render
// record. Upload and record write happen at most once; there is no retry.
// If storage fails the response still succeeds with the inline data URL
// so the caller keeps a usable image.
func (h *Handler) SaveQR(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	normalized, err := normalizeHTTPURL(req.payload())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	st := req.Settings.Resolve()
	res, err := h.engine.Generate(normalized, st)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	packetPart := req.PacketID
	if packetPart == "" {
		packetPart = "standalone"
	}
	filename := fmt.Sprintf("qr_code_%s_%s.png", packetPart, time.Now().UTC().Format("20060102_150405"))
	objectPath := fmt.Sprintf("qr_codes/%s/%s", packetPart, filename)

	imageURL, err := h.objects.Save(res.PNG, objectPath)
	if err != nil {
		h.log.Error("qr image upload failed", zap.String("path", objectPath), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"saved":          false,
			"image_data_url": res.DataURL,
			"size":           []int{res.Width, res.Height},
			"format":         res.Format,
			"settings":       st.Settings(),
		})
		return
	}

	settingsJSON, _ := json.Marshal(st.Settings())
	rec := &storage.QRRecord{
		ID:       uuid.New().String(),
		PacketID: packetPart,
		URL:      normalized,
		Settings: string(settingsJSON),
		ImageURL: imageURL,
	}
	recordSaved := true
	if err := h.records.Save(c.Request.Context(), rec); err != nil {
		h.log.Error("qr record save failed", zap.String("packet_id", packetPart), zap.Error(err))
		recordSaved = false
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"saved":          true,
		"record_saved":   recordSaved,
		"image_url":      imageURL,
		"image_data_url": res.DataURL,
		"size":           []int{res.Width, res.Height},
		"format":         res.Format,
		"settings":       st.Settings(),
		"packet_id":      req.PacketID,
	})
}

// Presets returns the static style preset table.
func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "presets": qr.Presets()})
}

// PacketQRCodes lists stored render records for one packet.
func (h *Handler) PacketQRCodes(c *gin.Context) {
	records, err := h.records.ListByPacket(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.log.Error("qr record list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load qr codes"})
		return
	}
	if records == nil {
		records = []storage.QRRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "qr_codes": records})
}

// ClassicQR streams a plain PNG QR code for a URL with the basic
// customization knobs (colors, module shape). Finder-pattern styling is
// not available here; use the styled generate endpoint for that.
func (h *Handler) ClassicQR(c *gin.Context) {
	rawURL := strings.TrimSpace(c.Query("url"))
	normalizedURL, err := normalizeHTTPURL(rawURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fgColor := parseColorParam(c.Query("fg"), color.RGBA{0, 0, 0, 255})
	bgColor := parseColorParam(c.Query("bg"), color.RGBA{255, 255, 255, 255})

	var moduleSize uint8 = 16
	if c.DefaultQuery("size", "preview") == "download" {
		moduleSize = 120
	}

	qrc, err := qrcode.NewWith(normalizedURL, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
		return
	}

	writerOptions := []standard.ImageOption{
		standard.WithQRWidth(moduleSize),
		standard.WithBorderWidth(int(moduleSize) * 2),
		standard.WithFgColor(fgColor),
		standard.WithBgColor(bgColor),
	}

	switch c.DefaultQuery("shape", "rectangle") {
	case "circle":
		writerOptions = append(writerOptions, standard.WithCircleShape())
	case "liquid":
		writerOptions = append(writerOptions, standard.WithCustomShape(&customShape{drawFunc: shapes.LiquidBlock()}))
	case "chain":
		writerOptions = append(writerOptions, standard.WithCustomShape(&customShape{drawFunc: shapes.ChainBlock()}))
	case "hstripe":
		writerOptions = append(writerOptions, standard.WithCustomShape(&customShape{drawFunc: shapes.HStripeBlock(0.85)}))
	case "vstripe":
		writerOptions = append(writerOptions, standard.WithCustomShape(&customShape{drawFunc: shapes.VStripeBlock(0.85)}))
	default:
		// rectangle - default shape, no additional options needed
	}

	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("qr_%s.png", uuid.New().String()))
	writer, err := standard.New(tmpFile, writerOptions...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR writer"})
		return
	}
	if err := qrc.Save(writer); err != nil {
		writer.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate QR code image: %v", err)})
		return
	}
	writer.Close()

	file, err := os.Open(tmpFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read QR code file"})
		return
	}
	defer file.Close()
	defer os.Remove(tmpFile)

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Type", "image/png")
	if _, err := io.Copy(c.Writer, file); err != nil {
		h.log.Warn("failed to stream qr png", zap.Error(err))
	}
}

// parseColorParam parses a hex color query parameter, falling back to the
// provided default when the parameter is absent or malformed.
func parseColorParam(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}
	s := strings.TrimPrefix(param, "#")
	if len(s) != 6 {
		return defaultColor
	}
	c := qr.ToRGB(s)
	if c == (color.RGBA{A: 255}) && !strings.EqualFold(s, "000000") {
		return defaultColor
	}
	return c
}

// customShape adapts drawing functions from the shapes package to the
// writer's IShape interface.
type customShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

func (cs *customShape) Draw(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}

func (cs *customShape) DrawFinder(ctx *standard.DrawContext) {
	cs.drawFunc(ctx)
}
