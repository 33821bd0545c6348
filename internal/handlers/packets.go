package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/packets"
)

// CreatePacket creates a new sticker packet and stores its claim QR
// image. A storage failure is not fatal; the claim QR can always be
// re-fetched from the image endpoint.
func (h *Handler) CreatePacket(c *gin.Context) {
	p, err := h.packets.Create(c.Request.Context())
	if err != nil {
		h.log.Error("packet create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create packet"})
		return
	}

	png, err := packets.ClaimQR(h.scanURL(p.ID), packets.DefaultClaimQRSize)
	if err == nil {
		path := fmt.Sprintf("qr_codes/%s/qr.png", p.ID)
		if url, err := h.objects.Save(png, path); err == nil {
			if err := h.packets.SetQRImageURL(c.Request.Context(), p.ID, url); err == nil {
				p.QRImageURL = url
			}
		} else {
			h.log.Warn("claim qr upload failed", zap.String("packet_id", p.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "packet": p, "scan_url": h.scanURL(p.ID)})
}

// GetPacket returns one packet.
func (h *Handler) GetPacket(c *gin.Context) {
	p, err := h.packets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.packetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "packet": p, "scan_url": h.scanURL(p.ID)})
}

// MarkPacketSetupDone transitions a packet to setup_done after printing.
func (h *Handler) MarkPacketSetupDone(c *gin.Context) {
	h.packetTransition(c, h.packets.MarkSetupDone)
}

// ActivatePacket transitions a packet to config_pending.
func (h *Handler) ActivatePacket(c *gin.Context) {
	h.packetTransition(c, h.packets.Activate)
}

func (h *Handler) packetTransition(c *gin.Context, fn func(ctx context.Context, id string) error) {
	if err := fn(c.Request.Context(), c.Param("id")); err != nil {
		h.packetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ConfigurePacket sets the redirect destination for a packet.
func (h *Handler) ConfigurePacket(c *gin.Context) {
	var req struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	normalized, err := normalizeHTTPURL(req.RedirectURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.packets.Configure(c.Request.Context(), c.Param("id"), normalized); err != nil {
		h.packetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect_url": normalized})
}

// DeletePacket soft-deletes a packet.
func (h *Handler) DeletePacket(c *gin.Context) {
	if err := h.packets.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.packetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PacketClaimQR streams the plain claim QR PNG for a packet.
func (h *Handler) PacketClaimQR(c *gin.Context) {
	p, err := h.packets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.packetError(c, err)
		return
	}
	png, err := packets.ClaimQR(h.scanURL(p.ID), packets.DefaultClaimQRSize)
	if err != nil {
		h.log.Error("claim qr render failed", zap.String("packet_id", p.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to render claim qr"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) scanURL(packetID string) string {
	return h.baseURL + "/r/" + packetID
}

func (h *Handler) packetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, packets.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "packet not found"})
	case errors.Is(err, packets.ErrBadState):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "packet state does not allow this operation"})
	default:
		h.log.Error("packet operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}
