package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stickerlink/stickerlink/internal/packets"
)

// HandleScan answers a sticker scan. The response depends on the packet
// state: unconfigured packets get an explanatory status, configured ones
// redirect to their destination. Every successful lookup is counted.
func (h *Handler) HandleScan(c *gin.Context) {
	packetID := c.Param("id")
	p, err := h.packets.Get(c.Request.Context(), packetID)
	if err != nil {
		if errors.Is(err, packets.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invalid QR code", "details": "This QR code is not recognized."})
			return
		}
		h.log.Error("scan lookup failed", zap.String("packet_id", packetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "System error"})
		return
	}

	if p.Deleted {
		c.JSON(http.StatusGone, gin.H{"error": "QR code expired", "details": "This QR code is no longer active."})
		return
	}

	if err := h.packets.RecordScan(c.Request.Context(), packetID, c.Request.UserAgent(), c.ClientIP()); err != nil {
		// Scan logging must not break the redirect.
		h.log.Warn("scan logging failed", zap.String("packet_id", packetID), zap.Error(err))
	}

	switch p.State {
	case packets.StateSetupPending:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Packet not ready", "details": "This QR packet is being prepared. Please try again later."})
	case packets.StateSetupDone:
		c.JSON(http.StatusForbidden, gin.H{"error": "Packet not activated", "details": "This QR packet has not been activated yet. Please contact the seller."})
	case packets.StateConfigPending:
		c.JSON(http.StatusOK, gin.H{"configure": true, "packet_id": packetID})
	case packets.StateConfigDone:
		if p.RedirectURL == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuration error", "details": "No redirect URL configured."})
			return
		}
		if c.Query("configure") == "true" && p.AllowUpdates {
			c.JSON(http.StatusOK, gin.H{"configure": true, "packet_id": packetID, "current_redirect": p.RedirectURL})
			return
		}
		c.Redirect(http.StatusFound, p.RedirectURL)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid state", "details": "Packet is in an invalid state."})
	}
}

// CheckPacketState reports the packet state for polling clients.
func (h *Handler) CheckPacketState(c *gin.Context) {
	p, err := h.packets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, packets.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Packet not found"})
			return
		}
		h.log.Error("state check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "System error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":         p.State,
		"configured":    p.State == packets.StateConfigDone,
		"redirect_url":  p.RedirectURL,
		"allow_updates": p.AllowUpdates,
	})
}
