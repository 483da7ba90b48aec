package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/post-comb/app/feed"
)

func NewHandler(stats StatsProvider, seen SeenCounter, keywords feed.Keywords, version string) *Handler {
	return &Handler{
		stats:    stats,
		seen:     seen,
		keywords: keywords,
		version:  version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	response := gin.H{
		"ingest": h.stats.Stats(),
		"keywords": gin.H{
			"desired":   h.keywords.Desired,
			"undesired": h.keywords.Undesired,
		},
	}

	seen, err := h.seen.Count(c.Request.Context())
	if err != nil {
		slog.Error("Failed to count seen posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
		return
	}
	response["seen"] = seen

	c.JSON(http.StatusOK, response)
}
