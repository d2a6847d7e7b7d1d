package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BridgeInfo describes how the musicbrain bridge is reached
type BridgeInfo struct {
	URL          string `json:"url"`
	LocalCatalog bool   `json:"local_catalog"`
	CatalogDir   string `json:"catalog_dir,omitempty"`
}

type HealthHandler struct {
	bridge BridgeInfo
}

func NewHealthHandler(info BridgeInfo) *HealthHandler {
	return &HealthHandler{bridge: info}
}

// HealthCheck returns the health status of the API. It does not call the
// bridge.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	bridgeStatus := "configured"
	if h.bridge.URL == "" {
		bridgeStatus = "not_configured"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"musicbrain": gin.H{
			"status":        bridgeStatus,
			"url":           h.bridge.URL,
			"local_catalog": h.bridge.LocalCatalog,
		},
	})
}
