// README: Connectivity self-test endpoints for the maps and AI providers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eatbot/internal/ai"
	"eatbot/internal/maps"
	"eatbot/internal/types"
)

// Taipei 101, the fixed probe location.
var probeLocation = types.Point{Lat: 25.033964, Lng: 121.564468}

type DebugHandler struct {
	places *maps.PlacesService
	ai     ai.Provider
}

func NewDebugHandler(places *maps.PlacesService, provider ai.Provider) *DebugHandler {
	return &DebugHandler{places: places, ai: provider}
}

// Maps handles GET /debug/maps.
func (h *DebugHandler) Maps(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	results := h.places.SearchNearby(ctx, probeLocation, "餐廳", 1000, 0, 0)
	if len(results) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "附近搜尋沒有結果"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"sample":  results[0].Name,
	})
}

// AI handles GET /debug/ai.
func (h *DebugHandler) AI(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	text, err := h.ai.GenerateText(ctx, "請用一句話回答：你好嗎？")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": text})
}
