// README: HTTP gateway; registers the webhook, health and debug routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatbot/internal/http/handlers"
	"eatbot/internal/http/middleware"
)

type ServerDeps struct {
	Webhook *handlers.WebhookHandler
	Debug   *handlers.DebugHandler
}

type Server struct {
	webhook *handlers.WebhookHandler
	debug   *handlers.DebugHandler
}

func NewServer(deps ServerDeps) *Server {
	return &Server{webhook: deps.Webhook, debug: deps.Debug}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.POST("/webhook", s.webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/debug/maps", s.debug.Maps)
	r.GET("/debug/ai", s.debug.AI)
	return r
}
