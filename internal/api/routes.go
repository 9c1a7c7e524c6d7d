package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func RegisterRoutes(r *gin.Engine, h *Handler, log logrus.FieldLogger) {
	r.Use(RequestID(), Logger(log), gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/cards", h.listCards)
		api.GET("/cards/:color/:rank/preview", h.previewCard)
		api.GET("/decks/:mode", h.deckDocument)
		api.GET("/decks/:mode/qr", h.deckQR)
	}
}

// NewRouter returns an engine without gin's default logger, requests being
// logged through logrus instead.
func NewRouter(h *Handler, log logrus.FieldLogger) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, h, log)
	return r
}
