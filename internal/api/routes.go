package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/qr", h.qrHandler)
		api.GET("/themes", h.themesHandler)
		api.GET("/presets", h.presetsHandler)
		api.GET("/fonts", h.fontsHandler)
		api.POST("/card/preview", h.previewHandler)
		api.POST("/card/export", h.exportHandler)
	}
}
