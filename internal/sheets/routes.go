package sheets

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Routes configures the sheet and keyword routes on router.
func Routes(router gin.IRouter, db *gorm.DB, logger *zap.Logger, opts Options) {
	store := NewStore(logger.Named("sheets.store"), db)
	service := NewService(logger.Named("sheets"), store, opts)
	RegisterHandlers(router, NewHandler(service, logger.Named("sheets.http")))
}

// RegisterHandlers mounts handler on router.
func RegisterHandlers(router gin.IRouter, handler *Handler) {
	sheets := router.Group("/sheets")
	{
		sheets.GET("", handler.GetSheets)
		sheets.PUT("", handler.UpdateSheet)
		sheets.POST("", handler.CreateSheet)
		sheets.DELETE("/:id", handler.DeleteSheet)

		keywords := sheets.Group("/keywords")
		keywords.GET("", handler.GetKeywords)
		keywords.PUT("", handler.UpdateKeyword)
		keywords.POST("", handler.CreateKeyword)
		keywords.DELETE("/:id", handler.DeleteKeyword)
	}
}
