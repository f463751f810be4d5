// Package v1 is the HTTP API over the calendar store and the extraction
// pipeline.
package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samankwah/agromet-sub002/internal/importer"
	"github.com/samankwah/agromet-sub002/internal/store"
)

// Handler bundles the API dependencies.
type Handler struct {
	store   *store.Store
	imports *importer.Coordinator
	log     *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, imports *importer.Coordinator, log *zap.Logger) *Handler {
	return &Handler{
		store:   st,
		imports: imports,
		log:     log,
	}
}

// RegisterRoutes registers the API routes on a router group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system state
	router.GET("/status", h.GetStatus)

	// extraction
	router.POST("/calendars/preview", h.PreviewUpload)
	router.POST("/calendars/import", h.ImportUpload)

	// stored calendars
	router.GET("/calendars", h.ListCalendars)
	router.GET("/calendars/:id", h.GetCalendar)
	router.DELETE("/calendars/:id", h.DeleteCalendar)
	router.GET("/calendars/:id/export", h.ExportCalendar)
}
