package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samankwah/agromet-sub002/internal/exporter"
	"github.com/samankwah/agromet-sub002/internal/store"
)

// ExportCalendar streams a stored calendar in the requested format.
// Exports read from the store only; the source file is never re-parsed.
// GET /api/calendars/:id/export?format=csv|json|xlsx
func (h *Handler) ExportCalendar(c *gin.Context) {
	format, err := exporter.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cal, err := h.store.GetCalendar(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "calendar not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", exporter.ContentType(format))
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, exporter.Filename(cal, format)))

	if err := exporter.Write(c.Writer, format, cal); err != nil {
		// headers are gone; log and drop the connection
		h.log.Error("export failed",
			zap.String("calendar_id", cal.ID),
			zap.String("format", string(format)),
			zap.Error(err))
	}
}
