package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samankwah/agromet-sub002/internal/store"
)

// ListCalendars returns stored calendar summaries.
// GET /api/calendars
func (h *Handler) ListCalendars(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	filter := store.CalendarFilter{
		Type:      strings.TrimSpace(c.Query("type")),
		Region:    strings.TrimSpace(c.Query("region")),
		District:  strings.TrimSpace(c.Query("district")),
		Commodity: strings.TrimSpace(c.Query("commodity")),
		Year:      year,
	}

	items, err := h.store.ListCalendars(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// GetCalendar returns one stored calendar with its activities.
// GET /api/calendars/:id
func (h *Handler) GetCalendar(c *gin.Context) {
	cal, err := h.store.GetCalendar(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "calendar not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cal)
}

// DeleteCalendar removes a stored calendar and its activities.
// DELETE /api/calendars/:id
func (h *Handler) DeleteCalendar(c *gin.Context) {
	id := c.Param("id")
	err := h.store.DeleteCalendar(id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "calendar not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
