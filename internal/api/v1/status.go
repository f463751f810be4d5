package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samankwah/agromet-sub002/internal/model"
	"github.com/samankwah/agromet-sub002/internal/store"
)

// StatusResponse is the dashboard snapshot.
type StatusResponse struct {
	Initialized     bool                    `json:"initialized"`
	TotalCalendars  int                     `json:"totalCalendars"`
	SeasonalCount   int                     `json:"seasonalCount"`
	CycleCount      int                     `json:"cycleCount"`
	TotalActivities int                     `json:"totalActivities"`
	RecentUploads   []*store.UploadLogEntry `json:"recentUploads"`
}

// GetStatus reports store counts and recent upload history.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	counts, err := h.store.CountCalendarsByType()
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{
			RecentUploads: []*store.UploadLogEntry{},
		})
		return
	}

	activities, err := h.store.CountActivities()
	if err != nil {
		activities = 0
	}
	uploads, err := h.store.ListUploadLogs(5)
	if err != nil {
		uploads = []*store.UploadLogEntry{}
	}

	seasonal := counts[model.CalendarSeasonal]
	cycle := counts[model.CalendarCycle]

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:     seasonal+cycle > 0,
		TotalCalendars:  seasonal + cycle,
		SeasonalCount:   seasonal,
		CycleCount:      cycle,
		TotalActivities: activities,
		RecentUploads:   uploads,
	})
}
