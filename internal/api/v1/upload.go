package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samankwah/agromet-sub002/internal/model"
	"github.com/samankwah/agromet-sub002/internal/parser"
)

// readUpload pulls the spreadsheet bytes and hint fields out of a
// multipart form.
func readUpload(c *gin.Context) ([]byte, string, model.UploadHints, error) {
	var hints model.UploadHints

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", hints, fmt.Errorf("no file in upload")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", hints, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", hints, fmt.Errorf("failed to read upload: %w", err)
	}

	year, _ := strconv.Atoi(c.PostForm("year"))
	hints = model.UploadHints{
		Region:      strings.TrimSpace(c.PostForm("region")),
		District:    strings.TrimSpace(c.PostForm("district")),
		Commodity:   strings.TrimSpace(c.PostForm("commodity")),
		PoultryType: strings.TrimSpace(c.PostForm("poultryType")),
		Year:        year,
	}
	return data, fileHeader.Filename, hints, nil
}

// PreviewUpload parses an upload and returns the result without
// persisting anything.
// POST /api/calendars/preview
func (h *Handler) PreviewUpload(c *gin.Context) {
	data, filename, hints, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.imports.Analyze(c.Request.Context(), data, filename, hints)
	if err != nil {
		c.JSON(parseErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// ImportUpload parses and persists an upload, streaming progress events
// as SSE.
// POST /api/calendars/import
func (h *Handler) ImportUpload(c *gin.Context) {
	data, filename, hints, err := readUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	events := h.imports.Import(c.Request.Context(), data, filename, hints)
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			continue
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

// parseErrorStatus maps pipeline failures onto HTTP statuses.
func parseErrorStatus(err error) int {
	switch {
	case parser.IsResourceLimit(err):
		return http.StatusRequestEntityTooLarge
	case parser.IsUnreadable(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
