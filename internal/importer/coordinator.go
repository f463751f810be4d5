package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/samankwah/agromet-sub002/internal/config"
	"github.com/samankwah/agromet-sub002/internal/model"
	"github.com/samankwah/agromet-sub002/internal/parser"
	"github.com/samankwah/agromet-sub002/internal/store"
)

// Coordinator runs uploads through the extraction pipeline and persists
// the results. Concurrent parses are bounded so a burst of uploads cannot
// exhaust memory.
type Coordinator struct {
	store   *store.Store
	log     *zap.Logger
	sem     *semaphore.Weighted
	opts    parser.Options
	timeout time.Duration
}

// NewCoordinator builds a coordinator from the application configuration.
func NewCoordinator(st *store.Store, cfg *config.AppConfig, log *zap.Logger) *Coordinator {
	opts := parser.Options{
		ColorOnlyMarkers: cfg.Extract.ColorOnlyMarkers,
		Limits: parser.Limits{
			MaxFileBytes:     int64(cfg.Limits.MaxFileMB) << 20,
			MaxSheets:        cfg.Limits.MaxSheets,
			MaxCellsPerSheet: cfg.Limits.MaxCellsPerSheet,
		},
	}
	slots := cfg.Limits.MaxConcurrentParses
	if slots < 1 {
		slots = 1
	}
	return &Coordinator{
		store:   st,
		log:     log,
		sem:     semaphore.NewWeighted(int64(slots)),
		opts:    opts,
		timeout: time.Duration(cfg.Limits.ParseTimeoutSeconds) * time.Second,
	}
}

// ProgressEvent is one step of an import, streamed to the client.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/parsed/warning/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Analyze parses an upload without persisting anything. The result has
// no ids because nothing was stored.
func (c *Coordinator) Analyze(ctx context.Context, data []byte, filename string, hints model.UploadHints) (*model.CalendarResult, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire parse slot: %w", err)
	}
	defer c.sem.Release(1)

	parseCtx, cancel := c.parseContext(ctx)
	defer cancel()
	return parser.Parse(parseCtx, data, filename, hints, c.opts)
}

// Import parses an upload, persists the calendar, and returns a channel
// of progress events. The channel closes when the import finishes either
// way.
func (c *Coordinator) Import(ctx context.Context, data []byte, filename string, hints model.UploadHints) <-chan ProgressEvent {
	events := make(chan ProgressEvent, 100)

	go func() {
		defer close(events)
		c.doImport(ctx, data, filename, hints, events)
	}()

	return events
}

func (c *Coordinator) doImport(ctx context.Context, data []byte, filename string, hints model.UploadHints, events chan ProgressEvent) {
	start := time.Now()

	c.send(events, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("importing %s", filename),
		Data: map[string]interface{}{
			"filename": filename,
			"size":     len(data),
		},
		Timestamp: time.Now(),
	})

	sum := sha256.Sum256(data)
	logID, err := c.store.CreateUploadLog(filename, int64(len(data)), hex.EncodeToString(sum[:]))
	if err != nil {
		c.fail(events, 0, fmt.Errorf("failed to record upload: %w", err))
		return
	}

	if err := c.sem.Acquire(ctx, 1); err != nil {
		c.fail(events, logID, fmt.Errorf("failed to acquire parse slot: %w", err))
		return
	}
	parseCtx, cancel := c.parseContext(ctx)
	res, err := parser.Parse(parseCtx, data, filename, hints, c.opts)
	cancel()
	c.sem.Release(1)
	if err != nil {
		c.fail(events, logID, err)
		return
	}

	c.send(events, ProgressEvent{
		Type: "parsed",
		Message: fmt.Sprintf("extracted %d activities from %d sheets",
			res.Stats.ActivitiesExtracted, res.Stats.SheetsProcessed),
		Data: map[string]interface{}{
			"calendar_type":        res.CalendarType,
			"sheets_processed":     res.Stats.SheetsProcessed,
			"activities_extracted": res.Stats.ActivitiesExtracted,
			"activities_excluded":  res.Stats.ActivitiesExcluded,
		},
		Timestamp: time.Now(),
	})

	for _, d := range res.Diagnostics {
		c.send(events, ProgressEvent{
			Type:      "warning",
			Message:   d.Sheet + ": " + d.Note,
			Timestamp: time.Now(),
		})
	}

	assignIDs(res)

	if err := c.store.SaveCalendar(res); err != nil {
		c.fail(events, logID, fmt.Errorf("failed to save calendar: %w", err))
		return
	}
	if err := c.store.CompleteUploadLog(logID, res.ID, res.Stats); err != nil {
		// calendar is saved, only the log row is stale
		c.log.Warn("failed to complete upload log", zap.Int64("log_id", logID), zap.Error(err))
	}

	c.log.Info("import complete",
		zap.String("calendar_id", res.ID),
		zap.String("file", filename),
		zap.String("type", string(res.CalendarType)),
		zap.Int("activities", res.Stats.ActivitiesExtracted),
		zap.Duration("took", time.Since(start)))

	c.send(events, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("import finished in %s", time.Since(start).Round(time.Millisecond)),
		Data:      res,
		Timestamp: time.Now(),
	})
}

// parseContext bounds one parse. A zero timeout means the caller's
// context is the only bound.
func (c *Coordinator) parseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Coordinator) fail(events chan ProgressEvent, logID int64, err error) {
	if logID > 0 {
		if lerr := c.store.FailUploadLog(logID, err.Error()); lerr != nil {
			c.log.Warn("failed to mark upload failed", zap.Int64("log_id", logID), zap.Error(lerr))
		}
	}
	c.log.Error("import failed", zap.Error(err))
	c.send(events, ProgressEvent{
		Type:      "error",
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}

// assignIDs stamps fresh ids on a calendar about to be persisted. The
// parse pipeline leaves ids empty so identical uploads produce identical
// results.
func assignIDs(res *model.CalendarResult) {
	res.ID = uuid.New().String()
	for _, a := range res.Activities {
		a.ID = uuid.New().String()
	}
}

// send delivers an event without blocking.
func (c *Coordinator) send(ch chan ProgressEvent, ev ProgressEvent) {
	select {
	case ch <- ev:
	default:
		// channel full, drop
	}
}
