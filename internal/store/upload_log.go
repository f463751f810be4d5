package store

import (
	"fmt"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// CreateUploadLog records the start of an upload and returns its id.
func (s *Store) CreateUploadLog(filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (filename, file_size, file_hash, status)
		VALUES (?, ?, ?, 'processing')
	`, filename, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// CompleteUploadLog marks an upload finished with its extraction stats.
func (s *Store) CompleteUploadLog(id int64, calendarID string, stats model.ExtractionStats) error {
	_, err := s.db.Exec(`
		UPDATE upload_logs SET
			calendar_id = ?,
			status = 'completed',
			sheets_processed = ?,
			activities_extracted = ?,
			activities_excluded = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, calendarID, stats.SheetsProcessed, stats.ActivitiesExtracted, stats.ActivitiesExcluded, id)
	if err != nil {
		return fmt.Errorf("failed to complete upload log: %w", err)
	}
	return nil
}

// FailUploadLog marks an upload failed with the reason.
func (s *Store) FailUploadLog(id int64, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE upload_logs SET
			status = 'failed',
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to mark upload log failed: %w", err)
	}
	return nil
}

// UploadLogEntry is one row of the upload history.
type UploadLogEntry struct {
	ID                  int64  `json:"id"`
	Filename            string `json:"filename"`
	FileSize            int64  `json:"fileSize"`
	FileHash            string `json:"fileHash"`
	CalendarID          string `json:"calendarId"`
	Status              string `json:"status"`
	ErrorMessage        string `json:"errorMessage"`
	SheetsProcessed     int    `json:"sheetsProcessed"`
	ActivitiesExtracted int    `json:"activitiesExtracted"`
	CreatedAt           string `json:"createdAt"`
}

// ListUploadLogs returns the newest upload log entries, up to limit.
func (s *Store) ListUploadLogs(limit int) ([]*UploadLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, filename, file_size, file_hash,
			COALESCE(calendar_id, ''), status, error_message,
			sheets_processed, activities_extracted, created_at
		FROM upload_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	entries := []*UploadLogEntry{}
	for rows.Next() {
		e := &UploadLogEntry{}
		if err := rows.Scan(
			&e.ID, &e.Filename, &e.FileSize, &e.FileHash,
			&e.CalendarID, &e.Status, &e.ErrorMessage,
			&e.SheetsProcessed, &e.ActivitiesExtracted, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
