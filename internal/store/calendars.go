package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samankwah/agromet-sub002/internal/model"
)

// SaveCalendar persists one parse result and its activities atomically.
// IDs must already be assigned by the caller.
func (s *Store) SaveCalendar(cal *model.CalendarResult) error {
	palette, err := json.Marshal(cal.ColorPalette)
	if err != nil {
		return fmt.Errorf("failed to encode color palette: %w", err)
	}
	diags, err := json.Marshal(cal.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO calendars (
			id, source_file, calendar_type,
			region, district, commodity, poultry_type, year,
			color_palette, diagnostics,
			sheets_processed, activities_extracted, activities_excluded, colors_resolved_ratio
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		cal.ID, cal.SourceFile, string(cal.CalendarType),
		cal.Hints.Region, cal.Hints.District, cal.Hints.Commodity, cal.Hints.PoultryType, cal.Hints.Year,
		string(palette), string(diags),
		cal.Stats.SheetsProcessed, cal.Stats.ActivitiesExtracted, cal.Stats.ActivitiesExcluded, cal.Stats.ColorsResolvedRatio,
	)
	if err != nil {
		return fmt.Errorf("failed to insert calendar: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO activities (
			id, calendar_id, name, start_period, end_period,
			period_colors, dominant_color, source_sheet, source_row, position
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, a := range cal.Activities {
		colors, err := json.Marshal(a.PeriodColors)
		if err != nil {
			return fmt.Errorf("failed to encode period colors: %w", err)
		}
		if _, err := stmt.Exec(
			a.ID, cal.ID, a.Name, a.StartPeriod, a.EndPeriod,
			string(colors), a.DominantColor, a.SourceSheet, a.SourceRow, i,
		); err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCalendar loads one stored calendar with all its activities.
func (s *Store) GetCalendar(id string) (*model.CalendarResult, error) {
	cal := &model.CalendarResult{ID: id}
	var calType, palette, diags string

	err := s.db.QueryRow(`
		SELECT source_file, calendar_type,
			region, district, commodity, poultry_type, year,
			color_palette, diagnostics,
			sheets_processed, activities_extracted, activities_excluded, colors_resolved_ratio
		FROM calendars WHERE id = ?
	`, id).Scan(
		&cal.SourceFile, &calType,
		&cal.Hints.Region, &cal.Hints.District, &cal.Hints.Commodity, &cal.Hints.PoultryType, &cal.Hints.Year,
		&palette, &diags,
		&cal.Stats.SheetsProcessed, &cal.Stats.ActivitiesExtracted, &cal.Stats.ActivitiesExcluded, &cal.Stats.ColorsResolvedRatio,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar: %w", err)
	}

	cal.CalendarType = model.CalendarType(calType)
	if err := json.Unmarshal([]byte(palette), &cal.ColorPalette); err != nil {
		return nil, fmt.Errorf("failed to decode color palette: %w", err)
	}
	if err := json.Unmarshal([]byte(diags), &cal.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, name, start_period, end_period, period_colors, dominant_color, source_sheet, source_row
		FROM activities WHERE calendar_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	cal.Activities = []*model.Activity{}
	for rows.Next() {
		a := &model.Activity{}
		var colors string
		if err := rows.Scan(&a.ID, &a.Name, &a.StartPeriod, &a.EndPeriod, &colors, &a.DominantColor, &a.SourceSheet, &a.SourceRow); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if err := json.Unmarshal([]byte(colors), &a.PeriodColors); err != nil {
			return nil, fmt.Errorf("failed to decode period colors: %w", err)
		}
		cal.Activities = append(cal.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return cal, nil
}

// CalendarFilter narrows ListCalendars. Zero values mean no filtering.
type CalendarFilter struct {
	Type      string
	Region    string
	District  string
	Commodity string
	Year      int
}

// ListCalendars returns stored calendar summaries, newest first.
func (s *Store) ListCalendars(filter CalendarFilter) ([]*model.CalendarSummary, error) {
	conds := []string{}
	args := []interface{}{}
	if filter.Type != "" {
		conds = append(conds, "c.calendar_type = ?")
		args = append(args, filter.Type)
	}
	if filter.Region != "" {
		conds = append(conds, "c.region = ?")
		args = append(args, filter.Region)
	}
	if filter.District != "" {
		conds = append(conds, "c.district = ?")
		args = append(args, filter.District)
	}
	if filter.Commodity != "" {
		conds = append(conds, "c.commodity = ?")
		args = append(args, filter.Commodity)
	}
	if filter.Year != 0 {
		conds = append(conds, "c.year = ?")
		args = append(args, filter.Year)
	}

	query := `
		SELECT c.id, c.source_file, c.calendar_type,
			c.region, c.district, c.commodity, c.poultry_type, c.year,
			(SELECT COUNT(*) FROM activities a WHERE a.calendar_id = c.id),
			c.created_at
		FROM calendars c
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	defer rows.Close()

	summaries := []*model.CalendarSummary{}
	for rows.Next() {
		sum := &model.CalendarSummary{}
		var calType string
		if err := rows.Scan(
			&sum.ID, &sum.SourceFile, &calType,
			&sum.Region, &sum.District, &sum.Commodity, &sum.PoultryType, &sum.Year,
			&sum.ActivityCount, &sum.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar summary: %w", err)
		}
		sum.CalendarType = model.CalendarType(calType)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendars: %w", err)
	}
	return summaries, nil
}

// DeleteCalendar removes a calendar and its activities.
func (s *Store) DeleteCalendar(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM activities WHERE calendar_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete activities: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM calendars WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountCalendarsByType returns stored calendar counts keyed by type.
func (s *Store) CountCalendarsByType() (map[model.CalendarType]int, error) {
	rows, err := s.db.Query(`SELECT calendar_type, COUNT(*) FROM calendars GROUP BY calendar_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count calendars: %w", err)
	}
	defer rows.Close()

	counts := map[model.CalendarType]int{}
	for rows.Next() {
		var calType string
		var n int
		if err := rows.Scan(&calType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan calendar count: %w", err)
		}
		counts[model.CalendarType(calType)] = n
	}
	return counts, rows.Err()
}

// CountActivities returns the total number of stored activities.
func (s *Store) CountActivities() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}
