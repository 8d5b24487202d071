package event

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PoodingDev/Evento-BE/internal/domain/apperrors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var log = logrus.New()

// Upload is a bulk event file handed to UploadEvents.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// RowResult reports the outcome of a single uploaded row.
type RowResult struct {
	Row     int       `json:"row"`
	EventID uuid.UUID `json:"event_id,omitempty"`
	Action  string    `json:"action,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// UploadReport summarizes a bulk upload.
type UploadReport struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Rows    []RowResult `json:"rows"`
}

var uploadColumns = []string{"calendar_id", "title", "description", "start_time", "end_time", "is_public"}

type uploadRow struct {
	eventID    uuid.UUID
	calendarID uuid.UUID
	title      string
	desc       string
	start      time.Time
	end        time.Time
	isPublic   bool
}

func readRows(upload Upload) ([][]string, error) {
	name := strings.ToLower(upload.Filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return csv.NewReader(upload.Reader).ReadAll()
	case strings.HasSuffix(name, ".xlsx"):
		f, err := excelize.OpenReader(upload.Reader)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindValidation, "cannot open excel file", err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.Validation("excel file has no sheets")
		}
		return f.GetRows(sheets[0])
	default:
		return nil, apperrors.Newf(apperrors.KindValidation, "unsupported upload format %q", upload.Filename)
	}
}

// columnIndex maps header names to positions. Required columns missing is a
// validation error; an optional event_id column switches a row to update.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range uploadColumns {
		if _, ok := idx[col]; !ok {
			return nil, apperrors.Newf(apperrors.KindValidation, "missing required column %q", col)
		}
	}
	return idx, nil
}

func cell(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseUploadTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func parseRow(record []string, idx map[string]int) (*uploadRow, error) {
	row := &uploadRow{}

	if raw := cell(record, idx, "event_id"); raw != "" {
		id, err := ParseID(raw)
		if err != nil {
			return nil, err
		}
		row.eventID = id
	}

	calID, err := uuid.Parse(cell(record, idx, "calendar_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid calendar_id: %w", err)
	}
	row.calendarID = calID

	row.title = cell(record, idx, "title")
	row.desc = cell(record, idx, "description")

	if row.start, err = parseUploadTime(cell(record, idx, "start_time")); err != nil {
		return nil, err
	}
	if row.end, err = parseUploadTime(cell(record, idx, "end_time")); err != nil {
		return nil, err
	}

	if row.isPublic, err = strconv.ParseBool(cell(record, idx, "is_public")); err != nil {
		return nil, fmt.Errorf("invalid is_public: %w", err)
	}
	return row, nil
}

// UploadEvents ingests a CSV or Excel file. Rows carrying an event_id update
// that event, others create a new one. Permission is checked per row, and a
// failed row never aborts the rest of the file.
func (s *service) UploadEvents(ctx context.Context, userID uuid.UUID, upload Upload) (*UploadReport, error) {
	records, err := readRows(upload)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, apperrors.Validation("upload contains no data rows")
	}

	idx, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	report := &UploadReport{}
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, after the header
		result := RowResult{Row: rowNum}

		row, err := parseRow(record, idx)
		if err == nil {
			err = s.applyRow(ctx, userID, row, &result)
		}
		if err != nil {
			result.Error = err.Error()
			report.Failed++
			log.Errorf("upload row %d failed: %v", rowNum, err)
		}
		report.Rows = append(report.Rows, result)
	}

	for _, r := range report.Rows {
		if r.Action == "created" {
			report.Created++
		} else if r.Action == "updated" {
			report.Updated++
		}
	}

	log.Infof("event upload processed: %d created, %d updated, %d failed",
		report.Created, report.Updated, report.Failed)
	return report, nil
}

func (s *service) applyRow(ctx context.Context, userID uuid.UUID, row *uploadRow, result *RowResult) error {
	visibility := VisibilityOf(row.isPublic)

	if row.eventID != uuid.Nil {
		updated, err := s.UpdateEvent(ctx, userID, row.eventID, UpdateEventInput{
			Title:       &row.title,
			Description: &row.desc,
			StartTime:   &row.start,
			EndTime:     &row.end,
			Visibility:  &visibility,
		})
		if err != nil {
			return err
		}
		result.EventID = updated.ID
		result.Action = "updated"
		return nil
	}

	created, err := s.CreateEvent(ctx, userID, CreateEventInput{
		CalendarID:  row.calendarID,
		Title:       row.title,
		Description: row.desc,
		StartTime:   row.start,
		EndTime:     row.end,
		Visibility:  visibility,
	})
	if err != nil {
		return err
	}
	result.EventID = created.ID
	result.Action = "created"
	return nil
}
