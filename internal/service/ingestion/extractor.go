package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

// DefaultPlantKeywords classify a task as plant (internal/operational) work.
var DefaultPlantKeywords = []string{"planta", "mantenimiento", "operación", "maquinaria"}

// ticketPattern splits a free-text project label into an order ticket and
// the plant remainder, e.g. "OT12-3-4567 - Acme Corp" or "DCI-12 Planta 2".
var ticketPattern = regexp.MustCompile(`^(OT\d{2}-\d-\d{3,5}|DCI-\d{2})\s*[-–]?\s*(.*)$`)

// dateFormats are tried in order; the first layout that parses wins.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

// ExtractOptions tune one extraction pass.
type ExtractOptions struct {
	FileType      timesheet.FileType
	PlantKeywords []string
}

// Extraction is the output of one pass: the raw record sequence plus the
// aggregates derived alongside it. Re-running Extract on the same bytes
// yields the same sequence.
type Extraction struct {
	Records []timesheet.Record
	Summary timesheet.ExtractionSummary

	// HasDates reports whether a date column was resolved. Aggregate
	// exports omit it and yield summary-only extractions.
	HasDates bool

	keywords  []string
	employees map[string]struct{}
}

// columnMap holds resolved column indexes; -1 means the column is absent.
type columnMap struct {
	ticket, client, employee, task, hours       int
	date, status, group, manager, projectStatus int
}

func newColumnMap() columnMap {
	return columnMap{
		ticket: -1, client: -1, employee: -1, task: -1, hours: -1,
		date: -1, status: -1, group: -1, manager: -1, projectStatus: -1,
	}
}

func (m columnMap) requiredComplete() bool {
	return m.ticket >= 0 && m.client >= 0 && m.employee >= 0 && m.task >= 0 && m.hours >= 0
}

// resolveColumns maps header names to record fields by case-insensitive
// substring match. When the five required columns cannot all be found by
// name the mapping falls back to the first five columns in fixed order
// (ticket, client, employee, task, hours) -- a deliberately lossy heuristic
// kept from the export tooling this replaces. Fewer than five columns is a
// schema error.
func resolveColumns(headers []string) (columnMap, error) {
	m := newColumnMap()

	for i, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case m.projectStatus < 0 && strings.Contains(name, "project status"):
			m.projectStatus = i
		case m.group < 0 && strings.Contains(name, "group"):
			m.group = i
		case m.employee < 0 && (strings.Contains(name, "employee") || strings.Contains(name, "empleado")):
			m.employee = i
		case m.manager < 0 && strings.Contains(name, "manager"):
			m.manager = i
		case m.hours < 0 && (strings.Contains(name, "hours") || strings.Contains(name, "horas")):
			m.hours = i
		case m.date < 0 && (strings.Contains(name, "date") || strings.Contains(name, "fecha")):
			m.date = i
		case m.status < 0 && strings.Contains(name, "status"):
			m.status = i
		case m.task < 0 && (strings.Contains(name, "task") || strings.Contains(name, "activ")):
			m.task = i
		case m.client < 0 && strings.Contains(name, "client"):
			m.client = i
		case m.ticket < 0 && (strings.Contains(name, "project") || strings.Contains(name, "ot")):
			m.ticket = i
		}
	}

	if m.requiredComplete() {
		return m, nil
	}

	if len(headers) < 5 {
		return m, fmt.Errorf("%w: found %d columns, need at least 5", timesheet.ErrSchema, len(headers))
	}

	slog.Warn("required columns not found by name, falling back to positional mapping")
	fallback := newColumnMap()
	fallback.ticket = 0
	fallback.client = 1
	fallback.employee = 2
	fallback.task = 3
	fallback.hours = 4
	// Optional columns found by name survive the fallback.
	fallback.date = m.date
	fallback.status = m.status
	fallback.group = m.group
	fallback.manager = m.manager
	fallback.projectStatus = m.projectStatus
	return fallback, nil
}

// ExtractCSV parses a normalized (UTF-8) CSV stream.
func ExtractCSV(r io.Reader, opts ExtractOptions) (*Extraction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, timesheet.ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = unwrapRepairedLine(header)

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	ex := newExtraction(opts)
	ex.HasDates = cols.date >= 0
	rowNum := 1
	for {
		fields, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// malformed row: skip, never abort the rest of the file
			ex.Summary.RowErrors++
			slog.Warn("skipping malformed CSV row", "row", rowNum, "error", err)
			rowNum++
			continue
		}
		rowNum++
		ex.consumeRow(unwrapRepairedLine(fields), cols, rowNum)
	}

	return ex, nil
}

// ExtractXLSX parses an Excel workbook; only the first sheet is read.
func ExtractXLSX(r io.Reader, opts ExtractOptions) (*Extraction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close workbook", "error", cerr)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, timesheet.ErrEmptyFile
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	ex := newExtraction(opts)
	ex.HasDates = cols.date >= 0
	for i, fields := range rows[1:] {
		ex.consumeRow(fields, cols, i+2)
	}

	return ex, nil
}

func newExtraction(opts ExtractOptions) *Extraction {
	keywords := opts.PlantKeywords
	if len(keywords) == 0 {
		keywords = DefaultPlantKeywords
	}
	return &Extraction{
		Summary: timesheet.ExtractionSummary{
			FileType:       opts.FileType,
			HoursByTicket:  make(map[string]timesheet.HourBucket),
			ClientByTicket: make(map[string]string),
		},
		keywords:  keywords,
		employees: make(map[string]struct{}),
	}
}

// consumeRow parses one raw field tuple into a Record and folds it into the
// aggregates. A malformed row is counted and skipped.
func (ex *Extraction) consumeRow(fields []string, cols columnMap, rowNum int) {
	if len(fields) < 5 {
		ex.Summary.RowErrors++
		return
	}

	get := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := timesheet.Record{
		EmployeeName: get(cols.employee),
		Task:         get(cols.task),
	}

	// Missing or non-numeric hours coerce to 0, they never fail the row.
	if hours, err := strconv.ParseFloat(get(cols.hours), 64); err == nil && hours >= 0 {
		rec.HoursWorked = hours
	}

	rec.OrderTicket, rec.PlantCode = SplitTicket(get(cols.ticket))

	if cols.status >= 0 {
		rec.SubmissionStatus = get(cols.status)
	} else {
		// Exports without a status column carry only submitted entries.
		rec.SubmissionStatus = timesheet.StatusSubmitted
	}
	rec.EmployeeGroup = get(cols.group)
	rec.Manager = get(cols.manager)
	rec.ProjectActive = strings.EqualFold(get(cols.projectStatus), "Active")

	if cols.date >= 0 {
		d, err := parseDate(get(cols.date))
		if err != nil {
			ex.Summary.RowErrors++
			slog.Warn("skipping row with unparseable date", "row", rowNum, "value", get(cols.date))
			return
		}
		rec.WorkDate = d
	}

	ex.fold(rec, get(cols.client))
	ex.Records = append(ex.Records, rec)
}

func (ex *Extraction) fold(rec timesheet.Record, client string) {
	if rec.EmployeeName != "" {
		ex.employees[rec.EmployeeName] = struct{}{}
		ex.Summary.EmployeeCount = len(ex.employees)
	}

	key := rec.OrderTicket
	if key == "" {
		key = rec.PlantCode
	}

	bucket := ex.Summary.HoursByTicket[key]
	bucket.Total += rec.HoursWorked
	if isPlantTask(rec.Task, ex.keywords) {
		bucket.Plant += rec.HoursWorked
		ex.Summary.PlantHours += rec.HoursWorked
	}
	ex.Summary.HoursByTicket[key] = bucket
	ex.Summary.TotalHours += rec.HoursWorked

	if client != "" {
		ex.Summary.ClientByTicket[key] = client
	}
}

// SplitTicket extracts an order-ticket identifier from a free-text project
// label. Non-matching labels keep the whole text as the plant code with an
// empty ticket.
func SplitTicket(label string) (ticket, plant string) {
	m := ticketPattern.FindStringSubmatch(label)
	if m == nil {
		return "", label
	}
	return m[1], strings.TrimSpace(m[2])
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

func isPlantTask(task string, keywords []string) bool {
	lower := strings.ToLower(task)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// unwrapRepairedLine undoes the quote-repair wrapping: a repaired line
// reaches the CSV reader as a single field still holding comma separators.
func unwrapRepairedLine(fields []string) []string {
	if len(fields) == 1 && strings.Contains(fields[0], ",") {
		return strings.Split(fields[0], ",")
	}
	return fields
}
