package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kep-sistemas/kep-backend-go/internal/domain/timesheet"
)

func TestSplitTicket(t *testing.T) {
	cases := []struct {
		label  string
		ticket string
		plant  string
	}{
		{"OT12-3-4567 - Acme Corp", "OT12-3-4567", "Acme Corp"},
		{"OT12-3-456 Acme", "OT12-3-456", "Acme"},
		{"OT12-3-45678 – Proyecto X", "OT12-3-45678", "Proyecto X"},
		{"DCI-12 Planta 2", "DCI-12", "Planta 2"},
		{"DCI-07", "DCI-07", ""},
		{"Planta General", "", "Planta General"},
		{"OT1-2-345", "", "OT1-2-345"}, // too few digits in the prefix
		{"", "", ""},
	}
	for _, c := range cases {
		ticket, plant := SplitTicket(c.label)
		if ticket != c.ticket || plant != c.plant {
			t.Errorf("SplitTicket(%q) = (%q, %q), want (%q, %q)", c.label, ticket, plant, c.ticket, c.plant)
		}
	}
}

func TestResolveColumnsByName(t *testing.T) {
	headers := []string{"Date", "Employee Name", "Project / OT", "Client", "Task", "Hours", "Status", "Employee Group", "Manager", "Project Status (Count)"}

	cols, err := resolveColumns(headers)
	require.NoError(t, err)

	assert.Equal(t, 0, cols.date)
	assert.Equal(t, 1, cols.employee)
	assert.Equal(t, 2, cols.ticket)
	assert.Equal(t, 3, cols.client)
	assert.Equal(t, 4, cols.task)
	assert.Equal(t, 5, cols.hours)
	assert.Equal(t, 6, cols.status)
	assert.Equal(t, 7, cols.group)
	assert.Equal(t, 8, cols.manager)
	assert.Equal(t, 9, cols.projectStatus)
}

func TestResolveColumnsPositionalFallback(t *testing.T) {
	headers := []string{"Col A", "Col B", "Col C", "Col D", "Col E", "Fecha"}

	cols, err := resolveColumns(headers)
	require.NoError(t, err)

	assert.Equal(t, 0, cols.ticket)
	assert.Equal(t, 1, cols.client)
	assert.Equal(t, 2, cols.employee)
	assert.Equal(t, 3, cols.task)
	assert.Equal(t, 4, cols.hours)
	// named optional columns survive the fallback
	assert.Equal(t, 5, cols.date)
	assert.Equal(t, -1, cols.status)
}

func TestResolveColumnsTooFew(t *testing.T) {
	_, err := resolveColumns([]string{"Col A", "Col B"})
	require.Error(t, err)
	assert.ErrorIs(t, err, timesheet.ErrSchema)
}

func TestExtractCSV(t *testing.T) {
	input := strings.Join([]string{
		"Project,Client,Employee,Task,Hours,Date,Status",
		"OT12-3-4567 - Acme,Acme Corp,Juan Perez,Diseño electrico,8,2024-03-04,Submitted",
		"OT12-3-4567 - Acme,Acme Corp,Maria Lopez,Mantenimiento preventivo,4.5,2024-03-04,Submitted",
		"Planta General,,Juan Perez,Operación de maquinaria,2,2024-03-05,Submitted",
		"OT12-3-4567 - Acme,Acme Corp,Juan Perez,Borrador,3,2024-03-05,Draft",
		"OT12-3-4567 - Acme,Acme Corp,Pedro Gomez,Soporte,not-a-number,2024-03-05,Submitted",
		"OT12-3-4567 - Acme,Acme Corp,Pedro Gomez,Soporte,1,bad-date,Submitted",
	}, "\n")

	ex, err := ExtractCSV(strings.NewReader(input), ExtractOptions{FileType: timesheet.FileTypeTotal})
	require.NoError(t, err)

	// Six data rows: the bad-date row is dropped, the rest survive, with
	// unparseable hours coerced to zero.
	require.Len(t, ex.Records, 5)
	assert.True(t, ex.HasDates)
	assert.Equal(t, 1, ex.Summary.RowErrors)
	assert.Equal(t, 3, ex.Summary.EmployeeCount)
	assert.InDelta(t, 17.5, ex.Summary.TotalHours, 0.001)
	assert.InDelta(t, 6.5, ex.Summary.PlantHours, 0.001) // mantenimiento + operación

	assert.Equal(t, "OT12-3-4567", ex.Records[0].OrderTicket)
	assert.Equal(t, "Acme", ex.Records[0].PlantCode)
	assert.Equal(t, timesheet.StatusDraft, ex.Records[3].SubmissionStatus)
	assert.Equal(t, 0.0, ex.Records[4].HoursWorked)

	bucket := ex.Summary.HoursByTicket["OT12-3-4567"]
	assert.InDelta(t, 15.5, bucket.Total, 0.001)
	assert.InDelta(t, 4.5, bucket.Plant, 0.001)
	assert.Equal(t, "Acme Corp", ex.Summary.ClientByTicket["OT12-3-4567"])

	plantBucket := ex.Summary.HoursByTicket["Planta General"]
	assert.InDelta(t, 2.0, plantBucket.Total, 0.001)
}

func TestExtractCSVNoStatusColumn(t *testing.T) {
	input := "Project,Client,Employee,Task,Hours\n" +
		"OT12-3-4567,Acme,Juan,Soporte,8\n"

	ex, err := ExtractCSV(strings.NewReader(input), ExtractOptions{FileType: timesheet.FileTypeMensual})
	require.NoError(t, err)
	require.Len(t, ex.Records, 1)
	assert.False(t, ex.HasDates)
	assert.Equal(t, timesheet.StatusSubmitted, ex.Records[0].SubmissionStatus)
	assert.True(t, ex.Records[0].WorkDate.IsZero())
}

func TestExtractCSVEmpty(t *testing.T) {
	_, err := ExtractCSV(strings.NewReader(""), ExtractOptions{FileType: timesheet.FileTypeTotal})
	assert.ErrorIs(t, err, timesheet.ErrEmptyFile)
}

func TestExtractCSVCustomPlantKeywords(t *testing.T) {
	input := "Project,Client,Employee,Task,Hours\n" +
		"Planta,Acme,Juan,Soldadura,8\n" +
		"Planta,Acme,Juan,Mantenimiento,2\n"

	ex, err := ExtractCSV(strings.NewReader(input), ExtractOptions{
		FileType:      timesheet.FileTypeTotal,
		PlantKeywords: []string{"soldadura"},
	})
	require.NoError(t, err)

	// Only the custom keyword classifies as plant; the default set is
	// fully replaced.
	assert.InDelta(t, 8.0, ex.Summary.PlantHours, 0.001)
}

func TestParseDateFormats(t *testing.T) {
	valid := []string{"2024-03-04", "2024-03-04 13:45:00", "04/03/2024", "04-03-2024"}
	for _, v := range valid {
		if _, err := parseDate(v); err != nil {
			t.Errorf("parseDate(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"", "March 4 2024", "2024/03/04"}
	for _, v := range invalid {
		if _, err := parseDate(v); err == nil {
			t.Errorf("parseDate(%q) expected error", v)
		}
	}
}
