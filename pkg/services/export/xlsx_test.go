package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func sampleReport() (*domain.Report, []domain.Record) {
	report := &domain.Report{
		Title:       "P1 Buyout Report",
		ProjectID:   "P1",
		Kind:        domain.RecordKindBuyout,
		GeneratedAt: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		TotalAmount: 1200,
		Currency:    "USD",
		Sections: []domain.ReportSection{
			{Title: "Summary", Summary: map[string]string{"Records": "1", "At risk": "1"}},
			{Title: "Insights", Details: []domain.ReportDetail{{Name: "Budget overrun", Value: "CRITICAL", Description: "Actual exceeds budget."}}},
			{Title: "Status"},
		},
	}
	recs := []domain.Record{{ID: "BO-1", Name: "Steel", Status: domain.StatusExecuted, Budget: 1000, Actual: 1250, ContractValue: 1200}}
	return report, recs
}

func TestSave(t *testing.T) {
	report, recs := sampleReport()
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, Save(path, report, recs, format.Default()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)

	names := make([]string, 0, len(f.Sheets))
	for _, s := range f.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Overview", "Insights", "Data"}, names)

	overview := f.Sheet["Overview"]
	assert.Equal(t, "Title", overview.Rows[0].Cells[0].String())
	assert.Equal(t, "P1 Buyout Report", overview.Rows[0].Cells[1].String())
	assert.Equal(t, "$1,200.00", overview.Rows[4].Cells[1].String())
	assert.Equal(t, "At risk", overview.Rows[5].Cells[0].String())

	insights := f.Sheet["Insights"]
	require.Len(t, insights.Rows, 2)
	assert.Equal(t, "Budget overrun", insights.Rows[1].Cells[0].String())

	data := f.Sheet["Data"]
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "BO-1", data.Rows[1].Cells[0].String())
	assert.Equal(t, "250", data.Rows[1].Cells[7].String())
	assert.Equal(t, format.Placeholder, data.Rows[1].Cells[9].String())
}

func TestWrite(t *testing.T) {
	report, recs := sampleReport()
	var buf bytes.Buffer

	require.NoError(t, Write(&buf, report, recs, format.Default()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")), "xlsx is a zip archive")
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Risk-Budget", sheetName("Risk/Budget"))
	assert.Len(t, sheetName("A very long section title that Excel rejects"), maxSheetName)
}
