// Package export renders dashboard reports as Excel workbooks.
package export

import (
	"io"
	"sort"
	"strings"

	"github.com/de-tools/project-atlas/pkg/models/domain"
	"github.com/de-tools/project-atlas/pkg/services/format"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Excel caps sheet names at 31 characters.
const maxSheetName = 31

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var dataHeader = []string{"ID", "Name", "Project", "Status", "Budget", "Contract Value", "Actual", "Variance", "Percent Complete", "Due Date"}

// Workbook lays out one sheet for the report overview, one per detailed section and a "Data"
// sheet with the numeric record values.
func Workbook(report *domain.Report, recs []domain.Record, f *format.Formatter) (*xlsx.File, error) {
	file := xlsx.NewFile()

	overview, err := file.AddSheet("Overview")
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add overview sheet")
	}
	addStrings(overview, "Title", report.Title)
	addStrings(overview, "Project", report.ProjectID)
	addStrings(overview, "Kind", string(report.Kind))
	addStrings(overview, "Generated", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	addStrings(overview, "Total Amount", f.Currency(report.TotalAmount, report.Currency))

	for _, section := range report.Sections {
		keys := make([]string, 0, len(section.Summary))
		for k := range section.Summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			addStrings(overview, k, section.Summary[k])
		}

		if len(section.Details) == 0 {
			continue
		}
		sheet, err := file.AddSheet(sheetName(section.Title))
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: add sheet %q", section.Title)
		}
		addStrings(sheet, "Name", "Value", "Unit", "Description")
		for _, d := range section.Details {
			addStrings(sheet, d.Name, d.Value, d.Unit, d.Description)
		}
	}

	data, err := file.AddSheet("Data")
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add data sheet")
	}
	addStrings(data, dataHeader...)
	for _, r := range recs {
		row := data.AddRow()
		row.AddCell().SetString(r.ID)
		row.AddCell().SetString(r.Name)
		row.AddCell().SetString(r.ProjectID)
		row.AddCell().SetString(string(r.Status))
		row.AddCell().SetFloat(r.Budget)
		row.AddCell().SetFloat(r.ContractValue)
		row.AddCell().SetFloat(r.Actual)
		row.AddCell().SetFloat(r.Actual - r.Budget)
		row.AddCell().SetFloat(r.PercentComplete)
		row.AddCell().SetString(f.Date(r.DueDate))
	}

	return file, nil
}

func Write(w io.Writer, report *domain.Report, recs []domain.Record, f *format.Formatter) error {
	file, err := Workbook(report, recs, f)
	if err != nil {
		return err
	}
	return eris.Wrap(file.Write(w), "xlsx: write workbook")
}

func Save(path string, report *domain.Report, recs []domain.Record, f *format.Formatter) error {
	file, err := Workbook(report, recs, f)
	if err != nil {
		return err
	}
	return eris.Wrapf(file.Save(path), "xlsx: save %s", path)
}

func addStrings(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, title)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}
