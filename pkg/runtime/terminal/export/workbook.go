package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet = "Overview"
	maxSheetName  = 31
)

// WriteWorkbook saves report as an xlsx file with an overview sheet and one
// sheet per section.
func WriteWorkbook(report *domain.Report, path string) error {
	if report == nil {
		return fmt.Errorf("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return fmt.Errorf("failed to rename default sheet: %w", err)
	}
	overview := [][]interface{}{
		{"Title", report.Title},
		{"Period", report.Period.Label},
		{"Days", report.Period.Duration},
		{"Currency", report.Currency},
		{"Total revenue", report.TotalAmount},
	}
	if err := writeRows(f, overviewSheet, overview); err != nil {
		return err
	}

	used := map[string]bool{overviewSheet: true}
	for _, section := range report.Sections {
		name := sheetName(section.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		if err := writeRows(f, name, sectionRows(section)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func sectionRows(section domain.ReportSection) [][]interface{} {
	var rows [][]interface{}

	keys := make([]string, 0, len(section.Summary))
	for key := range section.Summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows = append(rows, []interface{}{key, section.Summary[key]})
	}
	if len(keys) > 0 {
		rows = append(rows, []interface{}{})
	}

	header := make([]interface{}, 0, len(section.Columns))
	for _, c := range section.Columns {
		header = append(header, c)
	}
	rows = append(rows, header)

	for _, d := range section.Details {
		row := []interface{}{d.Name}
		for _, v := range d.Values {
			row = append(row, v)
		}
		if d.Change != nil {
			row = append(row, *d.Change)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// sheetName trims title to the xlsx limit, strips characters sheet names
// cannot hold, and suffixes duplicates.
func sheetName(title string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, title)
	if name == "" {
		name = "Section"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}

	candidate := name
	for i := 2; used[candidate]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = name[:min(len(name), maxSheetName-len(suffix))] + suffix
	}
	used[candidate] = true
	return candidate
}
