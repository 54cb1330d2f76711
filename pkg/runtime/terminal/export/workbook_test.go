package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	change := 50.0
	report := &domain.Report{
		Title:       "Revenue report (daily by day)",
		Period:      domain.TimePeriod{Duration: 7, Label: "May 8, 2023 to May 15, 2023"},
		TotalAmount: 1500,
		Currency:    "USD",
		Sections: []domain.ReportSection{
			{
				Title:   "Period comparison",
				Columns: []string{"Metric", "Current", "Previous", "Change"},
				Details: []domain.ReportDetail{
					{Name: "Revenue", Values: []string{"$1,500", "$1,000"}, Change: &change},
				},
			},
			{
				Title:   "Revenue by day",
				Columns: []string{"Period", "Revenue", "Orders"},
				Summary: map[string]interface{}{"Buckets": 1},
				Details: []domain.ReportDetail{
					{Name: "2023-05-12", Values: []string{"$1,500", "2"}},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(report, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Overview", "Period comparison", "Revenue by day"}, f.GetSheetList())

	overview, err := f.GetRows("Overview")
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Revenue report (daily by day)"}, overview[0])
	assert.Equal(t, []string{"Total revenue", "1500"}, overview[4])

	comparison, err := f.GetRows("Period comparison")
	require.NoError(t, err)
	require.Len(t, comparison, 2)
	assert.Equal(t, []string{"Metric", "Current", "Previous", "Change"}, comparison[0])
	assert.Equal(t, []string{"Revenue", "$1,500", "$1,000", "50"}, comparison[1])

	buckets, err := f.GetRows("Revenue by day")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buckets", "1"}, buckets[0])
	assert.Equal(t, []string{"2023-05-12", "$1,500", "2"}, buckets[len(buckets)-1])
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{"Overview": true}

	assert.Equal(t, "Revenue by day", sheetName("Revenue by day", used))
	assert.Equal(t, "Revenue by day (2)", sheetName("Revenue by day", used))
	assert.Equal(t, "Q1-Q2 - growth", sheetName("Q1/Q2 : growth", used))
	assert.Equal(t, "Section", sheetName("", used))

	long := sheetName(strings.Repeat("x", 40), used)
	assert.Len(t, long, 31)
	assert.Len(t, sheetName(strings.Repeat("x", 40), used), 31)
}

func TestWriteWorkbook_Nil(t *testing.T) {
	assert.Error(t, WriteWorkbook(nil, filepath.Join(t.TempDir(), "x.xlsx")))
}
