package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Reporter renders reports to a terminal as titled tables.
type Reporter struct {
	writer    io.Writer
	useColors bool
}

func NewReporter(writer io.Writer, useColors bool) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer, useColors: useColors}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("nothing to report")
	}

	fmt.Fprintf(c.writer, "\n%s (%d days)\n", c.bold(report.Title), report.Period.Duration)
	fmt.Fprintf(c.writer, "Period: %s\n", report.Period.Label)

	for _, section := range report.Sections {
		if err := c.section(section); err != nil {
			return fmt.Errorf("failed to render section %q: %w", section.Title, err)
		}
	}
	return nil
}

func (c *Reporter) section(section domain.ReportSection) error {
	fmt.Fprintf(c.writer, "\n%s\n%s\n", c.bold(section.Title), strings.Repeat("-", len(section.Title)))

	keys := make([]string, 0, len(section.Summary))
	for key := range section.Summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(c.writer, "%s: %v\n", key, section.Summary[key])
	}

	if len(section.Details) == 0 {
		fmt.Fprintln(c.writer, "(no data)")
		return nil
	}

	rows := make([][]string, 0, len(section.Details))
	for _, d := range section.Details {
		row := append([]string{d.Name}, d.Values...)
		if d.Change != nil {
			row = append(row, c.change(*d.Change))
		}
		rows = append(rows, row)
	}

	return c.Table(section.Columns, rows)
}

// Table renders rows under header.
func (c *Reporter) Table(header []string, rows [][]string) error {
	table := tablewriter.NewTable(c.writer,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
	)

	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// change renders a percentage with an explicit sign, green when it grew and
// red when it shrank.
func (c *Reporter) change(v float64) string {
	text := fmt.Sprintf("%+.1f%%", v)
	if !c.useColors {
		return text
	}
	switch {
	case v > 0:
		return color.GreenString(text)
	case v < 0:
		return color.RedString(text)
	default:
		return text
	}
}

func (c *Reporter) bold(text string) string {
	if c.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}
