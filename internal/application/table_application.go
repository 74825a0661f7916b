package application

import (
	"fmt"
	"io"
	"time"

	"github.com/dvdk01/page-change-monitor/internal/schema"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const observedWidth = 32

type tableApplication struct {
	out     io.Writer
	showAll bool
	colors  bool
}

// NewTableApplication renders results as a table. Unchanged pages are only
// listed when showAll is set.
func NewTableApplication(out io.Writer, showAll bool, colors bool) *tableApplication {
	return &tableApplication{out: out, showAll: showAll, colors: colors}
}

func (ta *tableApplication) Render(results []schema.CheckResult) error {
	rows := make([]schema.CheckResult, 0, len(results))
	for _, result := range results {
		if result.Status == schema.Unchanged && !ta.showAll {
			continue
		}
		rows = append(rows, result)
	}
	if len(rows) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(ta.out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Name", "URL", "Compare", "Status", "Observed", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Observed", WidthMax: observedWidth},
	})

	for _, result := range rows {
		observed := result.Observed
		if result.Status == schema.Failed && result.Error != nil {
			observed = result.Error.Error()
		}

		t.AppendRow(table.Row{
			result.Name,
			result.Href,
			result.Compare,
			ta.colorizeStatus(result.Status),
			observed,
			result.Duration.Round(time.Millisecond),
		})
	}

	summary := schema.Summarize(results)
	t.AppendFooter(table.Row{
		"Total", summary.Total, "",
		fmt.Sprintf("%d changed", summary.Changed),
		fmt.Sprintf("%d failed", summary.Failed),
		"",
	})

	t.Render()
	return nil
}

func (ta *tableApplication) colorizeStatus(status schema.Status) string {
	str := status.String()
	if !ta.colors {
		return str
	}
	switch status {
	case schema.Unchanged:
		return text.FgGreen.Sprint(str)
	case schema.Changed:
		return text.FgYellow.Sprint(str)
	default:
		return text.FgRed.Sprint(str)
	}
}
