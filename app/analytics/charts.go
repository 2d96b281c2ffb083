package analytics

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type renderable interface {
	Render(w io.Writer) error
}

// chartHTML renders an echarts chart and extracts only the container div
// and init script, so the fragment can be inlined into a report page that
// loads the echarts asset itself.
func chartHTML(chart renderable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return template.HTML(extractChartFragment(buf.String())), nil
}

func extractChartFragment(html string) string {
	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}
	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}
	return html[start:end]
}

// newHorizontalBar builds a horizontal bar chart: one bar per category,
// longest at the top.
func newHorizontalBar(title string, categories []string, values []float64, seriesName string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	// echarts lays category axes bottom-up; reverse so the first category
	// renders on top.
	reversed := make([]string, len(categories))
	reversedData := make([]opts.BarData, len(data))
	for i := range categories {
		reversed[len(categories)-1-i] = categories[i]
		reversedData[len(data)-1-i] = data[i]
	}

	bar.SetXAxis(reversed).AddSeries(seriesName, reversedData)
	bar.XYReversal()
	return bar
}

// newGroupedBar builds a vertical bar chart with one series per name.
func newGroupedBar(title string, categories []string, series map[string][]float64, seriesOrder []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(categories)
	for _, name := range seriesOrder {
		values := series[name]
		data := make([]opts.BarData, len(values))
		for i, v := range values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(name, data)
	}
	return bar
}
