// Package render turns the computed climatology tables into the static
// dashboard page. Each stage renders independently so one failure becomes
// inline error text instead of a blank page.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/ombrelab/pws-dashboard/internal/domain"
	"github.com/ombrelab/pws-dashboard/internal/observability"
)

// Renderer assembles the dashboard page from a corpus.
type Renderer struct {
	title   string
	tz      *time.Location
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Renderer for the given page title and station timezone.
func New(title string, tz *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	return &Renderer{title: title, tz: tz, logger: logger, metrics: metrics}
}

// Page renders the full dashboard for the corpus. dates selects and orders
// the rows of the daily table (most recent first by convention).
func (r *Renderer) Page(corpus domain.Corpus, dates []string) ([]byte, error) {
	data := frameData{
		Title:   r.title,
		Live:    r.stage("live", r.liveHTML),
		Days:    r.stage("days", func() (template.HTML, error) { return r.daysHTML(corpus, dates) }),
		Months:  r.stage("months", r.monthsHTML),
		Records: r.stage("records", func() (template.HTML, error) { return r.recordsHTML(corpus) }),
	}

	var buf bytes.Buffer
	if err := frameTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	return buf.Bytes(), nil
}

// stage runs one rendering stage, converting a failure into visible inline
// error text so the rest of the page still renders.
func (r *Renderer) stage(name string, fn func() (template.HTML, error)) template.HTML {
	html, err := fn()
	if err != nil {
		r.logger.Error("rendering stage failed", "stage", name, "error", err)
		r.metrics.StageFailures.WithLabelValues(name).Inc()
		msg := fmt.Sprintf("Error loading %s data: %v", name, err)
		return template.HTML(template.HTMLEscapeString(msg)) //nolint:gosec // escaped above
	}
	return html
}

func (r *Renderer) liveHTML() (template.HTML, error) {
	stamp := domain.Now().In(r.tz).Format("2006-01-02 15:04:05")
	return template.HTML("soon live here<br>Last update : " + template.HTMLEscapeString(stamp)), nil
}

// monthsHTML is a placeholder until monthly aggregation lands.
func (r *Renderer) monthsHTML() (template.HTML, error) {
	return "", nil
}

var daysHeaders = []string{
	"Date",
	"completness",
	"Tmin", "Tmoy", "Tmax",
	"pluie",
	"watt-heure/m²",
	"direction du vent",
	"vent moyen (km/h)",
	"rafale max (km/h)",
}

type tableCell struct {
	Text string
	// Style is built from our own color tables, never from station data,
	// so it is safe to mark as trusted CSS.
	Style template.CSS
}

type daysData struct {
	Headers []string
	Rows    [][]tableCell
}

func (r *Renderer) daysHTML(corpus domain.Corpus, dates []string) (template.HTML, error) {
	summaries := domain.SummarizeDays(corpus, dates)

	rows := make([][]tableCell, 0, len(summaries))
	for _, s := range summaries {
		rainBG, rainFG := RainColor(s.RainMM)
		solarBG, solarFG := SolarColor(s.SolarWhM2)
		rows = append(rows, []tableCell{
			{Text: s.Date},
			{Text: strconv.Itoa(s.Completeness)},
			{Text: fmt1(s.TempMin), Style: cellStyle(TemperatureColor(s.TempMin), black)},
			{Text: fmt1(s.TempMean), Style: cellStyle(TemperatureColor(s.TempMean), black)},
			{Text: fmt1(s.TempMax), Style: cellStyle(TemperatureColor(s.TempMax), black)},
			{Text: fmt1(s.RainMM), Style: cellStyle(rainBG, rainFG)},
			{Text: fmt0(s.SolarWhM2), Style: cellStyle(solarBG, solarFG)},
			{Text: s.WindDirection},
			{Text: fmt1(s.WindMeanKMH)},
			{Text: fmt0(s.WindGustMax)},
		})
	}

	var buf bytes.Buffer
	if err := daysTmpl.Execute(&buf, daysData{Headers: daysHeaders, Rows: rows}); err != nil {
		return "", fmt.Errorf("render days table: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // template output
}

func (r *Renderer) recordsHTML(corpus domain.Corpus) (template.HTML, error) {
	records, err := domain.ComputeRecords(corpus)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString("<pre>")
	for _, rec := range records {
		fmt.Fprintf(&b, "%-22s %8s %-6s %s\n",
			template.HTMLEscapeString(rec.Name),
			fmt1(rec.Value),
			template.HTMLEscapeString(rec.Unit),
			template.HTMLEscapeString(rec.Date),
		)
	}
	b.WriteString("</pre>")
	return template.HTML(b.String()), nil //nolint:gosec // escaped field by field
}

// fmt1 formats to one decimal; NaN renders as an empty cell.
func fmt1(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func fmt0(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

var daysTmpl = template.Must(template.New("days").Parse(`<table class="climato-days">
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr>{{range .}}<td{{with .Style}} style="{{.}}"{{end}}>{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>`))
