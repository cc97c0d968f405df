package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/theme"
)

// SVG chart geometry in user units.
const (
	svgWidth   = 640
	svgHeight  = 220
	svgPadding = 8
)

type swatch struct {
	Fg, Border, Bg string
}

func swatchOf(p theme.Palette) swatch {
	return swatch{Fg: string(p.Fg), Border: string(p.Border), Bg: string(p.Bg)}
}

type page struct {
	View      display.View
	Panel     *display.Panel
	APIURL    string
	Labels    labels
	Theme     pageTheme
	Tone      swatch
	Valuation swatch
	Change    string // color of the percent change
	Chart     *svgChart
}

type labels struct {
	Loading, Hint, Score, Graham, Comment, Updated string
}

type pageTheme struct {
	Background, Surface, Border, Text, Subtext, Muted, Accent string
	Error                                                     swatch
}

type svgChart struct {
	Width, Height int
	Min, Max      string
	First, Last   string
	Series        []svgSeries
}

type svgSeries struct {
	Name   string
	Color  string
	Dashed bool
	Points string
}

func newPage(v display.View, apiURL string) page {
	t := theme.Default
	p := page{
		View:   v,
		Panel:  v.Panel,
		APIURL: apiURL,
		Labels: labels{
			Loading: display.LoadingLabel,
			Hint:    display.SearchHint,
			Score:   display.ScoreLabel,
			Graham:  display.GrahamLabel,
			Comment: display.CommentLabel,
			Updated: display.UpdatedLabel,
		},
		Theme: pageTheme{
			Background: string(t.Base),
			Surface:    string(t.Surface),
			Border:     string(t.Border),
			Text:       string(t.Text),
			Subtext:    string(t.Subtext),
			Muted:      string(t.Muted),
			Accent:     string(t.Accent),
			Error:      swatchOf(t.Palette(analysis.ToneRed)),
		},
	}

	if v.Panel != nil {
		p.Tone = swatchOf(t.Palette(v.Panel.Tone))
		p.Valuation = swatchOf(t.Palette(v.Panel.ValuationTone))
		p.Change = string(t.Green.Fg)
		if v.Panel.Glyph == analysis.GlyphDown {
			p.Change = string(t.Red.Fg)
		}
		p.Chart = newSVGChart(v.Panel.Chart, t)
	}
	return p
}

// newSVGChart projects c onto polylines in a svgWidth x svgHeight box.
// Returns nil when there is nothing to plot.
func newSVGChart(c display.Chart, t theme.Theme) *svgChart {
	if c.Empty() {
		return nil
	}

	out := &svgChart{
		Width:  svgWidth,
		Height: svgHeight,
		Min:    fmt.Sprintf("%.2f", c.Min),
		Max:    fmt.Sprintf("%.2f", c.Max),
		First:  c.Dates[0],
		Last:   c.Dates[len(c.Dates)-1],
	}

	valRange := c.Max - c.Min
	if valRange == 0 {
		valRange = 1
	}
	plotW := float64(svgWidth - 2*svgPadding)
	plotH := float64(svgHeight - 2*svgPadding)
	n := len(c.Dates)

	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		coords := make([]string, 0, len(s.Points))
		for _, pt := range s.Points {
			x := svgPadding + plotW/2
			if n > 1 {
				x = svgPadding + float64(pt.Index)*plotW/float64(n-1)
			}
			y := svgPadding + (c.Max-pt.Value)/valRange*plotH
			coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		out.Series = append(out.Series, svgSeries{
			Name:   s.Name,
			Color:  string(t.SeriesColor(s)),
			Dashed: s.Dashed,
			Points: strings.Join(coords, " "),
		})
	}
	return out
}

func (s *Server) renderPage(w http.ResponseWriter, status int, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		s.log.Error().Err(err).Msg("Failed to render lookup page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("Failed to write lookup page")
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{with .Panel}}{{.Symbol}} · {{end}}tickerview</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; background: {{.Theme.Background}}; color: {{.Theme.Text}}; }
main { max-width: 720px; margin: 0 auto; padding: 24px 16px; }
form { display: flex; gap: 8px; margin-bottom: 24px; }
input { flex: 1; padding: 10px 12px; border-radius: 8px; border: 1px solid {{.Theme.Border}}; background: {{.Theme.Surface}}; color: {{.Theme.Text}}; text-transform: uppercase; }
button { padding: 10px 16px; border-radius: 8px; border: 0; background: {{.Theme.Accent}}; color: {{.Theme.Background}}; font-weight: 600; }
.card { background: {{.Theme.Surface}}; border: 1px solid {{.Theme.Border}}; border-radius: 12px; padding: 16px; margin-bottom: 16px; }
.muted { color: {{.Theme.Muted}}; }
.sub { color: {{.Theme.Subtext}}; }
.tiles { display: grid; grid-template-columns: repeat(3, 1fr); gap: 12px; margin-bottom: 16px; }
.row { display: flex; justify-content: space-between; align-items: center; }
footer { text-align: center; font-size: 12px; }
</style>
</head>
<body>
<main>
<form method="get" action="/">
  <input type="text" name="q" value="{{.View.SearchText}}" placeholder="{{.Labels.Hint}}" autocomplete="off">
  <button type="submit">Search</button>
</form>
{{if .View.Loading}}
<p class="sub">{{.Labels.Loading}} {{.View.ActiveSymbol}}</p>
{{else if .View.Message}}
<div class="card" role="alert" style="border-color: {{.Theme.Error.Border}}; color: {{.Theme.Error.Fg}}">{{.View.Message}}</div>
{{else}}{{with .Panel}}
<section class="card row">
  <div>
    <h1 style="margin: 0">{{.Symbol}}</h1>
    <div class="sub">{{.CompanyName}}</div>
  </div>
  <div style="text-align: center; padding: 8px 16px; border-radius: 10px; border: 1px solid {{$.Tone.Border}}; background: {{$.Tone.Bg}}; color: {{$.Tone.Fg}}">
    <div style="font-size: 11px; text-transform: uppercase">{{$.Labels.Score}}</div>
    <div style="font-size: 28px; font-weight: 700">{{.Score}}</div>
  </div>
</section>
<section class="card">
  <span style="font-size: 28px; font-weight: 700">{{.Price}}</span>
  <span style="color: {{$.Change}}; margin-left: 12px">{{.Change}}</span>
</section>
<section class="card">
  <div class="row">
    <span class="sub" style="text-transform: uppercase">{{$.Labels.Graham}}</span>
    {{if .GrahamStatus}}<strong style="color: {{$.Valuation.Fg}}">{{.GrahamStatus}}</strong>{{end}}
  </div>
  <div style="font-size: 22px; font-weight: 700">{{.GrahamValue}}</div>
</section>
<section class="tiles">
  {{range .Tiles}}<div class="card" style="margin: 0"><div class="sub">{{.Title}}</div><strong>{{.Value}}</strong></div>
  {{end}}
</section>
{{with $.Chart}}
<section class="card">
  <div class="row muted" style="font-size: 12px">
    <span>{{range .Series}}<span style="color: {{.Color}}; margin-right: 12px">&#9632; {{.Name}}</span>{{end}}</span>
    <span>{{.Min}} - {{.Max}}</span>
  </div>
  <svg viewBox="0 0 {{.Width}} {{.Height}}" width="100%" role="img">
    {{range .Series}}<polyline fill="none" stroke="{{.Color}}" stroke-width="2"{{if .Dashed}} stroke-dasharray="6 4"{{end}} points="{{.Points}}"/>
    {{end}}
  </svg>
  <div class="row muted" style="font-size: 12px"><span>{{.First}}</span><span>{{.Last}}</span></div>
</section>
{{end}}
<section class="card" style="border-color: {{$.Theme.Accent}}">
  <strong style="color: {{$.Theme.Accent}}; text-transform: uppercase">{{$.Labels.Comment}}</strong>
  <p>{{.Comment}}</p>
</section>
<footer>
  <div class="sub">{{$.Labels.Updated}}: {{.UpdatedAt}}</div>
  <div class="muted">{{.Disclaimer}}</div>
</footer>
{{end}}{{end}}
<footer class="muted" style="margin-top: 16px">{{.APIURL}}</footer>
</main>
</body>
</html>
`))
