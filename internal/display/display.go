// Package display projects a lookup state into a renderer-neutral view model.
// Both the terminal and the web renderers draw from the same View, so the
// rendering rules (palettes, glyphs, tiles, chart series) live here once.
package display

import (
	"strconv"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/lookup"
)

// Labels shared by the renderers.
const (
	LoadingLabel   = "Analyzing..."
	SearchHint     = "Ticker symbol (e.g. EREGL)"
	ScoreLabel     = "Score"
	GrahamLabel    = "Graham Value"
	CommentLabel   = "AI Analyst"
	UpdatedLabel   = "Updated"
	Disclaimer     = "Legal notice: this data may be delayed and is not investment advice."
	RSILabel       = "RSI"
	PERatioLabel   = "P/E"
	PBRatioLabel   = "P/B"
	PriceSeries    = "Price"
	SMA50Series    = "SMA 50"
	SMA200Series   = "SMA 200"
	defaultNoValue = "N/A"
)

// View is the complete render input.
type View struct {
	Phase        string `json:"phase"`
	Loading      bool   `json:"loading"`
	ErrorKind    string `json:"error_kind,omitempty"`
	Message      string `json:"message,omitempty"`
	SearchText   string `json:"search_text"`
	ActiveSymbol string `json:"active_symbol"`
	Panel        *Panel `json:"panel,omitempty"`
}

// Panel is the data panel shown in the loaded phase.
type Panel struct {
	Symbol        string        `json:"symbol"`
	CompanyName   string        `json:"company_name"`
	Score         string        `json:"score"`
	Tone          analysis.Tone `json:"tone"`
	Price         string        `json:"price"`
	PercentChange string        `json:"percent_change"`
	Glyph         string        `json:"glyph"`
	GrahamValue   string        `json:"graham_value"`
	GrahamStatus  string        `json:"graham_status"`
	ValuationTone analysis.Tone `json:"valuation_tone"`
	Tiles         []Tile        `json:"tiles"`
	Chart         Chart         `json:"chart"`
	Comment       string        `json:"comment"`
	UpdatedAt     string        `json:"updated_at"`
	Disclaimer    string        `json:"disclaimer"`
}

// Tile is a single labeled metric.
type Tile struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// NewTile builds a tile, showing N/A for missing values.
func NewTile(title, value string) Tile {
	if value == "" {
		value = defaultNoValue
	}
	return Tile{Title: title, Value: value}
}

// Change renders the percent change with its direction glyph.
func (p *Panel) Change() string {
	if p.PercentChange == "" {
		return p.Glyph
	}
	return p.Glyph + " " + p.PercentChange + "%"
}

// Build projects s into a View.
func Build(s lookup.State) View {
	v := View{
		Phase:        s.Phase.String(),
		Loading:      s.Loading(),
		SearchText:   s.SearchText,
		ActiveSymbol: s.ActiveSymbol,
	}

	switch s.Phase {
	case lookup.PhaseError:
		v.ErrorKind = s.ErrorKind.String()
		v.Message = s.Message
	case lookup.PhaseLoaded:
		if s.Result != nil {
			v.Panel = NewPanel(s.Result)
		}
	}
	return v
}

// NewPanel builds the data panel for r. Values are interpolated verbatim.
func NewPanel(r *analysis.Result) *Panel {
	valuation := r.Valuation()
	return &Panel{
		Symbol:        r.Symbol,
		CompanyName:   r.CompanyName,
		Score:         strconv.Itoa(r.Score),
		Tone:          r.Tone(),
		Price:         r.Price,
		PercentChange: r.PercentChange,
		Glyph:         analysis.Direction(r.PercentChange),
		GrahamValue:   orNoValue(r.Indicators.GrahamValue),
		GrahamStatus:  r.Indicators.GrahamStatus,
		ValuationTone: valuation.Tone(),
		Tiles: []Tile{
			NewTile(RSILabel, r.Indicators.RSI),
			NewTile(PERatioLabel, r.Indicators.PERatio),
			NewTile(PBRatioLabel, r.Indicators.PBRatio),
		},
		Chart:      NewChart(r.ChartSeries, r.Tone()),
		Comment:    r.Indicators.AIComment,
		UpdatedAt:  r.UpdatedAt,
		Disclaimer: Disclaimer,
	}
}

func orNoValue(v string) string {
	if v == "" {
		return defaultNoValue
	}
	return v
}
