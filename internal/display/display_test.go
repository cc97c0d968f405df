package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/lookup"
)

func ptr(v float64) *float64 { return &v }

func sampleResult() *analysis.Result {
	return &analysis.Result{
		Symbol:        "EREGL",
		CompanyName:   "Eregli Demir ve Celik",
		Price:         "41.28",
		PercentChange: "-1.35",
		Score:         65,
		ColorTag:      analysis.ColorGreen,
		Indicators: analysis.Indicators{
			RSI:          "44.2",
			PERatio:      "7.81",
			PBRatio:      "N/A",
			GrahamValue:  "58.10",
			GrahamStatus: "İskontolu (Model Altı)",
			AIComment:    "Teknik: Fiyat 200 günlüğün üzerinde.",
		},
		ChartSeries: []analysis.ChartPoint{
			{Date: "2026-10-14", Price: 42.0},
			{Date: "2026-10-15", Price: 41.9, SMA50: ptr(40.0)},
			{Date: "2026-10-16", Price: 41.28, SMA50: ptr(40.1), SMA200: ptr(38.5)},
		},
		UpdatedAt: "16.10.2026 - 18:05:00",
	}
}

func loaded(t *testing.T, r *analysis.Result) lookup.State {
	t.Helper()
	s, fx := lookup.Transition(lookup.New(r.Symbol), lookup.Mounted{})
	s, _ = lookup.Transition(s, lookup.FetchCompleted{Seq: fx.Seq, Result: r})
	require.Equal(t, lookup.PhaseLoaded, s.Phase)
	return s
}

func TestBuild_Loading(t *testing.T) {
	s, _ := lookup.Transition(lookup.New("THYAO"), lookup.Mounted{})

	v := Build(s)
	assert.True(t, v.Loading)
	assert.Equal(t, "loading", v.Phase)
	assert.Nil(t, v.Panel)
	assert.Empty(t, v.Message)
	assert.Equal(t, "THYAO", v.ActiveSymbol)
}

func TestBuild_Error(t *testing.T) {
	s, fx := lookup.Transition(lookup.New("THYAO"), lookup.Mounted{})
	s, _ = lookup.Transition(s, lookup.FetchCompleted{Seq: fx.Seq, Err: errors.New("refused")})

	v := Build(s)
	assert.False(t, v.Loading)
	assert.Equal(t, "error", v.Phase)
	assert.Equal(t, "transport", v.ErrorKind)
	assert.Equal(t, lookup.TransportMessage, v.Message)
	assert.Nil(t, v.Panel)
}

func TestBuild_LoadedRendersVerbatim(t *testing.T) {
	v := Build(loaded(t, sampleResult()))
	require.NotNil(t, v.Panel)
	p := v.Panel

	assert.Equal(t, "EREGL", p.Symbol)
	assert.Equal(t, "Eregli Demir ve Celik", p.CompanyName)
	assert.Equal(t, "41.28", p.Price)
	assert.Equal(t, "65", p.Score)
	assert.Equal(t, analysis.ToneGreen, p.Tone)
	assert.Equal(t, analysis.GlyphDown, p.Glyph)
	assert.Equal(t, "▼ -1.35%", p.Change())
	assert.Equal(t, "58.10", p.GrahamValue)
	assert.Equal(t, analysis.ToneGreen, p.ValuationTone)
	assert.Equal(t, []Tile{
		{Title: "RSI", Value: "44.2"},
		{Title: "P/E", Value: "7.81"},
		{Title: "P/B", Value: "N/A"},
	}, p.Tiles)
	assert.Equal(t, "Teknik: Fiyat 200 günlüğün üzerinde.", p.Comment)
	assert.Equal(t, "16.10.2026 - 18:05:00", p.UpdatedAt)
	assert.Equal(t, Disclaimer, p.Disclaimer)
}

func TestNewPanel_ToneFallback(t *testing.T) {
	tests := []struct {
		tag  analysis.ColorTag
		want analysis.Tone
	}{
		{analysis.ColorGreen, analysis.ToneGreen},
		{analysis.ColorRed, analysis.ToneRed},
		{analysis.ColorYellow, analysis.ToneYellow},
		{"magenta", analysis.ToneYellow},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			r := sampleResult()
			r.ColorTag = tt.tag

			p := NewPanel(r)
			assert.Equal(t, tt.want, p.Tone)
			assert.Equal(t, tt.want, p.Chart.Series[0].Tone, "price line follows the score badge")
		})
	}
}

func TestNewPanel_Glyph(t *testing.T) {
	r := sampleResult()

	r.PercentChange = "0.00"
	assert.Equal(t, "▲ 0.00%", NewPanel(r).Change())

	r.PercentChange = "2.10"
	assert.Equal(t, analysis.GlyphUp, NewPanel(r).Glyph)

	r.PercentChange = ""
	assert.Equal(t, analysis.GlyphUp, NewPanel(r).Change())
}

func TestNewPanel_ValuationTone(t *testing.T) {
	r := sampleResult()

	r.Indicators.GrahamStatus = "Primli (Model Üstü)"
	assert.Equal(t, analysis.ToneRed, NewPanel(r).ValuationTone)

	r.Indicators.GrahamStatus = "Nötr"
	assert.Equal(t, analysis.ToneNeutral, NewPanel(r).ValuationTone)
}

func TestNewTile_MissingValue(t *testing.T) {
	assert.Equal(t, Tile{Title: "RSI", Value: "N/A"}, NewTile("RSI", ""))
}

func TestNewChart(t *testing.T) {
	c := NewChart(sampleResult().ChartSeries, analysis.ToneRed)

	assert.Equal(t, []string{"2026-10-14", "2026-10-15", "2026-10-16"}, c.Dates)
	require.Len(t, c.Series, 3)

	price, sma50, sma200 := c.Series[0], c.Series[1], c.Series[2]
	assert.Equal(t, SeriesPrice, price.Kind)
	assert.Equal(t, analysis.ToneRed, price.Tone)
	assert.Len(t, price.Points, 3)

	assert.Equal(t, SeriesSMA50, sma50.Kind)
	assert.True(t, sma50.Dashed)
	assert.Equal(t, []Point{{Index: 1, Value: 40.0}, {Index: 2, Value: 40.1}}, sma50.Points)

	assert.Equal(t, SeriesSMA200, sma200.Kind)
	assert.Equal(t, []Point{{Index: 2, Value: 38.5}}, sma200.Points)

	assert.InDelta(t, 38.5, c.Min, 1e-9)
	assert.InDelta(t, 42.0, c.Max, 1e-9)
	assert.False(t, c.Empty())
}

func TestNewChart_Empty(t *testing.T) {
	c := NewChart(nil, analysis.ToneYellow)
	assert.True(t, c.Empty())
	assert.Zero(t, c.Min)
	assert.Zero(t, c.Max)
}

func TestNewPanel_FromDecodedPayload(t *testing.T) {
	r, err := analysis.Decode([]byte(`{"symbol":"eregl","price":" 41.28 ","score":65,"color_tag":"GREEN"}`))
	require.NoError(t, err)

	p := NewPanel(r)
	assert.Equal(t, analysis.ToneYellow, p.Tone, "only an exact green tag gets the green palette")
	assert.Equal(t, analysis.ToneYellow, p.Chart.Series[0].Tone)
	assert.Equal(t, "eregl", p.Symbol)
	assert.Equal(t, " 41.28 ", p.Price)
	assert.Equal(t, "65", p.Score)
	assert.Equal(t, "eregl", p.CompanyName)
}
