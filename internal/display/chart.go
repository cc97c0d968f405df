package display

import (
	"gonum.org/v1/gonum/floats"

	"github.com/aristath/tickerview/internal/analysis"
)

// SeriesKind identifies one of the three chart lines.
type SeriesKind string

const (
	SeriesPrice  SeriesKind = "price"
	SeriesSMA50  SeriesKind = "sma50"
	SeriesSMA200 SeriesKind = "sma200"
)

// Point is a value at position Index of the shared time axis.
type Point struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Series is one line of the chart. Points may skip indexes where the
// service had no value.
type Series struct {
	Kind   SeriesKind    `json:"kind"`
	Name   string        `json:"name"`
	Tone   analysis.Tone `json:"tone,omitempty"`
	Dashed bool          `json:"dashed"`
	Points []Point       `json:"points"`
}

// Chart holds the three series over one time axis.
type Chart struct {
	Dates  []string `json:"dates"`
	Series []Series `json:"series"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	return len(c.Dates) == 0
}

// NewChart builds the price, SMA 50 and SMA 200 series. The price line
// takes the tone of the result.
func NewChart(points []analysis.ChartPoint, tone analysis.Tone) Chart {
	c := Chart{Dates: make([]string, len(points))}
	price := Series{Kind: SeriesPrice, Name: PriceSeries, Tone: tone}
	sma50 := Series{Kind: SeriesSMA50, Name: SMA50Series, Dashed: true}
	sma200 := Series{Kind: SeriesSMA200, Name: SMA200Series}

	var values []float64
	for i, p := range points {
		c.Dates[i] = p.Date
		price.Points = append(price.Points, Point{Index: i, Value: p.Price})
		values = append(values, p.Price)
		if p.SMA50 != nil {
			sma50.Points = append(sma50.Points, Point{Index: i, Value: *p.SMA50})
			values = append(values, *p.SMA50)
		}
		if p.SMA200 != nil {
			sma200.Points = append(sma200.Points, Point{Index: i, Value: *p.SMA200})
			values = append(values, *p.SMA200)
		}
	}

	c.Series = []Series{price, sma50, sma200}
	if len(values) > 0 {
		c.Min = floats.Min(values)
		c.Max = floats.Max(values)
	}
	return c
}
