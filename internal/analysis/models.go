// Package analysis defines the analysis payload returned by the remote
// analysis API and the presentational rules derived from it.
package analysis

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ColorTag is the sentiment classification that drives the UI color.
type ColorTag string

const (
	ColorGreen  ColorTag = "green"
	ColorRed    ColorTag = "red"
	ColorYellow ColorTag = "yellow"
)

// Known reports whether the tag is one of the enumerated values.
func (c ColorTag) Known() bool {
	switch c {
	case ColorGreen, ColorRed, ColorYellow:
		return true
	}
	return false
}

// Tone maps the tag onto a palette. Unrecognized tags fall back to yellow.
func (c ColorTag) Tone() Tone {
	switch c {
	case ColorGreen:
		return ToneGreen
	case ColorRed:
		return ToneRed
	default:
		return ToneYellow
	}
}

// Tone names a palette shared by all renderers.
type Tone string

const (
	ToneGreen   Tone = "green"
	ToneRed     Tone = "red"
	ToneYellow  Tone = "yellow"
	ToneNeutral Tone = "neutral"
)

// Indicators holds the technical and fundamental figures of a result.
// Values are preformatted decimals or "N/A" when the service had no data.
type Indicators struct {
	RSI          string `json:"rsi"`
	PERatio      string `json:"pe_ratio"`
	PBRatio      string `json:"pb_ratio"`
	GrahamValue  string `json:"graham_value"`
	GrahamStatus string `json:"graham_status"`
	AIComment    string `json:"ai_comment"`
}

// ChartPoint is one day of the historical series. Moving averages are nil
// until their window is filled.
type ChartPoint struct {
	Date   string   `json:"date"`
	Price  float64  `json:"price"`
	SMA50  *float64 `json:"sma50"`
	SMA200 *float64 `json:"sma200"`
}

// Result is the analysis of a single symbol.
type Result struct {
	Symbol        string       `json:"symbol"`
	CompanyName   string       `json:"company_name"`
	Price         string       `json:"price"`
	PercentChange string       `json:"percent_change"`
	Score         int          `json:"score"`
	ColorTag      ColorTag     `json:"color_tag"`
	Indicators    Indicators   `json:"indicators"`
	ChartSeries   []ChartPoint `json:"chart_series"`
	UpdatedAt     string       `json:"updated_at"`
}

// Valuation is the verdict carried by the Graham status text.
type Valuation int

const (
	ValuationNeutral Valuation = iota
	ValuationDiscounted
	ValuationPremium
)

func (v Valuation) String() string {
	switch v {
	case ValuationDiscounted:
		return "discounted"
	case ValuationPremium:
		return "premium"
	default:
		return "neutral"
	}
}

// Tone returns green for discounted, red for premium and neutral otherwise.
func (v Valuation) Tone() Tone {
	switch v {
	case ValuationDiscounted:
		return ToneGreen
	case ValuationPremium:
		return ToneRed
	default:
		return ToneNeutral
	}
}

var (
	discountMarkers = []string{"discount", "iskonto", "ucuz"}
	premiumMarkers  = []string{"premium", "primli", "pahal"}
)

// ClassifyValuation reads the verdict out of a free-form Graham status such
// as "İskontolu (Model Altı)" or "premium". Discount markers win when both
// kinds are present.
func ClassifyValuation(status string) Valuation {
	// Both foldings are needed: "İ" only loses its dot under Turkish rules,
	// while "I" becomes a dotless "ı" under them.
	folded := []string{
		strings.ToLower(status),
		strings.ToLowerSpecial(unicode.TurkishCase, status),
	}

	if containsAny(folded, discountMarkers) {
		return ValuationDiscounted
	}
	if containsAny(folded, premiumMarkers) {
		return ValuationPremium
	}
	return ValuationNeutral
}

func containsAny(texts, markers []string) bool {
	for _, text := range texts {
		for _, m := range markers {
			if strings.Contains(text, m) {
				return true
			}
		}
	}
	return false
}

const (
	GlyphUp   = "▲"
	GlyphDown = "▼"
)

// Direction returns ▲ for zero or positive changes and ▼ for negative ones.
func Direction(percentChange string) string {
	text := strings.TrimSpace(percentChange)
	d, err := decimal.NewFromString(text)
	if err != nil {
		if strings.HasPrefix(text, "-") {
			return GlyphDown
		}
		return GlyphUp
	}
	if d.IsNegative() {
		return GlyphDown
	}
	return GlyphUp
}

// Tone of the result as a whole, derived from its color tag.
func (r *Result) Tone() Tone {
	return r.ColorTag.Tone()
}

// Valuation classifies the Graham status of the result.
func (r *Result) Valuation() Valuation {
	return ClassifyValuation(r.Indicators.GrahamStatus)
}
