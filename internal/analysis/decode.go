package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decode parses an analysis API body at the boundary.
//
// A non-empty "error" field yields a *LogicalError regardless of the other
// fields. Bodies that are not JSON, lack a symbol, carry a non-decimal price
// or contain chart points without a date or price yield a *MalformedError.
// The legacy field names of the older service (fiyat, puan, renk, analiz,
// grafik_data, ...) are accepted; canonical names win when both are present.
func Decode(body []byte) (*Result, error) {
	var w wireResult
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, malformed("invalid JSON", err)
	}

	if strings.TrimSpace(w.Error) != "" {
		return nil, &LogicalError{Message: w.Error}
	}

	if strings.TrimSpace(w.Symbol) == "" {
		return nil, malformed("missing symbol", nil)
	}

	price := w.Price.or(w.LegacyPrice)
	if _, err := decimal.NewFromString(strings.TrimSpace(price)); err != nil {
		return nil, malformed(fmt.Sprintf("price %q is not a decimal", price), err)
	}

	change := w.PercentChange.or(w.LegacyChange)
	if trimmed := strings.TrimSpace(change); trimmed != "" {
		if _, err := decimal.NewFromString(trimmed); err != nil {
			return nil, malformed(fmt.Sprintf("percent change %q is not a decimal", change), err)
		}
	}

	score, err := scoreOf(w.Score, w.LegacyScore)
	if err != nil {
		return nil, err
	}

	series, err := seriesOf(firstSeries(w.ChartSeries, w.LegacyChart))
	if err != nil {
		return nil, err
	}

	// Strings are kept as sent; only validation looks at trimmed copies.
	r := &Result{
		Symbol:        w.Symbol,
		CompanyName:   firstString(w.CompanyName, w.LegacyCompany),
		Price:         price,
		PercentChange: change,
		Score:         score,
		ColorTag:      ColorTag(firstString(w.ColorTag, w.LegacyColor)),
		Indicators:    indicatorsOf(w.Indicators, w.LegacyIndicators),
		ChartSeries:   series,
		UpdatedAt:     firstString(w.UpdatedAt, w.LegacyUpdated),
	}
	if r.CompanyName == "" {
		r.CompanyName = w.Symbol
	}
	return r, nil
}

type wireResult struct {
	Symbol        string          `json:"symbol"`
	CompanyName   *string         `json:"company_name"`
	Price         text            `json:"price"`
	PercentChange text            `json:"percent_change"`
	Score         *json.Number    `json:"score"`
	ColorTag      *string         `json:"color_tag"`
	Indicators    *wireIndicators `json:"indicators"`
	ChartSeries   []wirePoint     `json:"chart_series"`
	UpdatedAt     *string         `json:"updated_at"`
	Error         string          `json:"error"`

	LegacyCompany    *string         `json:"irket_adi"`
	LegacyPrice      text            `json:"fiyat"`
	LegacyChange     text            `json:"yuzde_degisim"`
	LegacyScore      *json.Number    `json:"puan"`
	LegacyColor      *string         `json:"renk"`
	LegacyIndicators *wireIndicators `json:"analiz"`
	LegacyChart      []wirePoint     `json:"grafik_data"`
	LegacyUpdated    *string         `json:"guncelleme_saati"`
}

type wireIndicators struct {
	RSI          text    `json:"rsi"`
	PERatio      text    `json:"pe_ratio"`
	PBRatio      text    `json:"pb_ratio"`
	GrahamValue  text    `json:"graham_value"`
	GrahamStatus *string `json:"graham_status"`
	AIComment    *string `json:"ai_comment"`

	LegacyPE      text    `json:"fk"`
	LegacyPB      text    `json:"pd_dd"`
	LegacyGraham  text    `json:"graham"`
	LegacyStatus  *string `json:"graham_durum"`
	LegacyComment *string `json:"ai_yorum"`
}

type wirePoint struct {
	Date        string   `json:"date"`
	Price       *float64 `json:"price"`
	SMA50       *float64 `json:"sma50"`
	SMA200      *float64 `json:"sma200"`
	LegacyDate  string   `json:"tarih"`
	LegacyPrice *float64 `json:"fiyat"`
}

// text accepts a JSON string or number and keeps its literal form, so
// "12.50" and 12.50 both decode to "12.50". null leaves it unset.
type text struct {
	value string
	set   bool
}

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.value, t.set = s, true
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		t.value, t.set = n.String(), true
		return nil
	}
}

func (t text) or(fallback text) string {
	if t.set {
		return t.value
	}
	return fallback.value
}

func firstString(canonical, legacy *string) string {
	if canonical != nil {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return ""
}

func firstSeries(canonical, legacy []wirePoint) []wirePoint {
	if canonical != nil {
		return canonical
	}
	return legacy
}

func scoreOf(canonical, legacy *json.Number) (int, error) {
	n := canonical
	if n == nil {
		n = legacy
	}
	if n == nil {
		return 0, nil
	}
	v, err := n.Int64()
	if err != nil {
		return 0, malformed(fmt.Sprintf("score %q is not an integer", n.String()), err)
	}
	return int(v), nil
}

func indicatorsOf(canonical, legacy *wireIndicators) Indicators {
	var c, l wireIndicators
	if canonical != nil {
		c = *canonical
	}
	if legacy != nil {
		l = *legacy
	}
	// The legacy object uses rsi for RSI too, so fall back field by field.
	return Indicators{
		RSI:          c.RSI.or(l.RSI),
		PERatio:      c.PERatio.or(pick(c.LegacyPE, l.PERatio, l.LegacyPE)),
		PBRatio:      c.PBRatio.or(pick(c.LegacyPB, l.PBRatio, l.LegacyPB)),
		GrahamValue:  c.GrahamValue.or(pick(c.LegacyGraham, l.GrahamValue, l.LegacyGraham)),
		GrahamStatus: firstString(c.GrahamStatus, firstPtr(c.LegacyStatus, l.GrahamStatus, l.LegacyStatus)),
		AIComment:    firstString(c.AIComment, firstPtr(c.LegacyComment, l.AIComment, l.LegacyComment)),
	}
}

func pick(candidates ...text) text {
	for _, c := range candidates {
		if c.set {
			return c
		}
	}
	return text{}
}

func firstPtr(candidates ...*string) *string {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

func seriesOf(points []wirePoint) ([]ChartPoint, error) {
	series := make([]ChartPoint, 0, len(points))
	for i, p := range points {
		date := p.Date
		if date == "" {
			date = p.LegacyDate
		}
		if date == "" {
			return nil, malformed(fmt.Sprintf("chart point %d has no date", i), nil)
		}

		price := p.Price
		if price == nil {
			price = p.LegacyPrice
		}
		if price == nil {
			return nil, malformed(fmt.Sprintf("chart point %d has no price", i), nil)
		}

		series = append(series, ChartPoint{
			Date:   date,
			Price:  *price,
			SMA50:  p.SMA50,
			SMA200: p.SMA200,
		})
	}
	return series, nil
}
