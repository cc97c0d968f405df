package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/lookup"
	"github.com/aristath/tickerview/internal/theme"
)

type mockFetcher struct {
	calls   []string
	results map[string]*analysis.Result
	errs    map[string]error
}

func (m *mockFetcher) Analyze(ctx context.Context, symbol string) (*analysis.Result, error) {
	m.calls = append(m.calls, symbol)
	if err, ok := m.errs[symbol]; ok {
		return nil, err
	}
	return m.results[symbol], nil
}

func f(v float64) *float64 { return &v }

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		results: map[string]*analysis.Result{
			"THYAO": {
				Symbol:        "THYAO",
				CompanyName:   "Turk Hava Yollari",
				Price:         "312.50",
				PercentChange: "2.10",
				Score:         80,
				ColorTag:      analysis.ColorGreen,
				UpdatedAt:     "10:00:00",
			},
			"EREGL": {
				Symbol:        "EREGL",
				CompanyName:   "Eregli Demir Celik",
				Price:         "41.28",
				PercentChange: "-1.35",
				Score:         65,
				ColorTag:      analysis.ColorYellow,
				Indicators: analysis.Indicators{
					RSI:          "48.2",
					GrahamValue:  "52.10",
					GrahamStatus: "Discounted",
					AIComment:    "Sideways trend.",
				},
				ChartSeries: []analysis.ChartPoint{
					{Date: "2024-05-01", Price: 40},
					{Date: "2024-05-02", Price: 42, SMA50: f(41)},
				},
				UpdatedAt: "14:32:05",
			},
		},
		errs: map[string]error{
			"XXXX":  &analysis.LogicalError{Message: "Symbol <XXXX> not found"},
			"DOWN":  errors.New("connection refused"),
			"BROKE": &analysis.MalformedError{Reason: "missing price"},
		},
	}
}

func newTestServer(fetcher lookup.Fetcher) *Server {
	return New(Config{
		Log:           zerolog.Nop(),
		Runner:        lookup.NewRunner(fetcher, zerolog.Nop()),
		DefaultSymbol: "THYAO",
		APIURL:        "http://127.0.0.1:5328",
		Port:          0,
		DevMode:       true,
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleIndex_DefaultSymbol(t *testing.T) {
	fetcher := newMockFetcher()
	rec := get(t, newTestServer(fetcher), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, []string{"THYAO"}, fetcher.calls)

	body := rec.Body.String()
	assert.Contains(t, body, "Turk Hava Yollari")
	assert.Contains(t, body, "312.50")
	assert.Contains(t, body, "▲ 2.10%")
	assert.Contains(t, body, display.Disclaimer)
	assert.NotContains(t, body, "<polyline", "no chart without series")
}

func TestHandleIndex_Search(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"q", "/?q=eregl"},
		{"symbol alias", "/?symbol=EREGL"},
		{"padded", "/?q=%20eregl%20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newMockFetcher()
			rec := get(t, newTestServer(fetcher), tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{"EREGL"}, fetcher.calls, "only the submitted symbol is fetched")

			body := rec.Body.String()
			assert.Contains(t, body, "Eregli Demir Celik")
			assert.Contains(t, body, "▼ -1.35%")
			assert.Contains(t, body, "52.10")
			assert.Contains(t, body, "Sideways trend.")
			assert.Contains(t, body, "<polyline")
			assert.Contains(t, body, string(theme.Default.SMA50))
		})
	}
}

func TestHandleIndex_BlankSearchLoadsDefault(t *testing.T) {
	fetcher := newMockFetcher()
	rec := get(t, newTestServer(fetcher), "/?q=%20%20")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"THYAO"}, fetcher.calls)
}

func TestHandleIndex_Errors(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		status  int
		message string
	}{
		{"logical", "xxxx", http.StatusNotFound, "Symbol &lt;XXXX&gt; not found"},
		{"transport", "down", http.StatusBadGateway, lookup.TransportMessage},
		{"malformed", "broke", http.StatusBadGateway, lookup.MalformedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(newMockFetcher()), "/?q="+tt.symbol)

			assert.Equal(t, tt.status, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `role="alert"`)
			assert.Contains(t, body, tt.message)
			assert.NotContains(t, body, display.Disclaimer)
		})
	}
}

func TestHandleLookup(t *testing.T) {
	rec := get(t, newTestServer(newMockFetcher()), "/api/lookup?symbol=eregl")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var view display.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "loaded", view.Phase)
	assert.False(t, view.Loading)
	assert.Equal(t, "EREGL", view.ActiveSymbol)
	require.NotNil(t, view.Panel)
	assert.Equal(t, "EREGL", view.Panel.Symbol)
	assert.Equal(t, analysis.GlyphDown, view.Panel.Glyph)
	assert.Equal(t, analysis.ToneYellow, view.Panel.Tone)
	assert.Equal(t, analysis.ToneGreen, view.Panel.ValuationTone)
	assert.Len(t, view.Panel.Chart.Dates, 2)
}

func TestHandleLookup_LogicalError(t *testing.T) {
	rec := get(t, newTestServer(newMockFetcher()), "/api/lookup?symbol=XXXX")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var view display.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "error", view.Phase)
	assert.Equal(t, "logical", view.ErrorKind)
	assert.Equal(t, "Symbol <XXXX> not found", view.Message)
	assert.Nil(t, view.Panel)
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(newMockFetcher()), "/health")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "tickerview", resp.Service)
	assert.Equal(t, "http://127.0.0.1:5328", resp.AnalysisAPI)
	assert.GreaterOrEqual(t, resp.RAMPercent, 0.0)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(newMockFetcher())
	req := httptest.NewRequest(http.MethodOptions, "/api/lookup", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewSVGChart(t *testing.T) {
	assert.Nil(t, newSVGChart(display.Chart{}, theme.Default))

	c := display.NewChart([]analysis.ChartPoint{
		{Date: "2024-05-01", Price: 10},
		{Date: "2024-05-02", Price: 20, SMA50: f(15)},
	}, analysis.ToneGreen)

	chart := newSVGChart(c, theme.Default)
	require.NotNil(t, chart)
	assert.Equal(t, "10.00", chart.Min)
	assert.Equal(t, "20.00", chart.Max)
	assert.Equal(t, "2024-05-01", chart.First)
	assert.Equal(t, "2024-05-02", chart.Last)

	// SMA 200 has no points and is left out.
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "8.0,212.0 632.0,8.0", chart.Series[0].Points)
	assert.Equal(t, string(theme.Default.Green.Fg), chart.Series[0].Color)
	assert.Equal(t, "632.0,110.0", chart.Series[1].Points)
	assert.True(t, chart.Series[1].Dashed)
}

func TestNewSVGChart_SinglePoint(t *testing.T) {
	c := display.NewChart([]analysis.ChartPoint{{Date: "2024-05-01", Price: 10}}, analysis.ToneRed)

	chart := newSVGChart(c, theme.Default)
	require.NotNil(t, chart)
	require.Len(t, chart.Series, 1)
	assert.True(t, strings.HasPrefix(chart.Series[0].Points, "320.0,"))
}
