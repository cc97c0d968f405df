package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/theme"
)

// Plot marks per series. Series are drawn in reverse order so the price
// line ends up on top.
var seriesMarks = map[display.SeriesKind]rune{
	display.SeriesPrice:  '●',
	display.SeriesSMA50:  '·',
	display.SeriesSMA200: '•',
}

type cell struct {
	r     rune
	color lipgloss.Color
}

// RenderLineChart plots every series of c on a shared time axis in a
// width x height cell grid, with the value range on the left and the first
// and last dates underneath. Returns a multi-line string.
func RenderLineChart(c display.Chart, width, height int, t theme.Theme) string {
	if c.Empty() || width <= 0 || height <= 0 {
		return ""
	}

	top := fmt.Sprintf("%.2f", c.Max)
	bottom := fmt.Sprintf("%.2f", c.Min)
	axisWidth := max(len(top), len(bottom)) + 1
	plotWidth := width - axisWidth
	if plotWidth < 2 {
		return ""
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, plotWidth)
	}

	valRange := c.Max - c.Min
	if valRange == 0 {
		valRange = 1
	}

	for i := len(c.Series) - 1; i >= 0; i-- {
		s := c.Series[i]
		mark := seriesMarks[s.Kind]
		color := t.SeriesColor(s)

		for col, v := range columnValues(s.Points, len(c.Dates), plotWidth) {
			if math.IsNaN(v) {
				continue
			}
			norm := (c.Max - v) / valRange
			row := int(math.Round(norm * float64(height-1)))
			grid[row][col] = cell{r: mark, color: color}
		}
	}

	muted := lipgloss.NewStyle().Foreground(t.Muted)
	rows := make([]string, 0, height+2)
	rows = append(rows, legend(c, t))
	for i, line := range grid {
		label := ""
		switch i {
		case 0:
			label = top
		case height - 1:
			label = bottom
		}

		var sb strings.Builder
		sb.WriteString(muted.Render(fmt.Sprintf("%*s ", axisWidth-1, label)))
		for _, cl := range line {
			if cl.r == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(cl.color).Render(string(cl.r)))
		}
		rows = append(rows, sb.String())
	}
	rows = append(rows, muted.Render(dateAxis(c.Dates, axisWidth, plotWidth)))

	return strings.Join(rows, "\n")
}

// columnValues maps points over n axis positions onto cols columns,
// averaging the points that fall into one column. Columns without points
// are NaN.
func columnValues(points []display.Point, n, cols int) []float64 {
	sums := make([]float64, cols)
	counts := make([]int, cols)
	for _, p := range points {
		col := 0
		if n > 1 {
			col = int(math.Round(float64(p.Index) * float64(cols-1) / float64(n-1)))
		}
		if col < 0 || col >= cols {
			continue
		}
		sums[col] += p.Value
		counts[col]++
	}

	out := make([]float64, cols)
	for i := range out {
		if counts[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sums[i] / float64(counts[i])
	}
	return out
}

func legend(c display.Chart, t theme.Theme) string {
	parts := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		style := lipgloss.NewStyle().Foreground(t.SeriesColor(s))
		parts = append(parts, style.Render(string(seriesMarks[s.Kind])+" "+s.Name))
	}
	return strings.Join(parts, "   ")
}

func dateAxis(dates []string, indent, width int) string {
	first, last := dates[0], dates[len(dates)-1]
	gap := width - len(first) - len(last)
	if len(dates) == 1 || gap < 1 {
		return strings.Repeat(" ", indent) + first
	}
	return strings.Repeat(" ", indent) + first + strings.Repeat(" ", gap) + last
}
