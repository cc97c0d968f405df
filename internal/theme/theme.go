// Package theme holds the semantic color palette shared by the terminal and
// web renderers.
package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/display"
)

// Theme holds the semantic color palette.
type Theme struct {
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Info    lipgloss.Color

	Green  Palette
	Red    Palette
	Yellow Palette

	SMA50  lipgloss.Color
	SMA200 lipgloss.Color
}

// Palette colors a badge or line of a given tone.
type Palette struct {
	Fg     lipgloss.Color
	Border lipgloss.Color
	Bg     lipgloss.Color
}

// Default theme uses slate/tailwind tones.
var Default = Theme{
	Base:    lipgloss.Color("#0F172A"), // slate-900
	Surface: lipgloss.Color("#1E293B"), // slate-800
	Overlay: lipgloss.Color("#334155"), // slate-700
	Border:  lipgloss.Color("#475569"), // slate-600
	Muted:   lipgloss.Color("#64748B"), // slate-500
	Text:    lipgloss.Color("#F8FAFC"),
	Subtext: lipgloss.Color("#94A3B8"), // slate-400
	Primary: lipgloss.Color("#2563EB"), // blue-600
	Accent:  lipgloss.Color("#60A5FA"), // blue-400
	Info:    lipgloss.Color("#60A5FA"),

	Green:  Palette{Fg: "#4ADE80", Border: "#22C55E", Bg: "#14532D"},
	Red:    Palette{Fg: "#F87171", Border: "#EF4444", Bg: "#7F1D1D"},
	Yellow: Palette{Fg: "#FACC15", Border: "#EAB308", Bg: "#713F12"},

	SMA50:  lipgloss.Color("#3B82F6"),
	SMA200: lipgloss.Color("#F97316"),
}

// Palette returns the palette of tone. Neutral uses the muted slate colors
// and any unknown tone falls back to yellow.
func (t Theme) Palette(tone analysis.Tone) Palette {
	switch tone {
	case analysis.ToneGreen:
		return t.Green
	case analysis.ToneRed:
		return t.Red
	case analysis.ToneNeutral:
		return Palette{Fg: t.Subtext, Border: t.Border, Bg: t.Overlay}
	default:
		return t.Yellow
	}
}

// SeriesColor returns the line color of a chart series.
func (t Theme) SeriesColor(s display.Series) lipgloss.Color {
	switch s.Kind {
	case display.SeriesSMA50:
		return t.SMA50
	case display.SeriesSMA200:
		return t.SMA200
	default:
		return t.Palette(s.Tone).Fg
	}
}

// GradientText fades each line of text from one color to another. Text is
// returned unstyled when either color is not a #rrggbb hex value.
func GradientText(text string, from, to lipgloss.Color) string {
	start, err := parseHex(string(from))
	if err != nil {
		return text
	}
	end, err := parseHex(string(to))
	if err != nil {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			continue
		}
		var sb strings.Builder
		for j, r := range runes {
			pos := 0.0
			if len(runes) > 1 {
				pos = float64(j) / float64(len(runes)-1)
			}
			style := lipgloss.NewStyle().Foreground(start.mix(end, pos).color())
			sb.WriteString(style.Render(string(r)))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

type rgb [3]uint8

// mix interpolates linearly towards other; pos 0 is c and 1 is other.
func (c rgb) mix(other rgb, pos float64) rgb {
	var out rgb
	for k := range c {
		out[k] = uint8(math.Round(float64(c[k]) + pos*(float64(other[k])-float64(c[k]))))
	}
	return out
}

func (c rgb) color() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

func parseHex(hex string) (rgb, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return rgb{}, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	var c rgb
	n, err := fmt.Sscanf(digits, "%02x%02x%02x", &c[0], &c[1], &c[2])
	if err != nil || n != 3 {
		return rgb{}, fmt.Errorf("color %q is not #rrggbb: %v", hex, err)
	}
	return c, nil
}
