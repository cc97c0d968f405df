package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"

	"github.com/aristath/tickerview/internal/analysis"
	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/theme"
)

const chartHeight = 10

func (m Model) View() string {
	if !m.ready {
		return "\n  " + display.LoadingLabel
	}
	t := theme.Default

	var body string
	if m.state.Loading() {
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			m.spinner.View() + " " +
				lipgloss.NewStyle().Foreground(t.Subtext).Render(display.LoadingLabel+" "+m.state.ActiveSymbol),
		)
		body = lipgloss.NewStyle().Height(m.viewport.Height).Render(body)
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewSearch(), body, m.viewHelp())
}

func (m Model) viewSearch() string {
	t := theme.Default
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render("tickerview")
	bar := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Overlay).
		Padding(0, 1).
		Render(title + "  " + m.input.View())
	return bar
}

func (m Model) viewHelp() string {
	t := theme.Default
	help := strings.Join([]string{
		keys.Submit.Help().Key + " " + keys.Submit.Help().Desc,
		keys.Clear.Help().Key + " " + keys.Clear.Help().Desc,
		"↑/↓ scroll",
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}, " • ")
	return lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1).Render(help + "   " + m.apiURL)
}

// renderContent draws the scrollable part for the current non-loading state.
func (m Model) renderContent() string {
	v := display.Build(m.state)
	pad := lipgloss.NewStyle().Padding(0, 2)
	width := max(m.width-4, 20)

	switch {
	case v.Message != "":
		return pad.Render(renderError(v.Message, width))
	case v.Panel != nil:
		return pad.Render(renderPanel(v.Panel, width))
	}
	return ""
}

func renderError(msg string, width int) string {
	t := theme.Default
	p := t.Palette(analysis.ToneRed)
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Foreground(p.Fg).
		Padding(0, 1).
		Width(width - 2).
		Render(msg)
}

func renderPanel(p *display.Panel, width int) string {
	t := theme.Default

	sections := []string{
		renderHeader(p, width),
		"",
		renderPrice(p),
		"",
		renderValuation(p, width),
		"",
		renderTiles(p.Tiles, width),
		"",
	}
	if chart := RenderLineChart(p.Chart, width, chartHeight, t); chart != "" {
		sections = append(sections, chart, "")
	}
	sections = append(sections,
		renderComment(p.Comment, width),
		"",
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(t.Subtext).
			Render(display.UpdatedLabel+": "+p.UpdatedAt),
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(t.Muted).
			Render(p.Disclaimer),
	)
	return strings.Join(sections, "\n")
}

func renderHeader(p *display.Panel, width int) string {
	t := theme.Default
	palette := t.Palette(p.Tone)

	badge := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Foreground(palette.Fg).
		Padding(0, 2).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Faint(true).Render(strings.ToUpper(display.ScoreLabel)) + "\n" +
			lipgloss.NewStyle().Bold(true).Render(p.Score))

	room := width - lipgloss.Width(badge) - 2
	symbol := renderBanner(p.Symbol, room)
	name := lipgloss.NewStyle().Foreground(t.Subtext).MaxWidth(room).Render(p.CompanyName)
	left := lipgloss.JoinVertical(lipgloss.Left, symbol, name)

	gap := lipgloss.NewStyle().Width(max(width-lipgloss.Width(left)-lipgloss.Width(badge), 1)).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Center, left, gap, badge)
}

// renderBanner renders the symbol as a figlet banner, or as bold text when
// the banner does not fit.
func renderBanner(symbol string, room int) string {
	t := theme.Default
	fig := figure.NewFigure(symbol, "small", false)
	banner := strings.TrimRight(strings.Join(fig.Slicify(), "\n"), "\n ")
	if banner == "" || lipgloss.Width(banner) > room {
		return lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(symbol)
	}
	return theme.GradientText(banner, t.Text, t.Accent)
}

func renderPrice(p *display.Panel) string {
	t := theme.Default
	change := t.Green.Fg
	if p.Glyph == analysis.GlyphDown {
		change = t.Red.Fg
	}
	price := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(p.Price)
	return price + "  " + lipgloss.NewStyle().Foreground(change).Render(p.Change())
}

func renderValuation(p *display.Panel, width int) string {
	t := theme.Default
	tone := t.Palette(p.ValuationTone)

	label := lipgloss.NewStyle().Foreground(t.Subtext).Render(strings.ToUpper(display.GrahamLabel))
	status := ""
	if p.GrahamStatus != "" {
		status = lipgloss.NewStyle().Bold(true).Foreground(tone.Fg).Render(p.GrahamStatus)
	}
	inner := width - 4
	top := label + strings.Repeat(" ", max(inner-lipgloss.Width(label)-lipgloss.Width(status), 1)) + status
	value := lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(p.GrahamValue)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width - 2).
		Render(top + "\n" + value)
}

// renderTiles lays the metric tiles out in one row.
func renderTiles(tiles []display.Tile, width int) string {
	if len(tiles) == 0 {
		return ""
	}
	each := max(width/len(tiles)-1, 8)
	rendered := make([]string, 0, len(tiles)*2)
	for i, tile := range tiles {
		if i > 0 {
			rendered = append(rendered, " ")
		}
		rendered = append(rendered, renderTile(tile, each))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderTile draws a single labeled metric.
func renderTile(tile display.Tile, width int) string {
	t := theme.Default
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Overlay).
		Padding(0, 1).
		Width(width - 2).
		Render(lipgloss.NewStyle().Foreground(t.Subtext).Render(tile.Title) + "\n" +
			lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(tile.Value))
}

func renderComment(comment string, width int) string {
	t := theme.Default
	title := lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Render("● " + strings.ToUpper(display.CommentLabel))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1).
		Width(width - 2).
		Render(title + "\n" + lipgloss.NewStyle().Foreground(t.Text).Render(comment))
}
