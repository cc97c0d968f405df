// Package ui is the terminal renderer of the symbol lookup view.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/tickerview/internal/display"
	"github.com/aristath/tickerview/internal/lookup"
	"github.com/aristath/tickerview/internal/theme"
)

type Model struct {
	runner *lookup.Runner
	apiURL string

	// Data
	state   lookup.State
	pending *lookup.Fetch // issued on Init

	// UI state
	width        int
	height       int
	maxWidth     int
	ready        bool
	contentDirty bool

	// Components
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
}

// Messages

// analysisMsg delivers the outcome of a fetch back to Update.
type analysisMsg struct {
	lookup.FetchCompleted
}

// NewModel creates the view for defaultSymbol and mounts it. The first
// request is issued by Init.
func NewModel(runner *lookup.Runner, apiURL, defaultSymbol string, maxWidth int) Model {
	t := theme.Default

	in := textinput.New()
	in.Placeholder = display.SearchHint
	in.Prompt = "› "
	in.CharLimit = 16
	in.Width = 28
	in.PromptStyle = lipgloss.NewStyle().Foreground(t.Accent)
	in.TextStyle = lipgloss.NewStyle().Foreground(t.Text)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(t.Muted)
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Accent)

	state, fx := lookup.Transition(lookup.New(defaultSymbol), lookup.Mounted{})

	return Model{
		runner:   runner,
		apiURL:   apiURL,
		state:    state,
		pending:  fx,
		maxWidth: maxWidth,
		input:    in,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchAnalysis(m.runner, m.pending),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// State returns the current lookup state.
func (m Model) State() lookup.State {
	return m.state
}

// Commands

// fetchAnalysis runs f off the update loop. Superseded requests are not
// cancelled; their results are dropped by the state machine.
func fetchAnalysis(r *lookup.Runner, f *lookup.Fetch) tea.Cmd {
	if f == nil {
		return nil
	}
	fx := *f
	return func() tea.Msg {
		return analysisMsg{r.Run(context.Background(), fx)}
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	// Letters must reach the input, so only non-printing keys scroll.
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return vp
}
