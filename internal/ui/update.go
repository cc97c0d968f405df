package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aristath/tickerview/internal/lookup"
)

// chromeLines is the height of the search bar and the help footer.
const chromeLines = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.maxWidth > 0 && m.width > m.maxWidth {
			m.width = m.maxWidth
		}
		m.viewport = newViewport(m.width, max(m.height-chromeLines, 1))
		m.ready = true
		m.contentDirty = true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Submit):
			cmds = append(cmds, m.apply(lookup.Submitted{}))

		case key.Matches(msg, keys.Clear):
			m.input.SetValue("")
			m.apply(lookup.Edited{Text: ""})

		default:
			before := m.input.Value()
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if v := m.input.Value(); v != before {
				m.apply(lookup.Edited{Text: v})
			}

			if m.ready {
				m.viewport, cmd = m.viewport.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case analysisMsg:
		m.apply(msg.FetchCompleted)

	case spinner.TickMsg:
		// Let the tick chain die out once nothing is loading.
		if m.state.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.ready && m.contentDirty {
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		m.contentDirty = false
	}

	return m, tea.Batch(cmds...)
}

// apply runs ev through the state machine and returns the command for the
// effect it produced, if any.
func (m *Model) apply(ev lookup.Event) tea.Cmd {
	prev := m.state
	var fx *lookup.Fetch
	m.state, fx = lookup.Transition(m.state, ev)

	if m.state.Phase != prev.Phase || m.state.Seq != prev.Seq || m.state.Result != prev.Result {
		m.contentDirty = true
	}
	if fx == nil {
		return nil
	}
	return tea.Batch(fetchAnalysis(m.runner, fx), m.spinner.Tick)
}
