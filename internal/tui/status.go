package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RE4CT-SC/388-Client/internal/diag"
	"github.com/RE4CT-SC/388-Client/internal/hotkey"
	"github.com/RE4CT-SC/388-Client/internal/session"
)

const diagInterval = 5 * time.Second

type sessionEventMsg session.Event

type diagTickMsg struct{}

func waitEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg(ev)
	}
}

func diagTick() tea.Cmd {
	return tea.Tick(diagInterval, func(time.Time) tea.Msg {
		return diagTickMsg{}
	})
}

// Status is the main view after setup: current session state, the armed
// keybind, the last transition, and a process-health footer.
type Status struct {
	keys    KeyMap
	events  <-chan session.Event
	binding hotkey.Token

	state  session.State
	note   string
	reason string
	diag   diag.Snapshot
	width  int
}

func NewStatus(ctrl *session.Controller, binding hotkey.Token) Status {
	return Status{
		keys:    DefaultKeyMap(),
		events:  ctrl.Subscribe(),
		binding: binding,
		state:   ctrl.State(),
		note:    "Press your keybind to activate as Team-Lead.",
		diag:    diag.Collect(),
	}
}

func (s Status) Init() tea.Cmd {
	return tea.Batch(waitEvent(s.events), diagTick())
}

func (s Status) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		return s, nil

	case diagTickMsg:
		s.diag = diag.Collect()
		return s, diagTick()

	case sessionEventMsg:
		ev := session.Event(msg)
		s.state = ev.State
		s.reason = ev.Reason
		s.note = noteFor(ev.Type)
		return s, waitEvent(s.events)

	case tea.KeyMsg:
		if key.Matches(msg, s.keys.Quit) {
			return s, tea.Quit
		}
	}
	return s, nil
}

func noteFor(t session.EventType) string {
	switch t {
	case session.EventActivated:
		return "Press again to start a whisper session."
	case session.EventEntered:
		return "Press again to end the session or leave early."
	case session.EventLeft, session.EventExited:
		return "Press again to start a whisper session."
	case session.EventRevoked:
		return "Press your keybind to activate as Team-Lead."
	default:
		return "Press your keybind to activate as Team-Lead."
	}
}

func (s Status) stateLine() string {
	switch s.state {
	case session.Activated:
		return successStyle.Render("Status: Activated")
	case session.InSession:
		return bindingStyle.Render("Status: In Session")
	default:
		return dangerStyle.Render("Status: Inactive")
	}
}

func (s Status) View() string {
	body := headerStyle.Render("388-Client") + "\n" +
		s.stateLine() + "\n\n" +
		textStyle.Render("Your keybind is: ") + bindingStyle.Render(s.binding.Display()) + "\n" +
		textStyle.Render(s.note) + "\n"

	if s.reason != "" {
		body += "\n" + dangerStyle.Render(s.reason) + "\n"
	}

	footer := dimStyle.Render(fmt.Sprintf("cpu %.1f%% · rss %s · up %s · q quit",
		s.diag.CPUPercent, humanBytes(s.diag.RSSBytes), s.diag.Uptime))

	return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(body), footer)
}

func humanBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
