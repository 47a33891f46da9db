package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RE4CT-SC/388-Client/internal/hotkey"
)

// tokenMsg delivers one accepted hotkey firing to the wizard.
type tokenMsg hotkey.Token

// waitToken pumps the next token from the dispatcher into the program.
func waitToken(tokens <-chan hotkey.Token) tea.Cmd {
	return func() tea.Msg {
		tok, ok := <-tokens
		if !ok {
			return nil
		}
		return tokenMsg(tok)
	}
}

// Wizard is the first-run setup model: press the desired input twice, then
// paste the bot-issued auth token.
type Wizard struct {
	keys    KeyMap
	tokens  <-chan hotkey.Token
	capture hotkey.Capture
	input   textinput.Model

	note      string
	noteStyle lipgloss.Style
	confirmed bool
	done      bool
	cancelled bool
	width     int
}

func NewWizard(tokens <-chan hotkey.Token) Wizard {
	ti := textinput.New()
	ti.Placeholder = "paste auth token"
	ti.CharLimit = 256
	ti.Width = 40
	keys := DefaultKeyMap()
	// The wizard captures ordinary keys as binding candidates, so only
	// ctrl+c cancels it.
	keys.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return Wizard{
		keys:      keys,
		tokens:    tokens,
		input:     ti,
		note:      "Press your desired key or button twice to confirm.",
		noteStyle: textStyle,
	}
}

// Binding returns the confirmed hotkey. Valid once Done reports true.
func (w Wizard) Binding() hotkey.Token { return w.capture.Binding() }

// AuthToken returns the entered credential. Valid once Done reports true.
func (w Wizard) AuthToken() string { return w.input.Value() }

func (w Wizard) Done() bool      { return w.done }
func (w Wizard) Cancelled() bool { return w.cancelled }

func (w Wizard) Init() tea.Cmd {
	return waitToken(w.tokens)
}

func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		return w, nil

	case tokenMsg:
		if w.confirmed {
			// Keep consuming so the stream never backs up; confirmed means
			// firings are discarded, not queued.
			return w, waitToken(w.tokens)
		}
		tok := hotkey.Token(msg)
		switch w.capture.Offer(tok) {
		case hotkey.CaptureFirst:
			w.note = "First press: " + tok.Display() + ". Press again."
			w.noteStyle = textStyle
		case hotkey.CaptureMismatch:
			w.note = "Mismatch! Press your desired key again."
			w.noteStyle = dangerStyle
		case hotkey.CaptureConfirmed:
			w.note = "Keybind confirmed: " + tok.Display()
			w.noteStyle = successStyle
			w.confirmed = true
			return w, tea.Batch(w.input.Focus(), waitToken(w.tokens))
		}
		return w, waitToken(w.tokens)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, w.keys.Quit):
			w.cancelled = true
			return w, tea.Quit
		case key.Matches(msg, w.keys.Accept) && w.confirmed:
			if w.input.Value() == "" {
				w.note = "Token is required to proceed."
				w.noteStyle = warningStyle
				return w, nil
			}
			w.done = true
			return w, tea.Quit
		}
	}

	if w.confirmed {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w Wizard) View() string {
	body := headerStyle.Render("First-Time Setup") + "\n" +
		w.noteStyle.Render(w.note) + "\n"

	if w.confirmed {
		body += "\n" + textStyle.Render("Auth Token:") + "\n" +
			w.input.View() + "\n\n" +
			dimStyle.Render("enter save · ctrl+c quit")
	} else {
		body += "\n" + dimStyle.Render("left/right mouse clicks are ignored · ctrl+c quit")
	}

	return boxStyle.Render(body)
}
