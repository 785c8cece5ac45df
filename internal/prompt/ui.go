// Package prompt asks the user to confirm module operations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/terminal"
)

// ErrCancelled reports a confirmation aborted with Esc or Ctrl+C.
var ErrCancelled = errors.New(messages.PromptCancelled)

// UI asks yes/no questions.
type UI interface {
	Confirm(title string, defaultYes bool) (bool, error)
}

var isInteractive = terminal.IsInteractive

// New returns a HuhUI drawing on out when stdin and stdout are terminals, and a
// LineUI reading in otherwise.
func New(in io.Reader, out io.Writer) UI {
	if isInteractive() {
		return NewHuhUI(out)
	}
	return NewLineUI(in, out)
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
	out        io.Writer
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI that draws on out, or on stderr when out is nil.
func NewHuhUI(out io.Writer) *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive, out: out}
}

// confirmKeyMap makes both Esc and Ctrl+C abort the form.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", messages.PromptCancelHelp))
	return km
}

// interruptFilter converts InterruptMsg to QuitMsg so bubbletea clears the form on abort.
func interruptFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

// Confirm renders a yes/no prompt preselected to defaultYes.
func (ui *HuhUI) Confirm(title string, defaultYes bool) (bool, error) {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return false, errors.New(messages.PromptRequiresTerminal)
	}

	value := defaultYes
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(messages.PromptAffirmative).
				Negative(messages.PromptNegative).
				Value(&value),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	out := ui.out
	if out == nil {
		out = os.Stderr
	}
	form.WithProgramOptions(
		tea.WithOutput(out),
		tea.WithFilter(interruptFilter),
	)

	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, ErrCancelled
		}
		return false, err
	}
	return value, nil
}

// LineUI asks questions on a plain line-oriented stream.
type LineUI struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineUI returns a LineUI reading answers from in and writing questions to out.
func NewLineUI(in io.Reader, out io.Writer) *LineUI {
	return &LineUI{in: bufio.NewReader(in), out: out}
}

// Confirm asks title and waits for y or n. End of input declines.
func (ui *LineUI) Confirm(title string, defaultYes bool) (bool, error) {
	return promptYesNo(ui.in, ui.out, title, defaultYes)
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(reader *bufio.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	format := messages.PromptNoDefaultFmt
	if defaultYes {
		format = messages.PromptYesDefaultFmt
	}
	for {
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if err != nil {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
