// Package tui renders a match in the terminal with bubbletea. It is a pure
// consumer of the controller's snapshot and events; nothing here feeds back
// into game state except the documented control signals and the key-driven
// gesture source.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/handcricket/internal/game"
)

// frameMsg drives one controller tick
type frameMsg struct{}

// Model is the bubbletea model for an interactive match
type Model struct {
	controller *game.MatchController
	keys       *KeySource
	formatter  *game.EventFormatter
	logger     *log.Logger
	interval   time.Duration

	logViewport viewport.Model
	gameLog     []string

	pendingSignal game.Signal
	prompt        string
	lastResult    string
	quitting      bool

	width       int
	height      int
	initialized bool
}

// New creates a TUI model. keys may be nil when an external gesture source
// (a camera feed) drives the controller instead of the keyboard.
func New(controller *game.MatchController, keys *KeySource, fps int, logger *log.Logger) *Model {
	if fps <= 0 {
		fps = 30
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &Model{
		controller:  controller,
		keys:        keys,
		formatter:   game.NewEventFormatter(game.FormattingOptions{}),
		logger:      logger.WithPrefix("tui"),
		interval:    time.Second / time.Duration(fps),
		logViewport: vp,
		gameLog:     []string{},
		prompt:      "Press 's' to Start the Game!",
	}
}

// Init starts the frame ticker
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m.advanceFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 4
		logHeight := msg.Height - 12
		if logHeight < 3 {
			logHeight = 3
		}
		m.logViewport.Height = logHeight
		m.initialized = true

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c", "esc":
		m.pendingSignal = game.SignalQuit
	case "s":
		m.pendingSignal = game.SignalStart
	case "n":
		m.pendingSignal = game.SignalRestart
	case "0", "1", "2", "3", "4", "5":
		if m.keys != nil {
			m.keys.Press(int(key[0] - '0'))
		}
	}
	return m, nil
}

// advanceFrame runs one controller tick and folds its events into the view
func (m *Model) advanceFrame() (tea.Model, tea.Cmd) {
	in := game.FrameInput{Signal: m.pendingSignal}
	m.pendingSignal = game.SignalNone

	events := m.controller.Advance(in)
	for _, event := range events {
		m.consumeEvent(event)
	}

	if m.controller.Phase() == game.Idle {
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	}

	return m, m.tickCmd()
}

func (m *Model) consumeEvent(event game.Event) {
	line := m.formatter.Format(event)

	switch event.(type) {
	case game.PhaseChangedEvent:
		if line != "" {
			m.prompt = line
		}
	case game.RoundResolvedEvent:
		m.lastResult = line
		m.appendLog(line)
	case game.InningsConcludedEvent, game.MatchConcludedEvent:
		m.prompt = line
		m.appendLog(line)
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// View renders the scoreboard, prompt and event log
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.controller.Snapshot()

	var b strings.Builder
	b.WriteString(TitleStyle.Render("HAND CRICKET"))
	b.WriteString("\n\n")

	score := fmt.Sprintf("You: %d | Computer: %d", snap.PlayerRuns, snap.ComputerRuns)
	b.WriteString(ScoreStyle.Render(score))
	b.WriteString("\n")

	if snap.Innings > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Innings: %d | Round: %d | Clock: %d",
			snap.Innings, snap.Round, snap.ClockTick)))
		b.WriteString("\n")
	}

	if snap.Target != nil {
		b.WriteString(TargetStyle.Render(fmt.Sprintf("Target: %d", *snap.Target+1)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(PromptStyle.Render(m.prompt))
	b.WriteString("\n")

	if m.lastResult != "" {
		style := RunsStyle
		if snap.LastOutcome != nil && snap.LastOutcome.Kind == game.Out {
			style = OutStyle
		}
		b.WriteString(style.Render(m.lastResult))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(LogStyle.Render(m.logViewport.View()))
	b.WriteString("\n")

	b.WriteString(BarStyle.Foreground(instructionColor()).Render(m.instructions(snap)))

	return b.String()
}

func (m *Model) instructions(snap game.MatchSnapshot) string {
	switch snap.Phase {
	case game.Menu:
		return "Press 's' to Start | 'q' to Quit"
	case game.Result:
		return "Press 'n' to Restart Game | Press 'q' to Quit"
	default:
		if m.keys != nil {
			return "Show a hand with keys 0-5 | Auto Next Round | Press 'q' to Quit"
		}
		return "Auto Next Round | Press 'q' to Quit"
	}
}

// Run starts the TUI program and blocks until it exits
func Run(model *Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var _ tea.Model = (*Model)(nil)
