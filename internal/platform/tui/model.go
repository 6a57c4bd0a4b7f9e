package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilematch/internal/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch"
	"github.com/vovakirdan/tilematch/internal/storage"
)

var screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"))

// ModelOptions configure a game model.
type ModelOptions struct {
	Store  *storage.Store // Optional, results are not persisted without it
	Theme  string
	Logger *log.Logger

	// Embedded models leave the program running when the player goes back
	// to the menu; the parent checks BackToMenu.
	Embedded bool
}

// Model is the Bubble Tea model for one tilematch game.
type Model struct {
	game       *tilematch.Game
	screen     *core.Screen
	recorder   *ResultRecorder
	keys       KeyMap
	help       help.Model
	theme      Theme
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game *tilematch.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   NewResultRecorder(opts.Store, game.Campaign().ID, logger),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      ThemeByName(opts.Theme),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		logger:     logger,
		embedded:   opts.Embedded,
	}
	m.layout()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), waitForSnapshot(m.game))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()

	case SnapshotMsg:
		return m.handleSnapshot()
	}

	return m, nil
}

// layout splits the window between the game screen and the help bar.
func (m *Model) layout() {
	m.help.Width = m.config.ScreenW
	h := m.config.ScreenH - lipgloss.Height(m.help.View(m.keys))
	if h < 1 {
		h = 1
	}
	m.screen.Resize(m.config.ScreenW, h)
	m.game.Resize(m.config.ScreenW, h)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, screenshotKey):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = NextTheme(m.theme)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.gameState.Paused || m.gameState.LevelComplete || m.gameState.GameOver {
			m.backToMenu = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		}
		// Esc also pauses a running game.
		m.inputFrame.Set(core.ActionPause)
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleTick applies collected input, or picks up timer changes when there
// was none, then persists any finished levels.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Empty() {
		if m.inputFrame.Has(core.ActionRestart) {
			m.recorder.NewRun()
		}
		m.game.Step(m.inputFrame)
		m.gameState = m.game.State()
		m.recorder.Observe(m.game.Snapshot())

		// Clear input for next frame
		m.inputFrame.Clear()
	}

	return m, tickCmd(m.config.TickRate)
}

// handleSnapshot picks up changes made by the session timer.
func (m Model) handleSnapshot() (tea.Model, tea.Cmd) {
	m.game.Refresh()
	m.gameState = m.game.State()
	m.recorder.Observe(m.game.Snapshot())
	return m, waitForSnapshot(m.game)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tilematch", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme) + "\n" + m.theme.HelpBar.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Theme returns the active theme, which may have been toggled in game.
func (m Model) Theme() Theme {
	return m.theme
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// RunResult holds what happened when a game program ended.
type RunResult struct {
	BackToMenu bool
	Theme      string
	Config     core.RuntimeConfig
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game *tilematch.Game, cfg core.RuntimeConfig, opts ModelOptions) (RunResult, error) {
	opts.Embedded = false
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Config: cfg, Theme: opts.Theme}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return RunResult{Config: cfg, Theme: opts.Theme}, nil
	}
	return RunResult{
		BackToMenu: m.BackToMenu(),
		Theme:      m.Theme().Name,
		Config:     m.Config(),
	}, nil
}
