package main

import (
	"fmt"
	"strings"

	"blocksplanner/internal/blocksworld"
	"blocksplanner/internal/fixture"
	"blocksplanner/internal/logging"
	"blocksplanner/internal/parser"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive planning session",
	RunE:  runRepl,
}

var (
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	planStyleR  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	errorStyleR = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

type replModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	lines     []string
	session   *blocksworld.Session
	parser    *parser.Parser
	width     int
	height    int
	ready     bool
}

func runRepl(cmd *cobra.Command, args []string) error {
	state, err := fixture.Load(cfg.World.FixturePath)
	if err != nil {
		return fmt.Errorf("loading world fixture: %w", err)
	}

	var mangleOracle *blocksworld.MangleOracle
	if mo, err := blocksworld.NewMangleOracle(state.Objects); err == nil {
		mangleOracle = mo
		defer mangleOracle.Close()
	}

	budget := blocksworld.SearchBudget{TimeBudget: searchBudgetFromConfig(), MaxNodes: cfg.Search.MaxNodes}
	session := blocksworld.NewSession(state, mangleOracle, budget, logging.For(logger, logging.CategorySession))

	watcher, err := fixture.NewWatcher(cfg.World.FixturePath, func(path string) {
		logging.For(logger, logging.CategoryCLI).Info("world fixture changed on disk", zap.String("path", path))
	}, logger)
	if err == nil {
		if err := watcher.Start(); err == nil {
			defer watcher.Stop()
		}
	}

	ti := textinput.New()
	ti.Placeholder = "take the ball"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	m := replModel{
		textinput: ti,
		session:   session,
		parser:    parser.New(),
		lines:     []string{"nerdblocks repl — type an instruction, or /quit to exit."},
	}

	program := tea.NewProgram(m)
	_, err = program.Run()
	return err
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textinput.Value())
			m.textinput.SetValue("")
			if input == "" {
				return m, nil
			}
			if input == "/quit" || input == "/exit" {
				return m, tea.Quit
			}
			if input == "/help" {
				m.lines = append(m.lines, "commands: /quit, /exit, /help")
				return m, nil
			}
			m.lines = append(m.lines, userStyle.Render("> "+input))
			m.handleUtterance(input)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-3)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 3
		}
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
	return m, cmd
}

func (m *replModel) handleUtterance(input string) {
	result, prompt, perr := m.session.Handle(m.parser, input)
	switch {
	case perr != nil:
		m.lines = append(m.lines, errorStyleR.Render(perr.Message))
	case prompt != "":
		m.lines = append(m.lines, planStyleR.Render(prompt))
	default:
		for _, line := range result.Narrated.Lines {
			m.lines = append(m.lines, planStyleR.Render(line))
		}
		m.lines = append(m.lines, fmt.Sprintf("(%d nodes expanded in %s)", result.NodesExpanded, result.Elapsed))
	}
}

func (m replModel) View() string {
	if !m.ready {
		return "initializing...\n"
	}
	return m.viewport.View() + "\n" + m.textinput.View()
}
