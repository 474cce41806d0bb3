package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/anirename/internal/config"
	"github.com/Nomadcxx/anirename/internal/tvdb"
	"github.com/Nomadcxx/anirename/internal/ui"
	"github.com/Nomadcxx/anirename/internal/versioning"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactive configuration wizard",
		Long: `Walk through the anirename configuration: TheTVDB API credentials
(with a live connection test), filename templates, and general options.
Writes ~/.config/anirename/config.toml when confirmed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsTerminal() {
				return fmt.Errorf("setup needs an interactive terminal (edit the config file directly instead)")
			}

			p := tea.NewProgram(newSetupModel(), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}

			if m, ok := final.(setupModel); ok && m.saved {
				path, _ := config.ConfigPath()
				if cfgFile != "" {
					path = cfgFile
				}
				ui.SuccessMsg("Configuration written to %s", path)
			}
			return nil
		},
	}
}

// Wizard steps
type setupStep int

const (
	stepWelcome setupStep = iota
	stepAPI
	stepNaming
	stepOptions
	stepConfirm
	stepComplete
)

type apiTestResultMsg struct {
	success bool
	err     error
}

type setupModel struct {
	step   setupStep
	width  int
	height int

	spinner      spinner.Model
	inputs       []textinput.Model
	focusedInput int

	// TheTVDB credentials
	apiKey   string
	pin      string
	apiURL   string
	language string
	testing  bool
	tested   bool
	testErr  string

	// Naming templates
	regularTemplate string
	specialTemplate string

	// Options
	temporaryVersioning bool
	operationLog        bool
	selectedOption      int

	saved   bool
	saveErr string
}

func newSetupModel() setupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(setupAccent)

	// Prefill from the existing config; Load falls back to defaults when
	// the file does not exist yet.
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	return setupModel{
		step:                stepWelcome,
		spinner:             s,
		apiKey:              cfg.TVDB.APIKey,
		pin:                 cfg.TVDB.PIN,
		apiURL:              cfg.TVDB.URL,
		language:            cfg.TVDB.Language,
		regularTemplate:     cfg.Naming.RegularTemplate,
		specialTemplate:     cfg.Naming.SpecialTemplate,
		temporaryVersioning: cfg.VersioningMode() == versioning.Temporary,
		operationLog:        cfg.Options.OperationLog,
	}
}

func (m setupModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// testConnection validates the credentials against the live API.
func testConnection(url, apiKey, pin string) tea.Cmd {
	return func() tea.Msg {
		client := tvdb.NewClient(tvdb.Config{
			URL:     url,
			APIKey:  apiKey,
			PIN:     pin,
			Timeout: 10 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := client.Authenticate(ctx); err != nil {
			return apiTestResultMsg{success: false, err: err}
		}
		return apiTestResultMsg{success: true}
	}
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case apiTestResultMsg:
		m.testing = false
		if msg.success {
			m.tested = true
			m.testErr = ""
		} else {
			m.tested = false
			m.testErr = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

// handleKey consumes navigation and action keys; anything else falls
// through to the focused text input so typing works.
func (m setupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.step == stepWelcome || m.step == stepComplete {
			return m, tea.Quit
		}
	}

	switch m.step {
	case stepWelcome:
		if key == "enter" {
			m.step = stepAPI
			m.initInputsForStep()
			return m, nil
		}

	case stepAPI:
		switch key {
		case "tab", "down":
			return m.nextInput()
		case "shift+tab", "up":
			return m.prevInput()
		case "ctrl+t":
			if !m.testing {
				m.saveInputsFromStep()
				if m.apiKey != "" {
					m.testing = true
					m.testErr = ""
					return m, tea.Batch(m.spinner.Tick, testConnection(m.apiURL, m.apiKey, m.pin))
				}
			}
			return m, nil
		case "enter":
			m.saveInputsFromStep()
			m.step = stepNaming
			m.initInputsForStep()
			return m, nil
		case "esc":
			m.saveInputsFromStep()
			m.step = stepWelcome
			m.inputs = nil
			return m, nil
		}

	case stepNaming:
		switch key {
		case "tab", "down":
			return m.nextInput()
		case "shift+tab", "up":
			return m.prevInput()
		case "enter":
			m.saveInputsFromStep()
			m.step = stepOptions
			m.inputs = nil
			m.selectedOption = 0
			return m, nil
		case "esc":
			m.saveInputsFromStep()
			m.step = stepAPI
			m.initInputsForStep()
			return m, nil
		}

	case stepOptions:
		switch key {
		case "up", "k":
			if m.selectedOption > 0 {
				m.selectedOption--
			}
		case "down", "j":
			if m.selectedOption < 1 {
				m.selectedOption++
			}
		case " ", "left", "right":
			if m.selectedOption == 0 {
				m.temporaryVersioning = !m.temporaryVersioning
			} else {
				m.operationLog = !m.operationLog
			}
		case "enter":
			m.step = stepConfirm
			m.selectedOption = 0
			return m, nil
		case "esc":
			m.step = stepNaming
			m.initInputsForStep()
			return m, nil
		}

	case stepConfirm:
		switch key {
		case "up", "k":
			if m.selectedOption > 0 {
				m.selectedOption--
			}
		case "down", "j":
			if m.selectedOption < 1 {
				m.selectedOption++
			}
		case "enter":
			if m.selectedOption == 0 {
				m.saveErr = ""
				if err := m.saveConfig(); err != nil {
					m.saveErr = err.Error()
				} else {
					m.saved = true
				}
				m.step = stepComplete
			} else {
				m.step = stepAPI
				m.initInputsForStep()
			}
			return m, nil
		case "esc":
			m.step = stepOptions
			m.selectedOption = 0
			return m, nil
		}

	case stepComplete:
		if key == "enter" {
			return m, tea.Quit
		}
	}

	return m.updateFocusedInput(msg)
}

func (m setupModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 || m.focusedInput >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusedInput], cmd = m.inputs[m.focusedInput].Update(msg)
	return m, cmd
}

func (m setupModel) nextInput() (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	m.inputs[m.focusedInput].Blur()
	m.focusedInput = (m.focusedInput + 1) % len(m.inputs)
	m.inputs[m.focusedInput].Focus()
	return m, nil
}

func (m setupModel) prevInput() (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	m.inputs[m.focusedInput].Blur()
	m.focusedInput--
	if m.focusedInput < 0 {
		m.focusedInput = len(m.inputs) - 1
	}
	m.inputs[m.focusedInput].Focus()
	return m, nil
}

func (m *setupModel) initInputsForStep() {
	m.inputs = nil
	m.focusedInput = 0

	switch m.step {
	case stepAPI:
		keyInput := textinput.New()
		keyInput.Placeholder = "TheTVDB v4 API key"
		keyInput.EchoMode = textinput.EchoPassword
		keyInput.Width = 50
		keyInput.SetValue(m.apiKey)
		keyInput.Focus()

		pinInput := textinput.New()
		pinInput.Placeholder = "subscriber PIN (leave empty for project keys)"
		pinInput.Width = 50
		pinInput.SetValue(m.pin)

		urlInput := textinput.New()
		urlInput.Placeholder = tvdb.DefaultURL
		urlInput.Width = 50
		urlInput.SetValue(m.apiURL)

		langInput := textinput.New()
		langInput.Placeholder = tvdb.DefaultLanguage
		langInput.Width = 20
		langInput.SetValue(m.language)

		m.inputs = []textinput.Model{keyInput, pinInput, urlInput, langInput}

	case stepNaming:
		regularInput := textinput.New()
		regularInput.Placeholder = config.DefaultConfig().Naming.RegularTemplate
		regularInput.Width = 60
		regularInput.SetValue(m.regularTemplate)
		regularInput.Focus()

		specialInput := textinput.New()
		specialInput.Placeholder = config.DefaultConfig().Naming.SpecialTemplate
		specialInput.Width = 60
		specialInput.SetValue(m.specialTemplate)

		m.inputs = []textinput.Model{regularInput, specialInput}
	}
}

func (m *setupModel) saveInputsFromStep() {
	switch m.step {
	case stepAPI:
		if len(m.inputs) >= 4 {
			m.apiKey = strings.TrimSpace(m.inputs[0].Value())
			m.pin = strings.TrimSpace(m.inputs[1].Value())
			m.apiURL = strings.TrimSpace(m.inputs[2].Value())
			m.language = strings.TrimSpace(m.inputs[3].Value())
		}
	case stepNaming:
		if len(m.inputs) >= 2 {
			m.regularTemplate = strings.TrimSpace(m.inputs[0].Value())
			m.specialTemplate = strings.TrimSpace(m.inputs[1].Value())
		}
	}
}

// saveConfig merges the wizard values over the existing config and writes
// the file.
func (m setupModel) saveConfig() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	cfg.TVDB.APIKey = m.apiKey
	cfg.TVDB.PIN = m.pin
	if m.apiURL != "" {
		cfg.TVDB.URL = m.apiURL
	}
	if m.language != "" {
		cfg.TVDB.Language = m.language
	}
	if m.regularTemplate != "" {
		cfg.Naming.RegularTemplate = m.regularTemplate
	}
	if m.specialTemplate != "" {
		cfg.Naming.SpecialTemplate = m.specialTemplate
	}
	mode := versioning.Direct
	if m.temporaryVersioning {
		mode = versioning.Temporary
	}
	cfg.Options.Versioning = mode.String()
	cfg.Options.OperationLog = m.operationLog

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfgFile != "" {
		return cfg.SaveTo(cfgFile)
	}
	return cfg.Save()
}
