package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/anirename/internal/config"
)

// Wizard theme
var (
	setupAccent  = lipgloss.Color("#C678DD") // purple
	setupCyan    = lipgloss.Color("#56B6C2")
	setupMuted   = lipgloss.Color("#888888")
	setupErr     = lipgloss.Color("#E06C75")
	setupSuccess = lipgloss.Color("#98C379")

	setupTitleStyle   = lipgloss.NewStyle().Foreground(setupAccent).Bold(true)
	setupSectionStyle = lipgloss.NewStyle().Foreground(setupCyan)
	setupMutedStyle   = lipgloss.NewStyle().Foreground(setupMuted)
	setupErrStyle     = lipgloss.NewStyle().Foreground(setupErr)
	setupOKStyle      = lipgloss.NewStyle().Foreground(setupSuccess)
	setupCursorStyle  = lipgloss.NewStyle().Foreground(setupAccent)
)

func (m setupModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	const minWidth = 72
	const minHeight = 20
	if m.width < minWidth || m.height < minHeight {
		warningStyle := lipgloss.NewStyle().
			Foreground(setupErr).
			Bold(true).
			Align(lipgloss.Center, lipgloss.Center).
			Width(m.width).
			Height(m.height)
		return warningStyle.Render(fmt.Sprintf(
			"Terminal too small!\n\nMinimum: %dx%d\nCurrent: %dx%d",
			minWidth, minHeight, m.width, m.height))
	}

	var content string
	content += setupTitleStyle.Render(asciiHeader) + "\n"
	content += setupMutedStyle.Render("configuration wizard") + "\n\n"

	var mainContent string
	switch m.step {
	case stepWelcome:
		mainContent = m.renderWelcome()
	case stepAPI:
		mainContent = m.renderAPI()
	case stepNaming:
		mainContent = m.renderNaming()
	case stepOptions:
		mainContent = m.renderOptions()
	case stepConfirm:
		mainContent = m.renderConfirm()
	case stepComplete:
		mainContent = m.renderComplete()
	}

	mainStyle := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(setupAccent).
		Width(m.width - 4)
	content += mainStyle.Render(mainContent) + "\n"

	if help := m.helpText(); help != "" {
		content += "\n" + setupMutedStyle.Italic(true).Render(help)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

func (m setupModel) renderWelcome() string {
	var content string

	content += setupTitleStyle.Render("Welcome") + "\n\n"
	content += "This wizard configures anirename: TheTVDB API access, filename\n"
	content += "templates, and general options.\n\n"
	content += "You need a free TheTVDB v4 API key from " +
		setupSectionStyle.Render("https://thetvdb.com/api-information") + "\n\n"

	if config.Exists() {
		path, _ := config.ConfigPath()
		content += setupMutedStyle.Render("Existing config found at "+path) + "\n"
		content += setupMutedStyle.Render("Current values are prefilled; saving overwrites the file.") + "\n\n"
	}

	content += "Press Enter to begin."
	return content
}

func (m setupModel) renderAPI() string {
	var content string

	content += setupTitleStyle.Render("TheTVDB Access") + "\n\n"

	labels := []string{"API Key:", "PIN (optional):", "API URL:", "Language:"}
	for i, label := range labels {
		content += label + "\n"
		if i < len(m.inputs) {
			content += m.inputs[i].View() + "\n\n"
		}
	}

	switch {
	case m.testing:
		content += m.spinner.View() + " Testing connection...\n"
	case m.tested:
		content += setupOKStyle.Render("✓ Connected, credentials accepted") + "\n"
	case m.testErr != "":
		content += setupErrStyle.Render("✗ Connection failed: "+m.testErr) + "\n"
	default:
		content += setupMutedStyle.Render("Press Ctrl+T to test the connection") + "\n"
	}

	return content
}

func (m setupModel) renderNaming() string {
	var content string

	content += setupTitleStyle.Render("Filename Templates") + "\n\n"
	content += "Placeholders: " + setupSectionStyle.Render("{series} {season:02} {episode:02} {title}") + "\n"
	content += setupMutedStyle.Render("The result is sanitized for the filesystem; spaces become dots.") + "\n\n"

	content += "Regular episodes:\n"
	if len(m.inputs) > 0 {
		content += m.inputs[0].View() + "\n\n"
	}

	content += "Specials (season 0):\n"
	if len(m.inputs) > 1 {
		content += m.inputs[1].View() + "\n\n"
	}

	content += setupMutedStyle.Render("Example: Frieren.S01E05.The.Killing.Magic.mkv") + "\n"
	return content
}

func (m setupModel) renderOptions() string {
	var content string

	content += setupTitleStyle.Render("Options") + "\n\n"

	versioningValue := "direct (rename duplicates straight to .vN)"
	if m.temporaryVersioning {
		versioningValue = "temporary (two-phase, stable across reruns)"
	}
	content += m.optionRow(0, "Duplicate versioning", versioningValue)

	oplogValue := "disabled"
	if m.operationLog {
		oplogValue = "enabled (one file per apply run)"
	}
	content += m.optionRow(1, "Operation log", oplogValue)

	content += "\n" + setupMutedStyle.Render("Duplicates of an episode are never deleted; they get .v2/.v3 names.") + "\n"
	return content
}

func (m setupModel) optionRow(index int, label, value string) string {
	prefix := "  "
	if m.selectedOption == index {
		prefix = setupCursorStyle.Render("▸ ")
	}
	return fmt.Sprintf("%s%-22s %s\n", prefix, label+":", value)
}

func (m setupModel) renderConfirm() string {
	var content string

	content += setupTitleStyle.Render("Review") + "\n\n"

	content += setupSectionStyle.Render("TheTVDB:") + "\n"
	content += "  API Key:  " + maskAPIKey(m.apiKey)
	if m.tested {
		content += " " + setupOKStyle.Render("✓ verified")
	}
	content += "\n"
	if m.pin != "" {
		content += "  PIN:      " + maskAPIKey(m.pin) + "\n"
	}
	content += "  URL:      " + m.apiURL + "\n"
	content += "  Language: " + m.language + "\n\n"

	content += setupSectionStyle.Render("Naming:") + "\n"
	content += "  Regular: " + m.regularTemplate + "\n"
	content += "  Special: " + m.specialTemplate + "\n\n"

	content += setupSectionStyle.Render("Options:") + "\n"
	versioningValue := "direct"
	if m.temporaryVersioning {
		versioningValue = "temporary"
	}
	content += "  Versioning:    " + versioningValue + "\n"
	content += fmt.Sprintf("  Operation log: %v\n\n", m.operationLog)

	savePrefix := "  "
	if m.selectedOption == 0 {
		savePrefix = setupCursorStyle.Render("▸ ")
	}
	content += savePrefix + "Save configuration\n\n"

	backPrefix := "  "
	if m.selectedOption == 1 {
		backPrefix = setupCursorStyle.Render("▸ ")
	}
	content += backPrefix + "Go back\n"

	return content
}

func (m setupModel) renderComplete() string {
	var content string

	if m.saveErr != "" {
		content += setupErrStyle.Bold(true).Render("✗ Could not save configuration") + "\n\n"
		content += setupErrStyle.Render(m.saveErr) + "\n\n"
	} else {
		path, _ := config.ConfigPath()
		if cfgFile != "" {
			path = cfgFile
		}
		content += setupOKStyle.Bold(true).Render("✓ Configuration saved") + "\n\n"
		content += "File: " + setupMutedStyle.Render(path) + "\n\n"
		content += "Get started:\n\n"
		content += setupSectionStyle.Render("  anirename plan <dir> --series-id <id>") + "   Preview renames\n"
		content += setupSectionStyle.Render("  anirename apply <dir> --series-id <id>") + "  Apply them\n\n"
		content += setupMutedStyle.Render("Series IDs come from thetvdb.com series page URLs.") + "\n\n"
	}

	content += "Press Enter to exit"
	return content
}

func (m setupModel) helpText() string {
	switch m.step {
	case stepWelcome:
		return "Enter: Begin  •  Q/Ctrl+C: Quit"
	case stepAPI:
		return "Tab/↑↓: Switch field  •  Ctrl+T: Test  •  Enter: Continue  •  Esc: Back"
	case stepNaming:
		return "Tab/↑↓: Switch field  •  Enter: Continue  •  Esc: Back"
	case stepOptions:
		return "↑/↓: Select  •  Space: Toggle  •  Enter: Continue  •  Esc: Back"
	case stepConfirm:
		return "↑/↓: Navigate  •  Enter: Confirm  •  Esc: Back"
	case stepComplete:
		return "Enter: Exit"
	default:
		return ""
	}
}
