package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/evosim/internal/sim"
)

// Wizard styles
var (
	wizardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	wizardHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wizardAnswerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wizardErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// maxWizardLog is how many answered questions stay visible.
const maxWizardLog = 8

// WizardModel is the Bubble Tea model for the manual setup flow.
type WizardModel struct {
	wizard    *Wizard
	input     textinput.Model
	answered  []string
	lastErr   error
	config    *sim.Config
	cancelled bool
}

// NewWizardModel creates a wizard model with a focused text input.
func NewWizardModel() WizardModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()

	return WizardModel{
		wizard: NewWizard(),
		input:  ti,
	}
}

// Init starts the cursor blink.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the wizard.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the typed answer to the wizard and finishes once it is complete.
func (m WizardModel) submit() (tea.Model, tea.Cmd) {
	prompt := m.wizard.Prompt()
	value := m.input.Value()

	if err := m.wizard.Submit(value); err != nil {
		m.lastErr = err
		m.input.Reset()
		return m, nil
	}
	m.lastErr = nil
	m.input.Reset()
	m.answered = append(m.answered, prompt+" "+strings.TrimSpace(value))

	if !m.wizard.Done() {
		return m, nil
	}
	cfg, err := m.wizard.Config()
	if err != nil {
		m.lastErr = err
		return m, nil
	}
	m.config = &cfg
	return m, tea.Quit
}

// View renders the wizard.
func (m WizardModel) View() string {
	if m.cancelled || m.config != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(wizardTitleStyle.Render("Evolution Simulator - manual setup"))
	b.WriteString("\n\n")

	start := max(len(m.answered)-maxWizardLog, 0)
	for _, line := range m.answered[start:] {
		b.WriteString(wizardAnswerStyle.Render(line))
		b.WriteString("\n")
	}
	if len(m.answered) > 0 {
		b.WriteString("\n")
	}

	for _, hint := range m.wizard.Hints() {
		b.WriteString(wizardHintStyle.Render(hint))
		b.WriteString("\n")
	}
	b.WriteString(m.wizard.Prompt())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(wizardErrorStyle.Render(m.lastErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(wizardHintStyle.Render("enter: confirm  esc: cancel"))
	return b.String()
}

// Config returns the collected configuration, or nil if the wizard was cancelled.
func (m WizardModel) Config() *sim.Config {
	return m.config
}

// IsCancelled returns true if the user left the wizard.
func (m WizardModel) IsCancelled() bool {
	return m.cancelled
}

// RunWizard runs the setup wizard. It returns nil when the user cancels.
func RunWizard() (*sim.Config, error) {
	p := tea.NewProgram(NewWizardModel())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(WizardModel)
	if !ok {
		return nil, nil
	}
	return m.Config(), nil
}
