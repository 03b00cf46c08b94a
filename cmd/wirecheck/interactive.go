package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/redis-codec/casing"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D52B1E")).
			Padding(0, 1)

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#D52B1E"))

	wireStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	collisionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	input    textinput.Model
	names    []string
	rules    []casing.Rule
	tokens   []string
	selected int
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "FieldName"
	ti.Prompt = "name: "
	ti.Width = 40
	ti.Focus()

	tokens := casing.Rules()
	rules := make([]casing.Rule, len(tokens))
	for i, token := range tokens {
		rules[i], _ = casing.ParseRule(token)
	}

	return &interactiveModel{
		input:  ti,
		rules:  rules,
		tokens: tokens,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if v := strings.TrimSpace(m.input.Value()); v != "" {
				m.names = append(m.names, v)
				m.input.SetValue("")
			}
			return m, nil

		case "tab":
			m.selected = (m.selected + 1) % len(m.rules)
			return m, nil

		case "shift+tab":
			m.selected = (m.selected + len(m.rules) - 1) % len(m.rules)
			return m, nil

		case "ctrl+r":
			m.names = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Wire Name Check"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	// live preview of the current input under every rule
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		for i, rule := range m.rules {
			line := fmt.Sprintf("  %-12s %s", m.tokens[i], rule.Apply(v))
			if i == m.selected {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(ruleStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// the session's names under the selected rule, collisions flagged
	if len(m.names) > 0 {
		b.WriteString(fmt.Sprintf("Record under %s:\n\n", ruleStyle.Render(m.tokens[m.selected])))
		rule := m.rules[m.selected]
		seen := make(map[string]string, len(m.names))
		for _, name := range m.names {
			wire := rule.Apply(name)
			line := fmt.Sprintf("  %-24s -> %s", name, wireStyle.Render(wire))
			if first, dup := seen[wire]; dup {
				line += collisionStyle.Render(fmt.Sprintf("  ! collides with %s", first))
			} else {
				seen[wire] = name
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter add field • tab cycle rule • ctrl+r reset • esc quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
