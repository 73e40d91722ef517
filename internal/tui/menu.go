package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/adivina/internal/knowledge"
)

type item struct {
	title, value string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return i.value }

// OptionsModel is the picker for the options of one question.
type OptionsModel struct {
	list      list.Model
	attribute string
}

func newDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	d.Styles.NormalTitle = lipgloss.NewStyle().Foreground(Yellow).PaddingLeft(2)
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Accent).Bold(true).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Accent).PaddingLeft(1)
	return d
}

func newList(title string, items []list.Item, width int) list.Model {
	if width <= 0 {
		width = 40
	}
	l := list.New(items, newDelegate(), width, len(items)+4)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(len(items) > 9)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	l.Styles.TitleBar = lipgloss.NewStyle()
	return l
}

// NewOptionsModel lists options numbered and upper-cased, as the game shows them.
func NewOptionsModel(attribute string, options []string, width int) OptionsModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = item{title: fmt.Sprintf("%d. %s", i+1, strings.ToUpper(o)), value: o}
	}
	return OptionsModel{
		list:      newList(knowledge.DisplayName(attribute)+":", items, width),
		attribute: attribute,
	}
}

func (m OptionsModel) Init() tea.Cmd {
	return nil
}

func (m OptionsModel) Update(msg tea.Msg) (OptionsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected returns the highlighted option value.
func (m OptionsModel) Selected() (string, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return "", false
	}
	return it.value, true
}

// At returns the option at a zero-based position.
func (m OptionsModel) At(i int) (string, bool) {
	items := m.list.Items()
	if i < 0 || i >= len(items) {
		return "", false
	}
	return items[i].(item).value, true
}

func (m *OptionsModel) SetWidth(w int) {
	m.list.SetWidth(w)
}

func (m OptionsModel) View() string {
	return m.list.View()
}
