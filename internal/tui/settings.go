package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// EndMenuModel is offered once a round is resolved: play again or quit.
type EndMenuModel struct {
	list list.Model
}

type endItem struct {
	title  string
	action string
}

func (i endItem) Title() string       { return i.title }
func (i endItem) Description() string { return "" }
func (i endItem) FilterValue() string { return i.title }

const (
	actionRestart = "restart"
	actionQuit    = "quit"
)

func NewEndMenuModel(width int) EndMenuModel {
	items := []list.Item{
		endItem{title: "JUGAR DE NUEVO", action: actionRestart},
		endItem{title: "SALIR", action: actionQuit},
	}
	return EndMenuModel{list: newList("¿Otra ronda?", items, width)}
}

func (m EndMenuModel) Init() tea.Cmd {
	return nil
}

func (m EndMenuModel) Update(msg tea.Msg) (EndMenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SelectedAction returns actionRestart or actionQuit.
func (m EndMenuModel) SelectedAction() string {
	if it, ok := m.list.SelectedItem().(endItem); ok {
		return it.action
	}
	return actionRestart
}

func (m EndMenuModel) View() string {
	return m.list.View()
}
