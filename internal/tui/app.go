package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/adivina/internal/assets"
	"github.com/jeanpaul/adivina/internal/engine"
	"github.com/jeanpaul/adivina/internal/knowledge"
	"github.com/jeanpaul/adivina/internal/session"
)

// Model is the bubbletea front end of a game session. It forwards key
// presses to the controller as events and renders whatever state the
// controller is in.
type Model struct {
	ctrl   *session.Controller
	finder *assets.Finder
	keys   KeyMap
	help   help.Model

	options OptionsModel
	endMenu EndMenuModel
	name    textinput.Model

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

func NewModel(ctrl *session.Controller, finder *assets.Finder) Model {
	ti := textinput.New()
	ti.Placeholder = "Nombre del Warframe..."
	ti.CharLimit = 64
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(White)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(DimGreen)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(DarkGreen)
	h.Styles.ShortDesc = HelpStyle
	h.Styles.ShortSeparator = HelpStyle

	m := Model{
		ctrl:    ctrl,
		finder:  finder,
		keys:    DefaultKeyMap(),
		help:    h,
		name:    ti,
		endMenu: NewEndMenuModel(40),
		width:   80,
	}
	m.syncOptions()
	return m
}

// WithStatus starts the model with a message in the status line, e.g. a
// knowledge base that failed to load.
func (m Model) WithStatus(msg string, isErr bool) Model {
	m.status = msg
	m.statusErr = isErr
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.options.SetWidth(listWidth(msg.Width))
		m.name.Width = listWidth(msg.Width) - 4
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Force) {
			return m.quit()
		}

		switch m.ctrl.State() {
		case session.AskingQuestions:
			return m.updateQuestion(msg)
		case session.Confirming:
			return m.updateConfirm(msg)
		case session.AwaitingEntityName:
			return m.updateName(msg)
		case session.Resolved:
			return m.updateResolved(msg)
		}
	}
	return m, nil
}

func (m Model) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Pick):
		n := int(msg.String()[0] - '0')
		opt, ok := m.options.At(n - 1)
		if !ok {
			m.setStatus(fmt.Sprintf("No hay opción %d.", n), true)
			return m, nil
		}
		return m.selectOption(opt)

	case key.Matches(msg, m.keys.Select):
		opt, ok := m.options.Selected()
		if !ok {
			return m, nil
		}
		return m.selectOption(opt)
	}

	var cmd tea.Cmd
	m.options, cmd = m.options.Update(msg)
	return m, cmd
}

func (m Model) selectOption(opt string) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectOption(opt); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.clearStatus()
	if m.ctrl.State() == session.AskingQuestions {
		m.syncOptions()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		if err := m.ctrl.Confirm(true); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.endMenu = NewEndMenuModel(listWidth(m.width))
		return m, nil

	case key.Matches(msg, m.keys.No):
		if err := m.ctrl.Confirm(false); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.name.Reset()
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m.quit()
	}
	if !key.Matches(msg, m.keys.Submit) {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	err := m.ctrl.SubmitName(m.name.Value())
	switch {
	case errors.Is(err, engine.ErrEmptyName):
		m.setStatus("Escribe un nombre.", false)
		return m, nil
	case knowledge.IsPersistenceError(err):
		// The entity stays learned for this run; the user may retry the save.
		m.setStatus(err.Error(), true)
		return m, nil
	case err != nil:
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.clearStatus()
	m.name.Blur()
	m.endMenu = NewEndMenuModel(listWidth(m.width))
	return m, nil
}

func (m Model) updateResolved(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		return m.restart()
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Select):
		if m.endMenu.SelectedAction() == actionQuit {
			return m.quit()
		}
		return m.restart()
	}

	var cmd tea.Cmd
	m.endMenu, cmd = m.endMenu.Update(msg)
	return m, cmd
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Restart(); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.clearStatus()
	m.syncOptions()
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.ctrl.State() == session.Resolved {
		_ = m.ctrl.Quit()
	}
	m.quitting = true
	return m, tea.Quit
}

// syncOptions rebuilds the picker for the controller's current question.
func (m *Model) syncOptions() {
	q := m.ctrl.Question()
	m.options = NewOptionsModel(q.Name, q.Options, listWidth(m.width))
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func listWidth(w int) int {
	if w <= 0 || w > 60 {
		return 60
	}
	return w
}

func (m Model) View() string {
	if m.quitting {
		return HelpStyle.Render("¡Hasta la próxima, Tenno!") + "\n"
	}

	var body string
	var keys contextKeys
	switch m.ctrl.State() {
	case session.AskingQuestions:
		body = m.viewQuestion()
		keys = contextKeys{m.keys.Up, m.keys.Down, m.keys.Pick, m.keys.Select, m.keys.Quit}
	case session.Confirming:
		body = m.viewPrediction()
		keys = contextKeys{m.keys.Yes, m.keys.No, m.keys.Quit}
	case session.AwaitingEntityName:
		body = m.viewName()
		keys = contextKeys{m.keys.Submit, m.keys.Force}
	case session.Resolved:
		body = m.viewOutcome()
		keys = contextKeys{m.keys.Restart, m.keys.Quit, m.keys.Select}
	}

	parts := []string{
		GradientBanner(),
		m.statusBar(),
		separator(listWidth(m.width)),
		body,
	}
	if m.status != "" {
		style := WarningStyle
		if m.statusErr {
			style = ErrorStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusBar() string {
	id := m.ctrl.SessionID()
	if len(id) > 8 {
		id = id[:8]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		StatusBarStyle.Render("SESIÓN "+id),
		StatusKnowledgeStyle.Render(fmt.Sprintf("%d WARFRAMES", len(m.ctrl.Base()))),
	)
}

func (m Model) viewQuestion() string {
	done := m.ctrl.Index()
	total := m.ctrl.Total()
	progress := ProgressStyle.Render(fmt.Sprintf("Pregunta %d/%d %s", done+1, total, makeBar(done, total, 20)))
	return lipgloss.JoinVertical(lipgloss.Left, progress, "", m.options.View())
}

func (m Model) viewPrediction() string {
	pred := m.ctrl.Prediction()
	lines := []string{
		QuestionStyle.Render("¿Estás pensando en...?"),
		predictionBox(pred, 36),
	}
	if path, ok := m.finder.Lookup(pred); ok {
		lines = append(lines, AssetStyle.Render("imagen: "+path))
	}
	lines = append(lines, ConfirmStyle.Render("¿Es correcto? (s/n)"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewName() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		WarningStyle.Render("No acerté. ¿En qué Warframe estabas pensando?"),
		InputBoxStyle.Render(m.name.View()),
	)
}

func (m Model) viewOutcome() string {
	var msg string
	switch m.ctrl.Outcome() {
	case session.OutcomeCorrect:
		msg = SuccessStyle.Render("¡Genial! Adiviné correctamente.")
	case session.OutcomeLearned:
		msg = SuccessStyle.Render(fmt.Sprintf("¡He aprendido sobre %s!", knowledge.DisplayName(m.ctrl.LearnedName())))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, msg, "", answersSummary(m.ctrl.Answers()))
	return joinColumns(left, m.endMenu.View())
}

// answersSummary lists the answers of the round, one per line.
func answersSummary(a engine.Answers) string {
	var b strings.Builder
	for _, k := range a.Attributes() {
		if v := a[k]; v != "" {
			b.WriteString(LabelStyle.Render(k+": ") + v + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
