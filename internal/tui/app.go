package tui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/ghlookup/internal/directory"
	"github.com/Iron-Ham/ghlookup/internal/tui/countdown"
	"github.com/Iron-Ham/ghlookup/internal/tui/msg"
	"github.com/Iron-Ham/ghlookup/internal/tui/styles"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
}

// New creates a new TUI application backed by dir.
func New(dir directory.Directory, opts Options, programOpts ...tea.ProgramOption) *App {
	model := NewModel(dir, opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	return &App{
		model:   model,
		program: tea.NewProgram(model, programOpts...),
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	// Quit cleanly on termination signals so the window title is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(quitMsg{})
		}
	}()

	_, err := a.program.Run()

	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// Send delivers msg to the running program. It blocks until the program
// reads it, so call it from outside the event loop.
func (a *App) Send(m tea.Msg) {
	a.program.Send(m)
}

// quitMsg asks the shell to quit the same way the quit key does.
type quitMsg struct{}

// Init issues the initial search for the default term.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.applyLayout()
		return m, nil

	case quitMsg:
		return m.quit()

	case msg.SubmitMsg:
		return m.commitTerm(message.Value)

	case msg.UserSelectedMsg:
		return m.selectUser(message.User)

	case msg.SearchResultMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(message)
		return m, cmd

	case msg.ProfileResultMsg, countdown.TickMsg, countdown.ChangedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(message)
		return m, cmd

	case msg.ConfigReloadedMsg:
		if message.Theme != "" && message.Theme != string(styles.ActiveName()) {
			styles.SetActiveTheme(styles.ThemeName(message.Theme))
			m.logger.Info("theme reloaded", "theme", message.Theme)
		}
		return m, nil
	}

	// Cursor blink and other input housekeeping.
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(message)
	return m, cmd
}

// commitTerm makes value the committed term and searches for it. Every
// submission searches, even when the term is unchanged, so submitting the
// same query again refreshes the list.
func (m Model) commitTerm(value string) (tea.Model, tea.Cmd) {
	m.term = value
	m.search = m.search.SetCommitted(value)

	var cmd tea.Cmd
	m.results, cmd = m.results.SetTerm(value)
	m.logger.Info("query submitted", "term", value)
	return m, cmd
}

// reset restores the default term and searches for it. The selection and
// the detail card are left as they are.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.logger.Info("query reset", "term", defaultTerm)
	return m.commitTerm(defaultTerm)
}

// selectUser records u as the selection, highlights it, loads its detail
// card and sets the window title to its login.
func (m Model) selectUser(u directory.SearchUser) (tea.Model, tea.Cmd) {
	m.selection = &u
	m.results = m.results.SetSelected(u.ID, true)
	m.title = u.Login

	var cmd tea.Cmd
	m.detail, cmd = m.detail.SetSelection(&u)
	m.logger.Info("user selected", "login", u.Login, "id", u.ID)
	return m, tea.Batch(cmd, tea.SetWindowTitle(u.Login))
}

// quit restores the application title and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.title = AppTitle
	return m, tea.Sequence(tea.SetWindowTitle(AppTitle), tea.Quit)
}

func (m *Model) applyLayout() {
	l := CalculateLayout(m.width, m.height)

	searchInner, _ := Inner(l.SearchWidth, SearchHeight)
	m.search = m.search.SetWidth(searchInner)

	listW, listH := Inner(l.ListWidth, l.MainHeight)
	m.results = m.results.SetSize(listW, listH)

	detailW, _ := Inner(l.DetailWidth, l.MainHeight)
	m.detail = m.detail.SetWidth(detailW)
}
