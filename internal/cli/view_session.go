package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/boulderlog/boulderlog/internal/cli/formatter"
	"github.com/boulderlog/boulderlog/internal/domain"
	"github.com/boulderlog/boulderlog/internal/live"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type sessionKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Attempt key.Binding
	Flash   key.Binding
	Send    key.Binding
	Add     key.Binding
	End     key.Binding
	Quit    key.Binding
}

func newSessionKeyMap() sessionKeyMap {
	return sessionKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Attempt: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attempt")),
		Flash:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flash")),
		Send:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "send")),
		Add:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new problem")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k sessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Attempt, k.Flash, k.Send, k.Add, k.End, k.Quit}
}

func (k sessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

type (
	// sessionLoadedMsg carries a direct reload of the session.
	sessionLoadedMsg struct {
		session *domain.Session
		err     error
	}
	// sessionChangedMsg carries a re-evaluation triggered by a store commit.
	sessionChangedMsg struct {
		session *domain.Session
		err     error
	}
	watchClosedMsg struct{}
	actionDoneMsg  struct {
		status string
		err    error
	}
)

// sessionView is the live view of one session. It re-renders whenever the
// sessions, problems or attempts tables change.
type sessionView struct {
	app       *App
	ctx       context.Context
	sessionID string

	session *domain.Session
	updates <-chan live.Result[*domain.Session]
	cursor  int

	keys    sessionKeyMap
	help    help.Model
	spinner spinner.Model

	form       *huh.Form
	formFields *addProblemFields

	status string
	err    error
}

func newSessionView(ctx context.Context, app *App, sessionID string) *sessionView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	v := &sessionView{
		app:       app,
		ctx:       ctx,
		sessionID: sessionID,
		keys:      newSessionKeyMap(),
		help:      help.New(),
		spinner:   sp,
	}
	if app.Hub != nil {
		v.updates = live.Watch(ctx, app.Hub, func(ctx context.Context) (*domain.Session, error) {
			return app.Sessions.Get(ctx, sessionID)
		}, live.Sessions, live.Problems, live.Attempts)
	}
	return v
}

func (v *sessionView) Init() tea.Cmd {
	return tea.Batch(v.spinner.Tick, v.reload(), v.waitForChange())
}

func (v *sessionView) reload() tea.Cmd {
	return func() tea.Msg {
		sess, err := v.app.Sessions.Get(v.ctx, v.sessionID)
		return sessionLoadedMsg{session: sess, err: err}
	}
}

func (v *sessionView) waitForChange() tea.Cmd {
	if v.updates == nil {
		return nil
	}
	updates := v.updates
	return func() tea.Msg {
		res, ok := <-updates
		if !ok {
			return watchClosedMsg{}
		}
		return sessionChangedMsg{session: res.Value, err: res.Err}
	}
}

func (v *sessionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		return v, nil

	case sessionLoadedMsg:
		v.apply(msg.session, msg.err)
		return v, nil

	case sessionChangedMsg:
		v.apply(msg.session, msg.err)
		return v, v.waitForChange()

	case watchClosedMsg:
		v.updates = nil
		return v, nil

	case actionDoneMsg:
		v.status = msg.status
		v.err = msg.err
		return v, v.reload()

	case spinner.TickMsg:
		if v.session != nil {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	if v.form != nil {
		return v.updateForm(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return v.handleKey(keyMsg)
	}
	return v, nil
}

func (v *sessionView) apply(sess *domain.Session, err error) {
	if err != nil {
		v.err = err
		return
	}
	v.session = sess
	if v.cursor >= len(sess.Problems) {
		v.cursor = max(len(sess.Problems)-1, 0)
	}
	v.syncKeys()
}

// syncKeys enables only the actions that make sense for the selected problem
// and the session state. Disabled bindings drop out of the help line.
func (v *sessionView) syncKeys() {
	active := v.session != nil && v.session.IsActive()
	selected := v.selected()

	v.keys.Add.SetEnabled(active)
	v.keys.End.SetEnabled(active)
	v.keys.Attempt.SetEnabled(active && selected != nil)
	v.keys.Flash.SetEnabled(active && selected != nil && selected.CanLog(domain.AttemptTypeFlash))
	v.keys.Send.SetEnabled(active && selected != nil && selected.CanLog(domain.AttemptTypeSend))
}

func (v *sessionView) selected() *domain.SessionProblem {
	if v.session == nil || len(v.session.Problems) == 0 {
		return nil
	}
	return &v.session.Problems[v.cursor]
}

func (v *sessionView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.session != nil && v.cursor < len(v.session.Problems)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Attempt):
		return v, v.logAttempt(domain.AttemptTypeAttempt)
	case key.Matches(msg, v.keys.Flash):
		return v, v.logAttempt(domain.AttemptTypeFlash)
	case key.Matches(msg, v.keys.Send):
		return v, v.logAttempt(domain.AttemptTypeSend)
	case key.Matches(msg, v.keys.Add):
		v.formFields = &addProblemFields{}
		v.form = addProblemForm(v.formFields)
		return v, v.form.Init()
	case key.Matches(msg, v.keys.End):
		return v, v.endSession()
	}
	v.syncKeys()
	return v, nil
}

func (v *sessionView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.form = nil
		v.status = "Cancelled."
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		fields := v.formFields
		v.form, v.formFields = nil, nil
		return v, v.addProblem(fields)
	case huh.StateAborted:
		v.form, v.formFields = nil, nil
		v.status = "Cancelled."
		return v, nil
	}
	return v, cmd
}

func (v *sessionView) logAttempt(typ domain.AttemptType) tea.Cmd {
	p := v.selected()
	if p == nil {
		return nil
	}
	problemID, name := p.ID, p.Name
	return func() tea.Msg {
		updated, err := v.app.Sessions.AddAttempt(v.ctx, v.sessionID, problemID, typ, "")
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Logged %s on %s (%d attempts)", typ, name, len(updated.Attempts))}
	}
}

func (v *sessionView) addProblem(f *addProblemFields) tea.Cmd {
	return func() tea.Msg {
		p, err := v.app.Sessions.AddProblem(v.ctx, v.sessionID, f.name, f.frenchGrade, f.colorGrade)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Added %s (%s)", p.Name, p.GradeLabel())}
	}
}

func (v *sessionView) endSession() tea.Cmd {
	return func() tea.Msg {
		sess, err := v.app.Sessions.EndSession(v.ctx, v.sessionID, "")
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("Session ended after %s", formatter.FormatMinutes(*sess.Duration))}
	}
}

func (v *sessionView) View() string {
	if v.session == nil {
		if v.err != nil {
			return formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
		}
		return v.spinner.View() + " Loading session...\n"
	}

	var b strings.Builder
	st := v.session.Stats()
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		formatter.StyleHeader.Render("SESSION"),
		formatter.SessionStatePill(v.session.IsActive()),
		formatter.TruncID(v.session.ID)))
	b.WriteString(formatter.Dim(fmt.Sprintf("%d problems · %d attempts · %d flashes · %d sends · %d%% success",
		st.UniqueProblems, st.TotalAttempts, st.Flashes, st.Sends, st.SuccessRate)) + "\n\n")

	if len(v.session.Problems) == 0 {
		b.WriteString(formatter.Dim("No problems yet. Press n to add one.") + "\n")
	}
	for i := range v.session.Problems {
		p := &v.session.Problems[i]
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%-24s %-14s %2d  %s\n",
			cursor, formatter.Truncate(p.Name, 24), p.GradeLabel(), len(p.Attempts), formatter.ProblemStatusPill(p.Status())))
	}

	if v.form != nil {
		b.WriteString("\n" + v.form.View() + "\n")
		b.WriteString(formatter.Dim("esc cancel") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	if v.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n")
	} else if v.status != "" {
		b.WriteString(formatter.StyleGreen.Render(v.status) + "\n")
	}
	b.WriteString(v.help.View(v.keys) + "\n")
	return b.String()
}
