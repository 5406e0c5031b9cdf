// Package tui is the terminal front end of the students client.
//
// The App never changes the collection itself. Every remote operation runs
// in a tea.Cmd through the collection controller or one of the workflows,
// and the App re-reads their state when the resulting message arrives.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/student-manager/internal/collection"
	"github.com/aanand-mishra/student-manager/internal/creation"
	"github.com/aanand-mishra/student-manager/internal/deletion"
	"github.com/aanand-mishra/student-manager/internal/feedback"
	"github.com/aanand-mishra/student-manager/internal/panel"
	"github.com/aanand-mishra/student-manager/internal/types"
)

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 50

// maxToasts bounds how many feedback messages stay on screen.
const maxToasts = 4

// toastTTL is how long a feedback message stays on screen.
const toastTTL = 4500 * time.Millisecond

// Deps are the collaborators the App drives.
type Deps struct {
	Students *collection.Controller
	Create   *creation.Workflow
	Delete   *deletion.Workflow
	// Feedback is the queue the controller and workflows notify.
	Feedback *feedback.Queue
	// Drawer is the creation form's visibility, shared with Create.
	Drawer *panel.Visibility
	// Sider is the side menu; open means expanded.
	Sider    *panel.Visibility
	PageSize int
}

// App is the bubbletea model.
type App struct {
	ctx  context.Context
	deps Deps

	page    int
	cursor  int
	form    form
	confirm *deletion.Confirmation
	target  types.Student
	toasts  []feedback.Message
	settled bool
	width   int
}

// New creates the App. Nil panels are replaced with fresh ones.
func New(ctx context.Context, deps Deps) *App {
	if deps.Drawer == nil {
		deps.Drawer = panel.New(false)
	}
	if deps.Sider == nil {
		deps.Sider = panel.New(true)
	}
	if deps.PageSize <= 0 {
		deps.PageSize = DefaultPageSize
	}
	return &App{
		ctx:  ctx,
		deps: deps,
		form: newForm(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.refreshCmd()
}

// messages
type refreshedMsg struct{ err error }

type createdMsg struct{ err error }

type deletedMsg struct{ err error }

// toastExpiredMsg removes the feedback message with the given id.
type toastExpiredMsg struct{ id string }

// commands
func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: a.deps.Students.Refresh(a.ctx)}
	}
}

func (a *App) submitCmd(draft types.Draft) tea.Cmd {
	return func() tea.Msg {
		return createdMsg{err: a.deps.Create.Submit(a.ctx, draft)}
	}
}

func (a *App) deleteCmd(c *deletion.Confirmation) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: c.Yes(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if m.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.confirm != nil {
			return a.handleConfirmKey(m)
		}
		if a.deps.Drawer.IsOpen() {
			return a.handleFormKey(m)
		}
		return a.handleTableKey(m)
	case refreshedMsg:
		a.settled = true
		a.clampCursor()
		return a, a.collectToasts()
	case createdMsg:
		if errors.Is(m.err, creation.ErrBusy) {
			return a, nil
		}
		if m.err == nil {
			a.form = newForm()
		}
		a.settled = true
		a.clampCursor()
		return a, a.collectToasts()
	case deletedMsg:
		a.clampCursor()
		return a, a.collectToasts()
	case toastExpiredMsg:
		a.dropToast(m.id)
	}
	return a, nil
}

func (a *App) handleTableKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	students := a.visible()
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "a":
		a.form = newForm()
		a.deps.Drawer.Open()
	case "r":
		return a, a.refreshCmd()
	case "[":
		a.deps.Sider.Toggle()
	case "c":
		a.toasts = nil
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(students)-1 {
			a.cursor++
		}
	case "left", "h":
		if a.page > 0 {
			a.page--
			a.cursor = 0
		}
	case "right", "l":
		if a.page < PageCount(a.deps.Students.Len(), a.deps.PageSize)-1 {
			a.page++
			a.cursor = 0
		}
	case "x", "delete":
		if len(students) > 0 {
			a.target = students[a.cursor]
			a.confirm = a.deps.Delete.Request(a.target.ID)
		}
	}
	return a, nil
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := a.confirm
	switch m.String() {
	case "y", "enter":
		a.confirm = nil
		return a, a.deleteCmd(c)
	case "n", "esc":
		c.No()
		a.confirm = nil
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.deps.Create.Cancel()
		a.form = newForm()
		return a, nil
	case tea.KeyEnter:
		if a.deps.Create.Submitting() {
			return a, nil
		}
		if !a.form.validate() {
			return a, nil
		}
		draft := a.form.draft()
		a.deps.Create.SetDraft(draft)
		return a, a.submitCmd(draft)
	}
	a.form.handleKey(m)
	a.deps.Create.SetDraft(a.form.draft())
	return a, nil
}

// visible is the current page of the collection.
func (a *App) visible() []types.Student {
	return PageOf(a.deps.Students.Students(), a.page, a.deps.PageSize)
}

func (a *App) clampCursor() {
	pages := PageCount(a.deps.Students.Len(), a.deps.PageSize)
	if a.page >= pages {
		a.page = pages - 1
	}
	if n := len(a.visible()); a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
}

// collectToasts moves pending feedback on screen and schedules the removal
// of each new message after toastTTL.
func (a *App) collectToasts() tea.Cmd {
	fresh := a.deps.Feedback.Drain()
	if len(fresh) == 0 {
		return nil
	}

	a.toasts = append(a.toasts, fresh...)
	if len(a.toasts) > maxToasts {
		a.toasts = a.toasts[len(a.toasts)-maxToasts:]
	}

	cmds := make([]tea.Cmd, 0, len(fresh))
	for _, msg := range fresh {
		id := msg.ID
		cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (a *App) dropToast(id string) {
	for i, t := range a.toasts {
		if t.ID == id {
			a.toasts = append(a.toasts[:i], a.toasts[i+1:]...)
			return
		}
	}
}

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Padding(0, 1)
	tagStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	avatarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")).Width(4).Align(lipgloss.Center)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	siderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")).Padding(0, 1)
	drawerStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorText     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Faint(true)

	toastStyles = map[feedback.Kind]lipgloss.Style{
		feedback.KindSuccess: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("10")),
		feedback.KindError:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("9")),
		feedback.KindInfo:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")),
		feedback.KindWarning: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("11")),
	}
)

var menu = []string{"Option 1", "Option 2", "User", "Team", "Files"}

func (a *App) View() string {
	top, bottom := a.renderToasts()

	var body strings.Builder
	body.WriteString(titleStyle.Render("Students"))
	body.WriteString("\n")
	if top != "" {
		body.WriteString(top + "\n")
	}
	body.WriteString(a.renderStudents())
	if a.deps.Drawer.IsOpen() {
		body.WriteString("\n\n" + a.renderDrawer())
	}
	if a.confirm != nil {
		body.WriteString("\n\n" + a.renderConfirm())
	}
	if bottom != "" {
		body.WriteString("\n" + bottom)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, a.renderSider(), " ", body.String())
}

func (a *App) renderSider() string {
	expanded := a.deps.Sider.IsOpen()
	lines := make([]string, 0, len(menu)+1)
	for _, item := range menu {
		if expanded {
			lines = append(lines, item)
		} else {
			lines = append(lines, item[:1])
		}
	}
	toggle := "«"
	if !expanded {
		toggle = "»"
	}
	lines = append(lines, "", toggle)
	return siderStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderStudents() string {
	snap := a.deps.Students.Snapshot()
	if snap.Fetching || !a.settled {
		return "⠋ Loading students..."
	}

	if len(snap.Students) == 0 {
		return "[a] Add New Student\n\nNo data\n" + helpStyle.Render("[r] Refresh  [[] Menu  [q] Quit")
	}

	var out strings.Builder
	out.WriteString(tagStyle.Render("Number of students") + " " + badgeStyle.Render(fmt.Sprint(len(snap.Students))))
	out.WriteString("\n[a] Add New Student\n\n")
	out.WriteString(headerStyle.Render(fmt.Sprintf("%-4s  %-6s  %-24s  %-28s  %-6s", "", "Id", "Name", "Email", "Gender")))
	out.WriteString("\n")

	for i, s := range PageOf(snap.Students, a.page, a.deps.PageSize) {
		avatar := Initials(s.Name)
		if avatar == "" {
			avatar = "@"
		}
		row := fmt.Sprintf("%s  %-6d  %-24s  %-28s  %-6s", avatarStyle.Render(avatar), s.ID, s.Name, s.Email, s.Gender)
		if i == a.cursor {
			row = selectedStyle.Render(row)
		}
		out.WriteString(row + "\n")
	}

	pages := PageCount(len(snap.Students), a.deps.PageSize)
	if pages > 1 {
		out.WriteString(fmt.Sprintf("Page %d of %d\n", a.page+1, pages))
	}
	out.WriteString(helpStyle.Render("[x] Delete  [r] Refresh  [←/→] Page  [[] Menu  [c] Clear  [q] Quit"))
	return out.String()
}

func (a *App) renderDrawer() string {
	f := a.form
	fields := []struct {
		field formField
		label string
		value string
	}{
		{fieldName, "Name", f.name},
		{fieldEmail, "Email", f.email},
		{fieldGender, "Gender", f.genderLabel()},
	}

	var out strings.Builder
	out.WriteString(headerStyle.Render("Create new student") + "\n\n")
	for _, fl := range fields {
		marker := " "
		if f.focus == fl.field {
			marker = "▶"
		}
		out.WriteString(fmt.Sprintf("%s %-7s %s\n", marker, fl.label+":", fl.value))
		if msg, ok := f.errors[fl.field]; ok {
			out.WriteString("          " + errorText.Render(msg) + "\n")
		}
	}
	out.WriteString("\n")
	if a.deps.Create.Submitting() {
		out.WriteString("⠋ Submitting...")
	} else {
		out.WriteString(helpStyle.Render("[tab] Next  [←/→] Gender  [enter] Submit  [esc] Cancel"))
	}
	return drawerStyle.Render(out.String())
}

func (a *App) renderConfirm() string {
	return fmt.Sprintf("Are you sure to delete %s?  [y] Yes  [n] No", a.target.Name)
}

// renderToasts splits the on-screen messages by placement.
func (a *App) renderToasts() (top, bottom string) {
	var tops, bottoms []string
	for _, t := range a.toasts {
		style, ok := toastStyles[t.Kind]
		if !ok {
			style = toastStyles[feedback.KindInfo]
		}
		box := style.Render(headerStyle.Render(t.Title) + "\n" + t.Description)
		if a.width > 0 && (t.Placement == feedback.TopRight || t.Placement == feedback.BottomRight) {
			box = lipgloss.PlaceHorizontal(a.width, lipgloss.Right, box)
		}
		switch t.Placement {
		case feedback.BottomLeft, feedback.BottomRight:
			bottoms = append(bottoms, box)
		default:
			tops = append(tops, box)
		}
	}
	return strings.Join(tops, "\n"), strings.Join(bottoms, "\n")
}
