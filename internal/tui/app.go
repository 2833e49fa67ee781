// Package tui provides the interactive single-screen Bubble Tea app for spendlog.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/ledger"
	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

type focusArea int

const (
	focusForm focusArea = iota
	focusList
)

// Options configures a new App.
type Options struct {
	Config    config.Config
	Filter    model.Filter
	NeedSetup bool
	Logger    *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	svc *ledger.Service
	log *slog.Logger
	cfg config.Config

	// Data
	st       ledger.State
	loaded   bool
	loadTime time.Duration

	// A storage command is in flight; further mutations wait.
	busy   bool
	err    error
	status string

	// UI state
	width    int
	height   int
	focus    focusArea
	field    int
	inputs   [numFields]textinput.Model
	cursor   int
	showHelp bool

	// Display settings
	currency string
	budget   decimal.Decimal

	// Modal forms (huh)
	confirm   *deleteConfirm
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	compactWidth     = 110
	maxContentWidth  = 160

	leftColumnWidth  = 46
	minContentHeight = 5
)

// NewApp creates a new TUI app model over svc.
func NewApp(svc *ledger.Service, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}

	vals := SetupValuesFrom(opts.Config)

	a := App{
		svc:       svc,
		log:       applog.WithComponent(logger, applog.ComponentTUI),
		cfg:       opts.Config,
		st:        ledger.State{Filter: opts.Filter},
		inputs:    newInputs(),
		currency:  opts.Config.General.Currency,
		budget:    limitOf(opts.Config),
		needSetup: opts.NeedSetup,
		setupVals: &vals,
		spinner:   sp,
	}
	a.focusField(fieldAmount)
	return a
}

func limitOf(cfg config.Config) decimal.Decimal {
	if cfg.Budget.MonthlyLimit == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*cfg.Budget.MonthlyLimit)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(a.svc, a.st),
		a.spinner.Tick,
		textinput.Blink,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// Modal forms intercept all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.confirm != nil {
			return a.updateConfirm(msg)
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if a.focus == focusList {
			if key == "?" {
				a.showHelp = true
				return a, nil
			}
			return a.updateList(msg)
		}
		return a.updateForm(msg)

	case loadedMsg:
		a.loaded = true
		a.loadTime = msg.loadTime
		if msg.err != nil {
			a.err = msg.err
			a.log.Error("initial load failed", applog.FieldError, msg.err)
		} else {
			a.st.Expenses = msg.state.Expenses
			a.log.Debug("expenses loaded", applog.FieldCount, len(a.st.Expenses),
				applog.FieldDuration, msg.loadTime.Milliseconds())
		}
		a.clampCursor()

		if a.needSetup {
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ledgerMsg:
		return a.applyResult(msg)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.confirm != nil {
		return a.updateConfirm(msg)
	}
	if a.focus == focusForm {
		var cmd tea.Cmd
		a.inputs[a.field], cmd = a.inputs[a.field].Update(msg)
		return a, cmd
	}
	return a, nil
}

// applyResult folds a finished storage command into the screen. Only the
// reloaded records are taken from the result. The form is cleared only when
// the command consumed it and the user has not changed it since dispatch.
func (a App) applyResult(msg ledgerMsg) (tea.Model, tea.Cmd) {
	a.busy = false
	if msg.err != nil {
		a.err = msg.err
		a.status = ""
		a.log.Error("command failed", applog.FieldOperation, msg.op, applog.FieldError, msg.err)
		return a, nil
	}

	a.st.Expenses = msg.state.Expenses

	consumed := false
	switch msg.op {
	case opAdd:
		consumed = msg.state.Form.IsZero() && !msg.sent.Form.IsZero()
		if consumed {
			a.status = "expense added"
		}
	case opSave:
		consumed = msg.sent.Editing && !msg.state.Editing
		if consumed {
			a.status = "changes saved"
		}
	case opDelete:
		a.status = "expense deleted"
	}

	if consumed && sameDraft(a.st, msg.sent) {
		a.st.Form = msg.state.Form
		a.st.Editing = msg.state.Editing
		a.st.EditingID = msg.state.EditingID
		a.syncInputs()
	}
	if a.st.Editing {
		if _, ok := a.st.Find(a.st.EditingID); !ok {
			a.st = a.svc.CancelEdit(a.st)
			a.syncInputs()
		}
	}
	a.clampCursor()
	return a, nil
}

// sameDraft reports whether cur still holds the form that sent was
// dispatched with.
func sameDraft(cur, sent ledger.State) bool {
	return cur.Form == sent.Form && cur.Editing == sent.Editing && cur.EditingID == sent.EditingID
}

func (a App) budgetStatus() model.BudgetStatus {
	return pipeline.Budget(a.st.Expenses, a.budget, a.svc.Now())
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.confirm != nil {
		return a.viewConfirm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendlog needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ spendlog"))
	b.WriteString(subtitleStyle.Render(" · Expense Tracker"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading expenses..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Form", []struct{ key, desc string }{
			{"Enter", "Add expense / Save edit"},
			{"Tab ↑ ↓", "Move between fields"},
			{"Esc", "Cancel edit / Go to list"},
		}},
		{"List", []struct{ key, desc string }{
			{"j k", "Move selection"},
			{"e Enter", "Edit selected"},
			{"d", "Delete selected"},
			{"1 2 3", "All / This Week / This Month"},
			{"f ← →", "Cycle filter"},
			{"a Tab", "Back to form"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit (from list)"},
			{"Ctrl+C", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusLine() (string, bool) {
	switch {
	case a.err != nil:
		return "error: " + a.err.Error(), true
	case a.busy:
		return "saving...", false
	default:
		return a.status, false
	}
}

func (a App) hints() string {
	if a.focus == focusForm {
		return "[enter]save  [tab]next  [esc]list  [ctrl+c]quit"
	}
	return "[?]help  [e]dit  [d]elete  [1-3]filter  [a]dd  [q]uit"
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: app title + filter selector
	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true).
		Width(w)
	header := titleStyle.Render(" ◈ spendlog") + "\n" + components.RenderFilterBar(a.st.Filter, w)

	// 2. Status bar
	msg, isErr := a.statusLine()
	statusBar := components.RenderStatusBar(w, a.hints(), msg, isErr)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Body
	var content string
	if a.isCompactLayout() {
		top := lipgloss.JoinVertical(lipgloss.Left, a.renderForm(cw), a.renderSummary(cw))
		listH := contentH - lipgloss.Height(top)
		content = lipgloss.JoinVertical(lipgloss.Left, top, a.renderList(cw, listH))
	} else {
		left := lipgloss.JoinVertical(lipgloss.Left,
			a.renderForm(leftColumnWidth),
			a.renderSummary(leftColumnWidth),
			a.renderCategories(leftColumnWidth))
		right := a.renderList(cw-leftColumnWidth, contentH)
		content = components.CardRow([]string{left, right})
	}

	// 5. Truncate + pad to exactly contentH lines, fill background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
