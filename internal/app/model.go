package app

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/chousei/internal/clipboard"
	"github.com/treykane/chousei/internal/composer"
	"github.com/treykane/chousei/internal/config"
)

// focusPane identifies which pane receives key presses.
type focusPane int

const (
	focusCalendar focusPane = iota
	focusTimes
	focusDraft
)

// paneCount is the number of focusable panes, used for cycling.
const paneCount = 3

func (p focusPane) String() string {
	switch p {
	case focusCalendar:
		return "calendar"
	case focusTimes:
		return "times"
	case focusDraft:
		return "draft"
	default:
		return "unknown"
	}
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	// Composer session
	state  composer.State
	tables composer.DecorationTables

	// Calendar pane
	today          time.Time
	calendarCursor time.Time

	// Time pane
	timeSlots    []time.Time
	timeCursor   int
	timeOffset   int
	timeInput    textinput.Model
	enteringTime bool

	// Draft pane. editorAttached turns true once the editor has been laid out
	// and can report a cursor; until then time picks only record the slot.
	editor                textarea.Model
	editorAttached        bool
	editorSelectionAnchor int
	editorSelectionActive bool

	// Edit history
	draftUndo              []draftSnapshot
	draftRedo              []draftSnapshot
	typingBurstActive      bool
	typingBurstLastInputAt time.Time

	// Slack preview
	preview viewport.Model

	// Clipboard export
	exporter        *clipboard.Exporter
	probe           clipboard.Probe
	exportsInFlight int
	spinner         spinner.Model

	// UI state
	focus         focusPane
	showHelp      bool
	status        string
	toast         string
	toastSeverity clipboard.Severity
	toastUntil    time.Time
	toastSeq      int
	debugInput    bool

	// Keybindings
	keyForAction map[string][]string
	keyToAction  map[string]string

	// Layout sizing
	width  int
	height int

	now func() time.Time
}

// Option customizes a Model at construction time.
type Option func(*Model)

// WithExporter replaces the clipboard exporter.
func WithExporter(exporter *clipboard.Exporter) Option {
	return func(m *Model) { m.exporter = exporter }
}

// WithProbe replaces the platform capability probe.
func WithProbe(probe clipboard.Probe) Option {
	return func(m *Model) { m.probe = probe }
}

// WithClock sets the time source used for "today" and toast expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New prepares the initial UI model from cfg.
func New(cfg config.Config, opts ...Option) (*Model, error) {
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	input := textinput.New()
	input.Placeholder = "09:00"
	input.CharLimit = TimeInputCharLimit

	editor := textarea.New()
	editor.Placeholder = "日付と時間を選んでください"
	editor.CharLimit = 0
	applyEditorTheme(&editor)

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		state:                 composer.New(cfg.Preamble),
		tables:                cfg.DecorationTables(),
		timeSlots:             buildTimeSlots(cfg.TimeIntervalMinutes),
		timeInput:             input,
		editor:                editor,
		editorSelectionAnchor: noEditorSelectionAnchor,
		preview:               viewport.New(0, 0),
		spinner:               spin,
		focus:                 focusCalendar,
		status:                "Ready",
		debugInput:            os.Getenv("CHOUSEI_DEBUG_INPUT") != "",
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.exporter == nil {
		m.exporter = clipboard.NewExporter(clipboard.WithFallbackCommand(cfg.FallbackCommand))
	}
	if m.probe == nil {
		m.probe = clipboard.NewEnvironmentProbe(cfg.RestrictedMarkers)
	}

	m.today = m.now()
	m.calendarCursor = m.today
	m.timeCursor = defaultTimeCursor(m.timeSlots)
	m.loadKeybindings(cfg)
	m.syncEditorFromState()
	return m, nil
}

// State returns the current composer session.
func (m *Model) State() composer.State {
	return m.state
}

// Init starts the spinner so export progress can be shown.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case cursorUpdateMsg:
		return m.handleCursorUpdate(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case toastExpiredMsg:
		return m.handleToastExpired(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusDraft {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}
