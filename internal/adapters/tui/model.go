// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/daybook/internal/actions"
	"github.com/xvierd/daybook/internal/adapters/calendar"
	"github.com/xvierd/daybook/internal/config"
	"github.com/xvierd/daybook/internal/domain"
	"github.com/xvierd/daybook/internal/hints"
	"github.com/xvierd/daybook/internal/ports"
	"github.com/xvierd/daybook/internal/session"
)

// inputMode says what the text prompt is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputCreate
	inputEdit
	inputFilter
)

// calendarMsg delivers asynchronously fetched calendar events.
type calendarMsg struct {
	store *calendar.Store
}

// Model is the journal TUI state. The session carries everything the
// views share; the model adds presentation-only state on top.
type Model struct {
	session  *session.Session
	executor *actions.Executor
	cfg      *config.Config

	width  int
	height int

	input     textinput.Model
	inputMode inputMode
	// createAt is the line index a committed create inserts at.
	createAt   int
	createKind domain.EntryKind
	editTarget domain.EntryLocation
	editOrig   string

	hint *hints.Hints
	// knownTags feeds tag autocompletion; refreshed on every prompt open.
	knownTags []string

	// dayInfo backs the week strip markers.
	dayInfo map[time.Time]ports.DayInfo

	events      *calendar.Store
	fetchEvents func() *calendar.Store

	// lastQuery lets tab jump back to the previous filter from the
	// daily view.
	lastQuery string

	showHelp bool
}

// NewModel creates the TUI model over an open session.
func NewModel(s *session.Session, cfg *config.Config) Model {
	input := textinput.New()
	input.CharLimit = 0
	input.Width = 60

	m := Model{
		session:  s,
		executor: actions.NewExecutor(),
		cfg:      cfg,
		input:    input,
	}
	m.refreshDayInfo()
	return m
}

// SetCalendarFetch installs the calendar loader, run once at startup.
func (m *Model) SetCalendarFetch(fetch func() *calendar.Store) {
	m.fetchEvents = fetch
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	if m.fetchEvents == nil {
		return nil
	}
	fetch := m.fetchEvents
	return func() tea.Msg {
		return calendarMsg{store: fetch()}
	}
}

// refreshDayInfo rescans the week around the open day for the strip.
func (m *Model) refreshDayInfo() {
	start, end := weekBounds(m.session.CurrentDate)
	info, err := m.session.Store.ScanDayRange(start, end)
	if err != nil {
		return
	}
	m.dayInfo = info
}

// weekBounds returns the Monday and Sunday around date.
func weekBounds(date time.Time) (time.Time, time.Time) {
	offset := (int(date.Weekday()) + 6) % 7
	start := date.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// selectedEntry resolves the cursor, skipping hidden entries.
func (m *Model) selectedEntry() (session.Selected, bool) {
	return m.session.SelectedEntry()
}

// status routes an action result to the status line.
func (m *Model) status(msg string, err error) {
	if err != nil {
		m.session.SetStatus(err.Error())
		return
	}
	m.session.SetStatus(msg)
}
