package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arcadekit/engine/internal/storage"
)

const maxRecordingsListed = 100

// RecordingsKeyMap defines the key bindings for the recordings browser.
type RecordingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Play},
		{k.Delete, k.Quit},
	}
}

// DefaultRecordingsKeyMap returns default key bindings.
func DefaultRecordingsKeyMap() RecordingsKeyMap {
	return RecordingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var recordingsTitleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

// RecordingsModel is the Bubble Tea model for browsing stored recordings.
type RecordingsModel struct {
	store    *storage.Store
	gameID   string
	entries  []storage.RecordingEntry
	table    table.Model
	help     help.Model
	keys     RecordingsKeyMap
	selected int64 // Recording chosen for replay, 0 if none
	quitting bool
	err      error
}

// NewRecordingsModel creates a recordings browser. An empty gameID lists
// recordings for all games.
func NewRecordingsModel(store *storage.Store, gameID string) *RecordingsModel {
	m := RecordingsModel{
		store:  store,
		gameID: gameID,
		keys:   DefaultRecordingsKeyMap(),
		help:   help.New(),
	}
	m.reload()
	return &m
}

func (m *RecordingsModel) reload() {
	entries, err := m.store.ListRecordings(m.gameID, maxRecordingsListed)
	if err != nil {
		m.err = err
		return
	}
	m.entries = entries

	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Game", Width: 10},
		{Title: "Frames", Width: 8},
		{Title: "Duration", Width: 10},
		{Title: "FPS", Width: 5},
		{Title: "Recorded", Width: 20},
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", e.ID),
			e.GameID,
			fmt.Sprintf("%d", e.TotalFrames),
			(time.Duration(e.DurationMS) * time.Millisecond).Round(time.Millisecond * 100).String(),
			fmt.Sprintf("%d", e.TargetFPS),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)
}

// Init implements tea.Model.
func (m *RecordingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *RecordingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Play):
			if e, ok := m.cursorEntry(); ok {
				m.selected = e.ID
				m.quitting = true
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.cursorEntry(); ok {
				if err := m.store.DeleteRecording(e.ID); err != nil {
					m.err = err
				} else {
					m.reload()
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *RecordingsModel) cursorEntry() (storage.RecordingEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.RecordingEntry{}, false
	}
	return m.entries[i], true
}

// View renders the browser.
func (m *RecordingsModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	if len(m.entries) == 0 {
		return recordingsTitleStyle.Render("No recordings yet") + "\n\n" + m.help.View(m.keys)
	}

	title := "Recordings"
	if m.gameID != "" {
		title += ": " + m.gameID
	}
	return recordingsTitleStyle.Render(title) + "\n" +
		m.table.View() + "\n" +
		m.help.View(m.keys)
}

// BrowseRecordings runs the recordings browser and returns the ID of the
// recording chosen for replay, or 0 if the user quit without choosing.
func BrowseRecordings(store *storage.Store, gameID string) (int64, error) {
	model := NewRecordingsModel(store, gameID)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return 0, err
	}
	if m, ok := final.(*RecordingsModel); ok {
		return m.selected, m.err
	}
	return 0, nil
}
