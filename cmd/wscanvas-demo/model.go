package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/devel0/wscanvas/config"
	"github.com/devel0/wscanvas/grid"
)

// configMsg carries a reloaded config file.
type configMsg struct {
	file config.File
	err  error
}

// savedMsg reports the outcome of a save.
type savedMsg struct{ err error }

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

type model struct {
	grid grid.Model
	// base is the config before any file was applied, so reloads start
	// from the same point.
	base grid.Config
	data dataset
	log  *log.Logger

	notes   textinput.Model
	editing bool
	status  string

	width, height int
}

func baseConfig(data dataset, logger *log.Logger) grid.Config {
	cfg := grid.DefaultConfig()
	cfg.Source = data.source
	cfg.Columns = data.columns
	cfg.FrozenCols = 1
	cfg.ShowFilterRow = true
	cfg.SortOnHeaderClick = true
	cfg.Clipboard = systemClipboard()
	cfg.Logger = logger
	return cfg
}

func newModel(base, cfg grid.Config, data dataset, logger *log.Logger) model {
	in := textinput.New()
	in.Prompt = "notes> "
	in.CharLimit = 500
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return model{
		grid:   grid.New(cfg),
		base:   base,
		data:   data,
		log:    logger,
		notes:  in,
		status: "ctrl+q quit · ctrl+s save · f2 edit · alt+c copy sheet",
	}
}

func (m model) Init() tea.Cmd { return m.grid.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid = m.grid.SetSize(msg.Width, max(msg.Height-1, 0))
		m.notes.Width = max(msg.Width-len(m.notes.Prompt)-1, 1)
		return m, nil
	case configMsg:
		return m.reload(msg), nil
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		case "ctrl+s":
			return m, m.save()
		}
		if m.editing {
			return m.updateNotes(msg)
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m.syncEditor(), cmd
}

// syncEditor opens the notes input when the grid hands an edit to the
// custom editor, e.g. after F2 or a double click on a notes cell.
func (m model) syncEditor() model {
	e := m.grid.EditState()
	switch {
	case e.Custom && e.Editor == notesEditor && !m.editing:
		m.editing = true
		m.notes.SetValue(e.Text)
		m.notes.CursorEnd()
		m.notes.Focus()
	case !e.Custom && m.editing:
		m.editing = false
		m.notes.Blur()
	}
	return m
}

func (m model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.grid = m.grid.SetEditValue(m.notes.Value()).CloseCustomEdit(true)
		return m.syncEditor(), nil
	case tea.KeyEsc:
		m.grid = m.grid.CloseCustomEdit(false)
		return m.syncEditor(), nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	m.grid = m.grid.SetEditValue(m.notes.Value())
	return m, cmd
}

func (m model) reload(msg configMsg) model {
	if msg.err != nil {
		m.log.Error("config reload", "err", msg.err)
		m.status = "config: " + msg.err.Error()
		return m
	}
	cfg, err := config.Apply(msg.file, m.base)
	if err != nil {
		m.log.Warn("config reload", "err", err)
		m.status = "config: " + err.Error()
	} else {
		m.status = "config reloaded"
	}
	m.grid = m.grid.SetConfig(cfg)
	return m
}

func (m model) save() tea.Cmd {
	if m.data.save == nil {
		return func() tea.Msg { return savedMsg{err: errors.New("generated data has no file")} }
	}
	save := m.data.save
	return func() tea.Msg { return savedMsg{err: save(context.Background())} }
}

func (m model) View() string {
	var bottom string
	if m.editing {
		bottom = m.notes.View()
	} else {
		st := m.grid.State()
		f := m.grid.FocusedCell()
		bottom = statusStyle.Render(fmt.Sprintf("%s  r%d c%d  %d/%d rows  v%d",
			m.status, f.Row+1, f.Col+1, st.FilteredCount, m.data.source.Len(), st.Version))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.grid.View(), bottom)
}
