package grid

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devel0/wscanvas/sortfilter"
)

// Debounced work is a tea.Tick carrying a sequence number. Every new
// trigger bumps the sequence, so only the latest tick applies.

type filterTickMsg struct {
	id  string
	seq uint64
}

type rowHeightTickMsg struct {
	id  string
	seq uint64
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// scheduleFilter applies the pending filter text after FilterDebounce.
func (m Model) scheduleFilter() (Model, tea.Cmd) {
	m.filterSeq++
	if m.cfg.FilterDebounce <= 0 {
		return m.applyFilterTick(filterTickMsg{id: m.id, seq: m.filterSeq}), nil
	}
	m = m.refresh(stageGeometry)
	return m, tick(m.cfg.FilterDebounce, filterTickMsg{id: m.id, seq: m.filterSeq})
}

func (m Model) applyFilterTick(msg filterTickMsg) Model {
	if msg.id != m.id || msg.seq != m.filterSeq {
		return m
	}
	e := m.state.Edit
	if !e.Active() || !e.Cell.FilterRow {
		return m
	}
	m.log.Debug("filter debounce fired", "col", e.Cell.Col, "text", e.Text)
	m.state = m.state.withFilters(sortfilter.WithFilter(m.state.Filters, e.Cell.Col, e.Text))
	return m.refresh(stageSort)
}

// scheduleRowHeights re-measures wrapped rows after RowHeightDebounce.
func (m Model) scheduleRowHeights() (Model, tea.Cmd) {
	if !m.hasWrap() {
		return m, nil
	}
	m.heightSeq++
	msg := rowHeightTickMsg{id: m.id, seq: m.heightSeq}
	if m.cfg.RowHeightDebounce <= 0 {
		return m.applyRowHeightTick(msg), nil
	}
	return m, tick(m.cfg.RowHeightDebounce, msg)
}

func (m Model) applyRowHeightTick(msg rowHeightTickMsg) Model {
	if msg.id != m.id || msg.seq != m.heightSeq {
		return m
	}
	m.log.Debug("row height debounce fired")
	m.state = m.state.withoutAutoHeights()
	return m.refresh(stageGeometry)
}

func (m Model) hasWrap() bool {
	for _, c := range m.cfg.Columns {
		if c.Wrap {
			return true
		}
	}
	return false
}
