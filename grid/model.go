package grid

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/geometry"
	"github.com/devel0/wscanvas/sortfilter"
	"github.com/devel0/wscanvas/viewmap"
)

// Model is a Bubble Tea component that renders and interacts with a
// virtualized grid over host data.
//
// The Model never stores row data: values are read through Config.Source
// when they are needed.
type Model struct {
	cfg    Config
	id     string
	log    *log.Logger
	engine *sortfilter.Engine
	preds  map[int]sortfilter.Predicate

	state State
	view  viewmap.ViewMap
	frame geometry.Frame

	width, height int
	focused       bool

	lastWheelConsumed bool
	filterSeq         uint64
	heightSeq         uint64

	lastClick click
	touch     touch
	now       func() time.Time
}

type click struct {
	at   time.Time
	cell cell.Coord
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		id:      id,
		view:    viewmap.Identity(0),
		focused: true,
		now:     time.Now,
	}
	m = m.withConfig(cfg, logger)
	return m.run(stageSort)
}

func (m Model) withConfig(cfg Config, logger *log.Logger) Model {
	m.cfg = cfg
	m.cfg.ID = m.id
	m.log = logger.With("grid", m.id)
	m.engine = sortfilter.New(sortfilter.Options{CaseSensitive: cfg.CaseSensitive, Language: cfg.Language})
	m.preds = nil
	for i, c := range cfg.Columns {
		if c.Filter != nil {
			if m.preds == nil {
				m.preds = map[int]sortfilter.Predicate{}
			}
			m.preds[i] = c.Filter
		}
	}
	return m
}

// SetConfig replaces the configuration of a running grid. The instance id,
// selection, sorts and filters are kept; filters and sorts on columns that
// no longer exist are dropped. A pending edit is cancelled.
func (m Model) SetConfig(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m = m.withConfig(cfg, logger)
	m.filterSeq++
	m.heightSeq++
	m.state.Edit = Edit{}
	m.state = m.state.dropColumnsFrom(len(cfg.Columns))
	return m.refresh(stageSort)
}

// ID returns the grid instance id.
func (m Model) ID() string { return m.id }

func (m Model) Config() Config { return m.cfg }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur removes focus and confirms a pending built-in edit.
func (m Model) Blur() Model {
	if m.state.Edit.Active() && !m.state.Edit.Custom {
		m = m.commitEdit(advanceNone)
	}
	m.focused = false
	return m
}

func (m Model) Focused() bool { return m.focused }

// LastWheelConsumed reports whether the last wheel event scrolled the grid.
// Hosts use it to bubble unconsumed wheel events to an outer container.
func (m Model) LastWheelConsumed() bool { return m.lastWheelConsumed }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case TouchMsg:
		return m.updateTouch(msg)
	case filterTickMsg:
		return m.applyFilterTick(msg), nil
	case rowHeightTickMsg:
		return m.applyRowHeightTick(msg), nil
	default:
		return m, nil
	}
}

func (m Model) View() string { return m.render() }
