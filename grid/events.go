package grid

import (
	"github.com/devel0/wscanvas/cell"
	"github.com/devel0/wscanvas/selection"
	"github.com/devel0/wscanvas/sortfilter"
)

// ChangeEvent is delivered to Config.OnChange after a transition.
type ChangeEvent struct {
	GridID  string
	Version uint64

	Focus     cell.Coord
	Selection selection.Selection
	Edit      EditMode

	Filters       []sortfilter.Filter
	Sorts         []sortfilter.ColumnSortInfo
	FilteredCount int
}

func buildChangeEvent(id string, s State) ChangeEvent {
	return ChangeEvent{
		GridID:        id,
		Version:       s.Version,
		Focus:         s.Focus,
		Selection:     s.Selection,
		Edit:          s.Edit.Mode,
		Filters:       s.Filters,
		Sorts:         s.Sorts,
		FilteredCount: s.FilteredCount,
	}
}
