package grid

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TouchAction is the phase of a touch gesture.
type TouchAction uint8

const (
	TouchStart TouchAction = iota
	TouchMove
	TouchEnd
)

// TouchMsg is a single-finger touch event in grid-relative cells. Bubble
// Tea has no touch input; hosts that receive touches elsewhere forward them
// as TouchMsg.
type TouchMsg struct {
	Action TouchAction
	X, Y   int
}

type touch struct {
	active       bool
	moved        bool
	startX       int
	startY       int
	lastX, lastY int
	accX, accY   int
}

func (m Model) updateTouch(msg TouchMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	switch msg.Action {
	case TouchStart:
		m.touch = touch{active: true, startX: msg.X, startY: msg.Y, lastX: msg.X, lastY: msg.Y}
		if next, ok := m.scrollbarPress(msg.X, msg.Y, m.cfg.ScrollbarTouchTolerance); ok {
			next.touch = m.touch
			next.touch.moved = true
			return next, nil
		}
		return m, nil

	case TouchMove:
		if !m.touch.active {
			return m, nil
		}
		if k := m.state.drag.kind; k == dragVScroll || k == dragHScroll {
			return m.pointerMove(msg.X, msg.Y)
		}
		return m.touchDrag(msg.X, msg.Y), nil

	case TouchEnd:
		t := m.touch
		m.touch = touch{}
		m.state.drag = drag{}
		if t.active && !t.moved {
			// A tap focuses like a click.
			next, cmd := m.pointerPress(msg.X, msg.Y, modifiers{}, 0)
			next.state.drag = drag{}
			return next, cmd
		}
	}
	return m, nil
}

// touchDrag accumulates finger movement and scrolls one row or column each
// time the accumulated distance reaches TouchSensitivity. Content follows
// the finger, so moving up scrolls down.
func (m Model) touchDrag(x, y int) Model {
	t := m.touch
	t.accX += t.lastX - x
	t.accY += t.lastY - y
	t.lastX, t.lastY = x, y
	if x != t.startX || y != t.startY {
		t.moved = true
	}

	sens := m.cfg.TouchSensitivity
	dr, dc := t.accY/sens, t.accX/sens
	t.accY -= dr * sens
	t.accX -= dc * sens
	m.touch = t
	if dr == 0 && dc == 0 {
		return m
	}
	return m.scrollBy(dr, dc)
}
