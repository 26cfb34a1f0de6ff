package overlay

// Notification texts for interaction feedback.
const (
	MessageMoveModeOn    = "MOVE MODE: ON"
	MessageMoveModeOff   = "MOVE MODE: OFF"
	MessagePositionReset = "POSITION RESET"
)

// dragSession exists only between StartDrag and EndDrag.
type dragSession struct {
	startMouse Vec2 // local space
	startPos   Vec2
}

// IsMoveMode reports whether the timer can be dragged.
func (m *Manager) IsMoveMode() bool {
	return m.moveMode
}

// IsDragging reports whether a drag is in progress.
func (m *Manager) IsDragging() bool {
	return m.drag != nil
}

// ColorState returns the timer's current color state.
func (m *Manager) ColorState() ColorState {
	return m.color
}

// ToggleMoveMode switches move mode on or off.
func (m *Manager) ToggleMoveMode() {
	m.moveMode = !m.moveMode
	if m.moveMode {
		m.setColorState(ColorMoveMode)
		m.ShowNotification(MessageMoveModeOn, DefaultNotificationDuration)
		m.logger.Info("move mode enabled")
		return
	}

	m.drag = nil
	m.setColorState(ColorNormal)
	m.ShowNotification(MessageMoveModeOff, DefaultNotificationDuration)
	m.logger.Info("move mode disabled")
}

func (m *Manager) setColorState(state ColorState) {
	m.color = state
	if m.timer == nil {
		return
	}
	m.timer.SetColorState(state)
	m.logger.Debug("timer color changed", "state", state.String())
}

// StartDrag begins a drag from a screen-space mouse point.
func (m *Manager) StartDrag(mouse Vec2) {
	if !m.moveMode || m.timer == nil || m.surface == nil {
		return
	}

	m.drag = &dragSession{
		startMouse: m.surface.ScreenToLocal(mouse),
		startPos:   m.timer.Position(),
	}
}

// UpdateDrag moves the timer by the mouse offset since StartDrag, clamped
// to the reference area. The label moves immediately.
func (m *Manager) UpdateDrag(mouse Vec2) {
	if !m.moveMode || m.timer == nil || m.surface == nil || m.drag == nil {
		return
	}

	local := m.surface.ScreenToLocal(mouse)
	target := m.drag.startPos.Add(local.Sub(m.drag.startMouse))

	pos, _ := ClampPosition(target, m.ReferenceResolution(), m.Dimensions())
	m.timer.SetPosition(pos)
}

// EndDrag finishes a drag and returns the timer's position for the caller
// to persist. It returns the zero position without a display.
func (m *Manager) EndDrag() Vec2 {
	m.drag = nil
	if m.timer == nil {
		return Vec2{}
	}

	pos := m.timer.Position()
	m.logger.Info("drag ended", "position", pos.String())
	return pos
}

// ResetPosition moves the timer to (x, y), clamped, and returns the
// position applied.
func (m *Manager) ResetPosition(x, y float64) Vec2 {
	if m.timer == nil {
		m.logger.Warn("cannot reset position, timer not initialized")
		return Vec2{}
	}

	pos, _ := ClampPosition(Vec2{X: x, Y: y}, m.ReferenceResolution(), m.Dimensions())
	m.timer.SetPosition(pos)
	m.ShowNotification(MessagePositionReset, DefaultNotificationDuration)
	m.logger.Info("position reset", "position", pos.String())
	return pos
}
