package dbus

import (
	"fmt"
)

// EmitPositionSaved emits the PositionSaved signal after the timer
// position has been written to the config file.
func (s *ControlServer) EmitPositionSaved(x, y float64) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(Path, Interface+".PositionSaved", x, y)
	if err != nil {
		return fmt.Errorf("failed to emit PositionSaved signal: %w", err)
	}

	s.logger.Debug("emitted PositionSaved signal", "x", x, "y", y)
	return nil
}
