package ui

import (
	"context"
	"fmt"
)

// undoAction records one saved-set toggle. Toggling is its own inverse, so
// undo and redo both toggle the same id again.
type undoAction struct {
	label   string
	eventID string
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) clearHistory() {
	m.undoStack = nil
	m.redoStack = nil
}

func (m *Model) undo() {
	if len(m.undoStack) == 0 {
		m.info = "Nothing to undo"
		return
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	if m.applyHistory(action, "undo") {
		m.redoStack = append(m.redoStack, action)
	}
}

func (m *Model) redo() {
	if len(m.redoStack) == 0 {
		m.info = "Nothing to redo"
		return
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	if m.applyHistory(action, "redo") {
		m.undoStack = append(m.undoStack, action)
	}
}

func (m *Model) applyHistory(action undoAction, direction string) bool {
	if _, err := m.session.ToggleSaved(context.Background(), action.eventID); err != nil {
		m.error = fmt.Sprintf("%s failed: %v", direction, err)
		m.logger.Warn("history toggle failed", "direction", direction, "event_id", action.eventID, "error", err)
		return false
	}
	m.error = ""
	if direction == "undo" {
		m.info = "Undid: " + action.label
	} else {
		m.info = "Redid: " + action.label
	}
	return true
}
