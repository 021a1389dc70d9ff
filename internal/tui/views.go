package tui

import "taskboard/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewBoard = messages.ViewBoard
	ViewHelp  = messages.ViewHelp
)

type SwitchViewMsg = messages.SwitchViewMsg
