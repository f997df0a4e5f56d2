package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	bindings map[string]core.Action
}

// NewKeyMapper creates a mapper with the default bindings. Arrows,
// WASD and vim movement keys are all live so muscle memory from any
// layout works.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: map[string]core.Action{
		"left":  core.ActionLeft,
		"h":     core.ActionLeft,
		"a":     core.ActionLeft,
		"right": core.ActionRight,
		"l":     core.ActionRight,
		"d":     core.ActionRight,
		"down":  core.ActionDown,
		"j":     core.ActionDown,
		"s":     core.ActionDown,
		"up":    core.ActionRotateCW,
		"x":     core.ActionRotateCW,
		"z":     core.ActionRotateCCW,
		" ":     core.ActionHardDrop,
		"c":     core.ActionHold,
		"enter": core.ActionConfirm,
		"b":     core.ActionBack,
		"p":     core.ActionPause,
		"esc":   core.ActionPause,
		"r":     core.ActionRestart,
	}}
}

// MapKey translates a key message to a piece action. isQuit is set for
// the global quit keys, which never reach the game.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return core.ActionQuit, true
	}
	return km.bindings[key], false
}

// MenuAction is a navigation action inside menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k", "w":
		return MenuActionUp
	case "down", "j", "s":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
