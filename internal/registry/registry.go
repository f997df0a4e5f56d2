// Package registry is the seam between game variants and the platform.
// Variants register a factory from init(), and the CLI, menu and SSH
// server discover them here without importing the game packages.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Game is the contract every playable variant implements. A Game is
// pure simulation: no terminal, no Bubble Tea, no clocks. The platform
// feeds it input frames at a fixed tick rate and hands it a screen
// buffer to draw into.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// scoreboard key, e.g. "classic" or "topless".
	ID() string

	// Title is the display name, e.g. "Blockfall (Classic)".
	Title() string

	// Reset starts a fresh run with the given screen size, tick rate
	// and seed. It is also how the platform restarts after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation one tick, consuming the actions
	// gathered since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. Games repaint the whole
	// frame; nothing else clears the buffer between ticks.
	Render(dst *core.Screen)

	// State reports score, game-over and pause to the platform.
	State() core.GameState
}

// GameInfo describes a registered variant for listings.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh, unstarted instance of a variant.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register makes a variant available under id. It runs from the
// variant's init(), so a duplicate id is a programming error and
// panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	// One throwaway instance supplies the display title for listings
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns the registered variants sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return infos
}

// Create builds a new instance of the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id names a registered variant.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
