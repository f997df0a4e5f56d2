package blocks

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

const (
	cellWidth    = 2 // each board cell is drawn two characters wide
	sidebarGap   = 2
	sidebarWidth = 12
	previewSlots = 5

	lineFlashDuration = 15 // ~250ms at 60fps
	flashBlinkTicks   = 3

	cellRune  = '█'
	ghostRune = '░'
)

// pieceColors is the conventional palette for the seven kinds.
var pieceColors = map[engine.PieceKind]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindO: core.ColorYellow,
	engine.KindT: core.ColorMagenta,
	engine.KindS: core.ColorGreen,
	engine.KindZ: core.ColorRed,
	engine.KindJ: core.ColorBlue,
	engine.KindL: core.ColorOrange,
}

func (g *Game) boardBoxWidth() int {
	return g.session.Rules().Width*cellWidth + 2
}

func (g *Game) boardBoxHeight() int {
	return g.session.Rules().Height + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW := g.boardBoxWidth() + sidebarGap + sidebarWidth
	box := core.NewRect((g.screenW-totalW)/2, 1, g.boardBoxWidth(), g.boardBoxHeight())

	g.renderTitle(dst, box.X, totalW)
	g.renderBoard(dst, box)
	g.renderSidebar(dst, box.Right()+sidebarGap, box.Y)
	g.renderFooter(dst)

	cx, cy := box.Center()
	g.renderOverlays(dst, cx, cy)
}

// renderFooter draws the key hints on the bottom row when there is a
// clear row below the board for them.
func (g *Game) renderFooter(dst *core.Screen) {
	hints := g.Controls()
	n := utf8.RuneCountInString(hints)
	if g.screenH < g.boardBoxHeight()+3 || n > g.screenW {
		return
	}
	dst.DrawTextColored((g.screenW-n)/2, g.screenH-1, hints, core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	msg := "Window too small"
	x := (g.screenW - len(msg)) / 2
	y := g.screenH / 2
	dst.DrawText(x, y, msg)

	hint := "Please resize terminal"
	hintX := (g.screenW - len(hint)) / 2
	dst.DrawText(hintX, y+1, hint)
}

// renderTitle draws the variant name above the playfield.
func (g *Game) renderTitle(dst *core.Screen, boardX, totalW int) {
	title := g.Title()
	dst.DrawText(boardX+(totalW-len(title))/2, 0, title)
}

// renderBoard draws the playfield: settled cells, the landing preview,
// the active piece and the clear flash.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	rules := g.session.Rules()
	dst.DrawBox(box)

	innerX := box.X + 1
	innerY := box.Y + 1

	for row, cells := range g.session.BoardSnapshot() {
		for col, cell := range cells {
			if kind, ok := cell.Piece(); ok {
				g.drawCell(dst, innerX, innerY, row, col, cellRune, pieceColors[kind])
			}
		}
	}

	active, hasActive := g.session.ActivePiece()

	if g.showGhost && hasActive {
		ghost := active
		ghost.Row = g.session.GhostRow()
		if ghost.Row != active.Row {
			for _, c := range engine.PieceCells(ghost) {
				g.drawCell(dst, innerX, innerY, c.Row, c.Col, ghostRune, core.ColorGray)
			}
		}
	}

	if hasActive {
		for _, c := range g.session.ActivePieceCells() {
			g.drawCell(dst, innerX, innerY, c.Row, c.Col, cellRune, pieceColors[active.Kind])
		}
	}

	if g.flashTicks > 0 && (g.flashTicks/flashBlinkTicks)%2 == 0 {
		for _, row := range g.flashRows {
			for col := 0; col < rules.Width; col++ {
				g.drawCell(dst, innerX, innerY, row, col, cellRune, core.ColorBrightWhite)
			}
		}
	}
}

// drawCell fills one board cell at the given row/column.
func (g *Game) drawCell(dst *core.Screen, innerX, innerY, row, col int, r rune, c core.Color) {
	x := innerX + col*cellWidth
	y := innerY + row
	dst.SetCell(x, y, r, c)
	dst.SetCell(x+1, y, r, c)
}

// renderSidebar draws the score block, the hold slot and the preview queue.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "SCORE")
	dst.DrawText(x+1, y+1, fmt.Sprintf("%d", g.session.Score()))
	dst.DrawText(x, y+3, fmt.Sprintf("LEVEL %d", g.session.Level()))
	dst.DrawText(x, y+4, fmt.Sprintf("LINES %d", g.session.Lines()))

	if g.session.Rules().HoldEnabled {
		dst.DrawText(x, y+6, "HOLD")
		if kind, ok := g.session.HoldKind(); ok {
			g.drawMini(dst, x+1, y+7, kind)
		} else {
			dst.DrawText(x+1, y+7, "-")
		}
	}

	dst.DrawText(x, y+10, "NEXT")
	for i, kind := range g.session.PreviewQueue() {
		if i >= previewSlots {
			break
		}
		g.drawMini(dst, x+1, y+11+i*2, kind)
	}
}

// drawMini draws a piece in its spawn rotation, two rows tall.
func (g *Game) drawMini(dst *core.Screen, x, y int, kind engine.PieceKind) {
	c := pieceColors[kind]
	for _, o := range engine.Shape(kind, engine.RotSpawn) {
		px := x + o.Col*cellWidth
		py := y + o.Row
		dst.SetCell(px, py, cellRune, c)
		dst.SetCell(px+1, py, cellRune, c)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.session.IsGameOver() {
		scoreStr := fmt.Sprintf("Final score: %d", g.session.Score())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, "Press R to restart")
		return
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	// Find max line width
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	// Draw box
	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	// Draw border
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	// Draw text
	for i, line := range lines {
		x := centerX - len(line)/2
		dst.DrawText(x, boxY+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.variant == engine.ModeClassic {
		return "←/→: Move | ↑/Z: Rotate | ↓: Soft | Space: Drop | P: Pause | Q: Quit"
	}
	return "←/→: Move | ↑/Z: Rotate | ↓: Soft | Space: Drop | C: Hold | P: Pause | Q: Quit"
}
