package qonnect

import (
	"fmt"
	"strings"
)

// Cell glyphs for the text board. The diagonal is dead space, '+' marks
// empty chain-adjacent cells where generation is allowed, 'T' the target
// cell and 'o' an active link (mirrored below the diagonal).
const (
	cellDiagonal = "#"
	cellLink     = "o"
	cellTarget   = "T"
	cellAdjacent = "+"
	cellEmpty    = "."
)

// BoardString renders the full N×N grid, mirror cells included, for logs
// and the line-based websocket client.
func (g *GameState) BoardString() string {
	var b strings.Builder
	n := g.ChainLength
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			var ch string
			switch l, err := NewLink(row, col); {
			case row == col:
				ch = cellDiagonal
			case err == nil && g.Links.Contains(l):
				ch = cellLink
			case err == nil && l == g.Target:
				ch = cellTarget
			case row-col == 1 || col-row == 1:
				ch = cellAdjacent
			default:
				ch = cellEmpty
			}
			fmt.Fprint(&b, ch+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
