// Package output renders stacks, branches and dependency results for the
// terminal.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// BUT_COLORS defines the color palette for stack visualization, one color
// per stack, cycling.
var BUT_COLORS = [][]int{
	{76, 203, 241},  // Light blue
	{77, 202, 125},  // Green
	{245, 200, 0},   // Yellow
	{248, 144, 72},  // Orange
	{244, 98, 81},   // Red
	{235, 130, 188}, // Pink
	{159, 131, 228}, // Purple
	{80, 132, 243},  // Blue
}

// StackColor returns the lipgloss color for the stack at index.
func StackColor(index int) lipgloss.Color {
	color := BUT_COLORS[index%len(BUT_COLORS)]
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", color[0], color[1], color[2]))
}

// ColorEnabled reports whether stdout is a color-capable terminal.
func ColorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
