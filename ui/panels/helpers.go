// Package panels provides the dashboard's side panels.
package panels

import (
	"fmt"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
)

// stageLabel formats a stage list entry.
func stageLabel(i int, p pipe.Pipe) string {
	return fmt.Sprintf("%d: %s / %s", i+1, shape.KindOf(p.Outer), shape.KindOf(p.Inner))
}
