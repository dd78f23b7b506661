package panels

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"draw-pipe/internal/app"
	"draw-pipe/internal/process"
	"draw-pipe/internal/shape"
)

// MetricsPanel shows the per-transition metric series for the current
// process, recomputed on every edit.
type MetricsPanel struct {
	state *app.State
	text  *widget.Label
}

// NewMetricsPanel creates the metrics panel.
func NewMetricsPanel(state *app.State) *MetricsPanel {
	p := &MetricsPanel{
		state: state,
		text:  widget.NewLabel(""),
	}
	p.text.TextStyle = fyne.TextStyle{Monospace: true}
	p.text.Wrapping = fyne.TextWrapOff

	state.On(app.EventProcessChanged, func(interface{}) {
		p.refresh()
	})
	p.refresh()
	return p
}

// Container returns the panel's root object.
func (p *MetricsPanel) Container() fyne.CanvasObject {
	return container.NewScroll(p.text)
}

func (p *MetricsPanel) refresh() {
	p.text.SetText(metricsText(p.state))
}

func metricsText(state *app.State) string {
	stages := state.Stages()
	if len(stages) == 0 {
		return "No stages."
	}

	var b strings.Builder
	b.WriteString("Stages\n")
	for i, stage := range stages {
		fmt.Fprintf(&b, "  %d: area %9.2f  ecc %6.3f\n", i+1, stage.Area(), stage.Eccentricity())
	}

	if len(stages) < 2 {
		b.WriteString("\nAdd a second stage to see transitions.")
		return b.String()
	}

	analysis := process.NewAnalysis(stages)
	areas, err := analysis.AreaReductions()
	if err != nil {
		fmt.Fprintf(&b, "\nArea reductions: %v", err)
		return b.String()
	}
	diffs := analysis.EccentricityDiffs()

	b.WriteString("\nTransitions\n")
	for i := range areas {
		fmt.Fprintf(&b, "  %d -> %d: area %+.1f%%  ecc %+.3f\n", i+1, i+2, areas[i]*100, diffs[i])
	}

	thickness, err := analysis.ThicknessReductions()
	if err != nil {
		fmt.Fprintf(&b, "\nThickness: %v", err)
		return b.String()
	}

	b.WriteString("\nThickness reductions\n      ")
	for _, name := range shape.LandmarkNames {
		fmt.Fprintf(&b, "%8s", name)
	}
	b.WriteString("\n")
	for i, row := range thickness {
		fmt.Fprintf(&b, "  %d->%d", i+1, i+2)
		for _, r := range row {
			fmt.Fprintf(&b, " %6.1f%%", r*100)
		}
		b.WriteString("\n")
	}
	return b.String()
}
