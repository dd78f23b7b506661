package panels

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"draw-pipe/internal/app"
)

// LibraryPanel lists the template catalog and loads a template into the
// editable process.
type LibraryPanel struct {
	state  *app.State
	window fyne.Window

	names     []string
	selected  int
	list      *widget.List
	container fyne.CanvasObject
}

// NewLibraryPanel creates the template library panel.
func NewLibraryPanel(state *app.State) *LibraryPanel {
	p := &LibraryPanel{state: state, selected: -1}

	p.list = widget.NewList(
		func() int { return len(p.names) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < len(p.names) {
				o.(*widget.Label).SetText(p.names[i])
			}
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) { p.selected = i }
	p.list.OnUnselected = func(widget.ListItemID) { p.selected = -1 }

	loadBtn := widget.NewButton("Load Template", p.onLoad)
	refreshBtn := widget.NewButton("Refresh", func() {
		p.state.Catalog().Invalidate()
		p.Reload()
	})

	buttons := container.NewGridWithColumns(2, loadBtn, refreshBtn)
	p.container = container.NewBorder(nil, buttons, nil, nil, p.list)

	state.On(app.EventTemplatesChanged, func(interface{}) {
		p.Reload()
	})
	p.Reload()
	return p
}

// SetWindow attaches the parent window used for dialogs.
func (p *LibraryPanel) SetWindow(w fyne.Window) {
	p.window = w
}

// Container returns the panel's root object.
func (p *LibraryPanel) Container() fyne.CanvasObject {
	return p.container
}

// Reload re-reads the catalog names.
func (p *LibraryPanel) Reload() {
	templates, err := p.state.Catalog().Templates()
	if err != nil {
		if p.window != nil {
			dialog.ShowError(err, p.window)
		}
		return
	}

	p.names = p.names[:0]
	for name := range templates {
		p.names = append(p.names, name)
	}
	sort.Strings(p.names)
	p.list.Refresh()
}

func (p *LibraryPanel) onLoad() {
	if p.selected < 0 || p.selected >= len(p.names) {
		return
	}
	if err := p.state.LoadTemplate(p.names[p.selected]); err != nil && p.window != nil {
		dialog.ShowError(err, p.window)
	}
}
