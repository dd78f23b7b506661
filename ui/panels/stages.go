package panels

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"draw-pipe/internal/app"
	"draw-pipe/internal/pipe"
	"draw-pipe/ui/dialogs"
)

// StagesPanel lists the draw stages and provides stage editing actions.
type StagesPanel struct {
	state  *app.State
	window fyne.Window

	list      *widget.List
	container fyne.CanvasObject
}

// NewStagesPanel creates the stages panel.
func NewStagesPanel(state *app.State) *StagesPanel {
	p := &StagesPanel{state: state}

	p.list = widget.NewList(
		func() int { return p.state.StageCount() },
		func() fyne.CanvasObject { return widget.NewLabel("stage") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			stage, err := p.state.Stage(i)
			if err != nil {
				return
			}
			o.(*widget.Label).SetText(stageLabel(i, stage))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		p.state.SelectStage(i)
	}

	addBtn := widget.NewButton("Add", p.onAdd)
	editBtn := widget.NewButton("Edit", p.onEdit)
	removeBtn := widget.NewButton("Remove", p.onRemove)
	upBtn := widget.NewButton("Up", func() { p.moveSelected(-1) })
	downBtn := widget.NewButton("Down", func() { p.moveSelected(1) })

	buttons := container.NewGridWithColumns(5, addBtn, editBtn, removeBtn, upBtn, downBtn)
	p.container = container.NewBorder(nil, buttons, nil, nil, p.list)

	state.On(app.EventProcessChanged, func(interface{}) {
		p.list.Refresh()
	})
	state.On(app.EventStageSelected, func(data interface{}) {
		if i, ok := data.(int); ok && i >= 0 {
			p.list.Select(i)
		}
	})

	return p
}

// SetWindow attaches the parent window used for dialogs.
func (p *StagesPanel) SetWindow(w fyne.Window) {
	p.window = w
}

// Container returns the panel's root object.
func (p *StagesPanel) Container() fyne.CanvasObject {
	return p.container
}

func (p *StagesPanel) onAdd() {
	dialogs.NewPipeEditor(p.window, "Add Stage", nil, func(stage pipe.Pipe) {
		p.state.AddStage(stage)
	}).Show()
}

func (p *StagesPanel) onEdit() {
	i := p.state.Selected()
	stage, err := p.state.Stage(i)
	if err != nil {
		return
	}
	dialogs.NewPipeEditor(p.window, "Edit Stage", &stage, func(edited pipe.Pipe) {
		if err := p.state.UpdateStage(i, edited); err != nil {
			log.Printf("update stage: %v", err)
		}
	}).Show()
}

func (p *StagesPanel) onRemove() {
	i := p.state.Selected()
	if i < 0 {
		return
	}
	if err := p.state.RemoveStage(i); err != nil {
		log.Printf("remove stage: %v", err)
	}
}

func (p *StagesPanel) moveSelected(delta int) {
	if i := p.state.Selected(); i >= 0 {
		p.state.MoveStage(i, delta)
	}
}
