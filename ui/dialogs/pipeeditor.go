// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"draw-pipe/internal/pipe"
	"draw-pipe/internal/shape"
	"draw-pipe/pkg/geometry"
)

var shapeTypeNames = []string{"Circle", "Rect", "SplineProfile"}

// PipeEditor edits one draw stage: a shared shape type plus the outer and
// inner boundary parameters. The editor only produces same-variant pairs,
// matching the template wire format.
type PipeEditor struct {
	window  fyne.Window
	title   string
	onApply func(pipe.Pipe)

	typeSelect *widget.Select
	outer      *shapeForm
	inner      *shapeForm
}

// shapeForm holds the parameter entries for one boundary.
type shapeForm struct {
	originX, originY *widget.Entry

	// Circle
	diameter *widget.Entry

	// Rect
	length, width, fillet *widget.Entry

	// SplineProfile control offsets
	y1, x2, y2, x3 *widget.Entry

	circleForm *widget.Form
	rectForm   *widget.Form
	splineForm *widget.Form
	content    *fyne.Container
}

// NewPipeEditor creates an editor. When initial is non-nil its parameters
// pre-populate the entries; otherwise the editor starts from the reference
// round billet.
func NewPipeEditor(window fyne.Window, title string, initial *pipe.Pipe, onApply func(pipe.Pipe)) *PipeEditor {
	d := &PipeEditor{
		window:  window,
		title:   title,
		onApply: onApply,
		outer:   newShapeForm(),
		inner:   newShapeForm(),
	}

	d.typeSelect = widget.NewSelect(shapeTypeNames, func(name string) {
		d.outer.showVariant(name)
		d.inner.showVariant(name)
	})

	if initial != nil && shape.KindOf(initial.Outer) == shape.KindOf(initial.Inner) {
		d.typeSelect.SetSelected(shape.KindOf(initial.Outer).String())
		d.outer.setShape(initial.Outer)
		d.inner.setShape(initial.Inner)
	} else {
		d.typeSelect.SetSelected("Circle")
		d.outer.setShape(shape.Circle{Diameter: 85})
		d.inner.setShape(shape.Circle{Diameter: 53})
	}
	return d
}

// Show displays the dialog.
func (d *PipeEditor) Show() {
	content := container.NewVBox(
		widget.NewForm(widget.NewFormItem("Shape Type", d.typeSelect)),
		widget.NewCard("Outer Boundary", "", d.outer.content),
		widget.NewCard("Inner Bore", "", d.inner.content),
	)

	dlg := dialog.NewCustomConfirm(
		d.title,
		"Apply",
		"Cancel",
		content,
		func(apply bool) {
			if !apply {
				return
			}
			p, err := d.buildPipe()
			if err != nil {
				dialog.ShowError(err, d.window)
				return
			}
			if d.onApply != nil {
				d.onApply(p)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(460, 620))
	dlg.Show()
}

func (d *PipeEditor) buildPipe() (pipe.Pipe, error) {
	kind := d.typeSelect.Selected

	outer, err := d.outer.shape(kind)
	if err != nil {
		return pipe.Pipe{}, fmt.Errorf("outer: %w", err)
	}
	inner, err := d.inner.shape(kind)
	if err != nil {
		return pipe.Pipe{}, fmt.Errorf("inner: %w", err)
	}

	p := pipe.Pipe{Outer: outer, Inner: inner}
	if err := p.Validate(); err != nil {
		return pipe.Pipe{}, err
	}
	return p, nil
}

func newShapeForm() *shapeForm {
	f := &shapeForm{
		originX:  widget.NewEntry(),
		originY:  widget.NewEntry(),
		diameter: widget.NewEntry(),
		length:   widget.NewEntry(),
		width:    widget.NewEntry(),
		fillet:   widget.NewEntry(),
		y1:       widget.NewEntry(),
		x2:       widget.NewEntry(),
		y2:       widget.NewEntry(),
		x3:       widget.NewEntry(),
	}

	// The origin row is shared; only the variant-specific form swaps.
	originForm := widget.NewForm(
		widget.NewFormItem("Origin (x, y)", container.NewGridWithColumns(2, f.originX, f.originY)),
	)

	f.circleForm = widget.NewForm(
		widget.NewFormItem("Diameter", f.diameter),
	)
	f.rectForm = widget.NewForm(
		widget.NewFormItem("Length", f.length),
		widget.NewFormItem("Width", f.width),
		widget.NewFormItem("Fillet Radius", f.fillet),
	)
	f.splineForm = widget.NewForm(
		widget.NewFormItem("Top height (y1)", f.y1),
		widget.NewFormItem("Shoulder (x2, y2)", container.NewGridWithColumns(2, f.x2, f.y2)),
		widget.NewFormItem("Side reach (x3)", f.x3),
	)

	f.content = container.NewVBox(originForm,
		container.NewStack(f.circleForm, f.rectForm, f.splineForm))
	return f
}

// showVariant makes only the selected variant's form visible.
func (f *shapeForm) showVariant(kind string) {
	f.circleForm.Hide()
	f.rectForm.Hide()
	f.splineForm.Hide()
	switch kind {
	case "Circle":
		f.circleForm.Show()
	case "Rect":
		f.rectForm.Show()
	case "SplineProfile":
		f.splineForm.Show()
	}
}

// setShape fills the entries from an existing shape.
func (f *shapeForm) setShape(s shape.Shape) {
	origin := shape.Origin(s)
	setEntry(f.originX, origin.X)
	setEntry(f.originY, origin.Y)

	switch v := s.(type) {
	case shape.Circle:
		setEntry(f.diameter, v.Diameter)
	case shape.Rect:
		setEntry(f.length, v.Length)
		setEntry(f.width, v.Width)
		setEntry(f.fillet, v.FilletRadius)
	case shape.SplineProfile:
		setEntry(f.y1, v.V1.Y)
		setEntry(f.x2, v.V2.X)
		setEntry(f.y2, v.V2.Y)
		setEntry(f.x3, v.V3.X)
	}
}

// shape parses the entries for the selected variant.
func (f *shapeForm) shape(kind string) (shape.Shape, error) {
	ox, err := parseEntry(f.originX, "origin x")
	if err != nil {
		return nil, err
	}
	oy, err := parseEntry(f.originY, "origin y")
	if err != nil {
		return nil, err
	}
	origin := geometry.Point2D{X: ox, Y: oy}

	switch kind {
	case "Circle":
		d, err := parseEntry(f.diameter, "diameter")
		if err != nil {
			return nil, err
		}
		return shape.Circle{Origin: origin, Diameter: d}, nil
	case "Rect":
		l, err := parseEntry(f.length, "length")
		if err != nil {
			return nil, err
		}
		w, err := parseEntry(f.width, "width")
		if err != nil {
			return nil, err
		}
		r, err := parseEntry(f.fillet, "fillet radius")
		if err != nil {
			return nil, err
		}
		return shape.Rect{Origin: origin, Length: l, Width: w, FilletRadius: r}, nil
	case "SplineProfile":
		y1, err := parseEntry(f.y1, "y1")
		if err != nil {
			return nil, err
		}
		x2, err := parseEntry(f.x2, "x2")
		if err != nil {
			return nil, err
		}
		y2, err := parseEntry(f.y2, "y2")
		if err != nil {
			return nil, err
		}
		x3, err := parseEntry(f.x3, "x3")
		if err != nil {
			return nil, err
		}
		return shape.SplineProfile{
			Origin: origin,
			V1:     geometry.Point2D{Y: y1},
			V2:     geometry.Point2D{X: x2, Y: y2},
			V3:     geometry.Point2D{X: x3},
		}, nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", kind)
	}
}

func setEntry(e *widget.Entry, v float64) {
	e.SetText(strconv.FormatFloat(v, 'f', -1, 64))
}

func parseEntry(e *widget.Entry, name string) (float64, error) {
	v, err := strconv.ParseFloat(e.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, e.Text)
	}
	return v, nil
}
