// Package canvas provides the cross-section preview area.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Preview displays a rendered cross-section image, scaled to fit.
type Preview struct {
	image  *fynecanvas.Image
	scroll *container.Scroll
}

// NewPreview creates an empty preview.
func NewPreview() *Preview {
	img := fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.FillMode = fynecanvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(400, 400))

	return &Preview{
		image:  img,
		scroll: container.NewScroll(img),
	}
}

// SetImage replaces the displayed image.
func (p *Preview) SetImage(img image.Image) {
	p.image.Image = img
	p.image.Refresh()
}

// Clear resets the preview to blank.
func (p *Preview) Clear() {
	p.SetImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

// Container returns the preview's root object.
func (p *Preview) Container() fyne.CanvasObject {
	return p.scroll
}
