//go:build !nogui

package gui

import (
	"casper/internal/listing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// entryRow renders one entry in either view and turns pointer gestures into
// selection, activation and context-menu requests.
type entryRow struct {
	widget.BaseWidget

	icon    *widget.Icon
	name    *widget.Label
	size    *widget.Label
	time    *widget.Label
	content fyne.CanvasObject

	id             int
	onTapped       func(id int)
	onDoubleTapped func(id int)
	onSecondary    func(id int, at fyne.Position)
}

func newListRow() *entryRow {
	r := &entryRow{
		icon: widget.NewIcon(nil),
		name: widget.NewLabel(""),
		size: widget.NewLabel(""),
		time: widget.NewLabel(""),
	}
	r.name.Truncation = fyne.TextTruncateEllipsis
	r.content = container.NewBorder(nil, nil, r.icon, container.NewHBox(r.size, r.time), r.name)
	r.ExtendBaseWidget(r)
	return r
}

func newGridCell() *entryRow {
	r := &entryRow{
		icon: widget.NewIcon(nil),
		name: widget.NewLabel(""),
	}
	r.name.Alignment = fyne.TextAlignCenter
	r.name.Truncation = fyne.TextTruncateEllipsis
	r.content = container.NewBorder(nil, r.name, nil, nil, container.NewCenter(container.NewGridWrap(fyne.NewSize(48, 48), r.icon)))
	r.ExtendBaseWidget(r)
	return r
}

func (r *entryRow) set(id int, e listing.Entry) {
	r.id = id
	r.icon.SetResource(entryIcon(e))
	r.name.SetText(e.Name)
	r.name.TextStyle.Italic = e.Hidden
	if r.size != nil {
		r.size.SetText(e.SizeDisplay)
		r.time.SetText(e.ModifiedDisplay)
	}
}

func (r *entryRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.content)
}

func (r *entryRow) Tapped(*fyne.PointEvent) {
	if r.onTapped != nil {
		r.onTapped(r.id)
	}
}

func (r *entryRow) DoubleTapped(*fyne.PointEvent) {
	if r.onDoubleTapped != nil {
		r.onDoubleTapped(r.id)
	}
}

func (r *entryRow) TappedSecondary(e *fyne.PointEvent) {
	if r.onSecondary != nil {
		r.onSecondary(r.id, e.AbsolutePosition)
	}
}
