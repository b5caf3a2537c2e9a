//go:build !nogui

package gui

import (
	"fmt"

	"casper/internal/fsys"
	"casper/internal/location"
	"casper/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	log.LogWithError(err).Error(title)
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, a.mainWindow)
}

// Confirm asks a yes/no question; answer runs with the state lock held.
func (a *App) Confirm(title, message string, answer func(bool)) {
	dialog.ShowConfirm(title, message, func(ok bool) {
		a.do(func() { answer(ok) })
	}, a.mainWindow)
}

// ChooseDirectory opens a folder chooser starting at start.
func (a *App) ChooseDirectory(start location.Location, chosen func(location.Location, bool)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		a.do(func() {
			if err != nil {
				a.ShowError("Move To", err)
				chosen(location.Location{}, false)
				return
			}
			if uri == nil {
				chosen(location.Location{}, false)
				return
			}
			chosen(location.FromPath(uri.Path()), true)
		})
	}, a.mainWindow)

	if !start.IsVirtual() {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start.Path())); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

// ChooseApp lists apps and lets the user pick one.
func (a *App) ChooseApp(apps []fsys.App, chosen func(fsys.App, bool)) {
	selected := -1
	list := widget.NewList(
		func() int { return len(apps) },
		func() fyne.CanvasObject { return widget.NewLabel("application name") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(apps[id].Name)
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }
	if len(apps) > 0 {
		list.Select(0)
	}

	d := dialog.NewCustomConfirm("Open With", "Open", "Cancel", list, func(ok bool) {
		a.do(func() {
			if !ok || selected < 0 || selected >= len(apps) {
				chosen(fsys.App{}, false)
				return
			}
			chosen(apps[selected], true)
		})
	}, a.mainWindow)
	d.Resize(fyne.NewSize(360, 320))
	d.Show()
}
