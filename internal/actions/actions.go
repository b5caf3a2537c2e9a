// Package actions implements the context-menu operations on the selected
// entry: open, open with, cut, copy, paste, move to and delete.
package actions

import (
	"fmt"

	"casper/internal/clipboard"
	"casper/internal/errors"
	"casper/internal/fsys"
	"casper/internal/listing"
	"casper/internal/location"
	"casper/internal/log"
)

// Navigator is the part of navigation the actions drive.
type Navigator interface {
	NavigateTo(loc location.Location) error
	Current() location.Location
}

// Refresher reloads the current listing.
type Refresher interface {
	Refresh() (listing.Listing, error)
}

// Prompter shows notices and asks the user questions. Answers arrive
// through callbacks on the UI thread.
type Prompter interface {
	ShowError(title string, err error)
	ShowInfo(title, message string)
	Confirm(title, message string, answer func(bool))
	ChooseDirectory(start location.Location, chosen func(location.Location, bool))
	ChooseApp(apps []fsys.App, chosen func(fsys.App, bool))
}

// Dispatcher runs actions against the selected entry. Successful actions
// clear the selection; failed ones keep it so the user can retry. Delete
// always clears it before trashing.
type Dispatcher struct {
	fs       fsys.FS
	nav      Navigator
	list     Refresher
	clip     clipboard.Channel
	prompt   Prompter
	selected location.Location
}

// NewDispatcher wires a Dispatcher.
func NewDispatcher(fs fsys.FS, nav Navigator, list Refresher, clip clipboard.Channel, prompt Prompter) *Dispatcher {
	return &Dispatcher{
		fs:     fs,
		nav:    nav,
		list:   list,
		clip:   clip,
		prompt: prompt,
	}
}

// SetPrompter replaces the prompter, e.g. once the window exists.
func (d *Dispatcher) SetPrompter(p Prompter) {
	d.prompt = p
}

// Select makes loc the selected entry.
func (d *Dispatcher) Select(loc location.Location) {
	d.selected = loc
}

// SelectEntry selects the child called name of the current location.
func (d *Dispatcher) SelectEntry(name string) {
	d.selected = d.nav.Current().Child(name)
}

// Selected returns the selected entry, if any.
func (d *Dispatcher) Selected() (location.Location, bool) {
	return d.selected, !d.selected.IsZero()
}

// Clear drops the selection.
func (d *Dispatcher) Clear() {
	d.selected = location.Location{}
}

// Activate opens loc: directories are navigated into, anything else is
// handed to the default application.
func (d *Dispatcher) Activate(loc location.Location) error {
	kind, err := d.fs.QueryKind(loc)
	if err != nil {
		d.prompt.ShowError("Cannot open", err)
		return err
	}
	if kind == fsys.Directory {
		if err := d.nav.NavigateTo(loc); err != nil {
			d.prompt.ShowError("Cannot open folder", err)
			return err
		}
		return nil
	}
	if err := d.fs.LaunchDefault(loc); err != nil {
		log.LogWithError(err).Warn("launch failed")
		d.prompt.ShowError("Error opening file", err)
		return err
	}
	return nil
}

// Open activates the selected entry.
func (d *Dispatcher) Open() error {
	target, ok := d.Selected()
	if !ok {
		return nil
	}
	if err := d.Activate(target); err != nil {
		return err
	}
	d.Clear()
	return nil
}

// CanOpenWith reports whether Open With applies to the selection.
func (d *Dispatcher) CanOpenWith() bool {
	target, ok := d.Selected()
	if !ok {
		return false
	}
	kind, err := d.fs.QueryKind(target)
	return err == nil && kind != fsys.Directory
}

// OpenWith lets the user pick an application for the selected entry.
func (d *Dispatcher) OpenWith() error {
	target, ok := d.Selected()
	if !ok {
		return nil
	}
	contentType, err := d.fs.QueryContentType(target)
	if err != nil {
		d.prompt.ShowError("Open With", err)
		return err
	}
	apps, err := d.fs.AppsForType(contentType)
	if err != nil {
		d.prompt.ShowError("Open With", err)
		return err
	}
	if len(apps) == 0 {
		d.prompt.ShowInfo("Open With", "No applications found for this file type.")
		return nil
	}

	d.prompt.ChooseApp(apps, func(app fsys.App, ok bool) {
		if !ok {
			d.Clear()
			return
		}
		if err := d.fs.Launch(app, target); err != nil {
			log.LogWithError(err).Warnf("cannot launch %s", app.ID)
			d.prompt.ShowError("Error launching application", err)
			return
		}
		d.Clear()
	})
	return nil
}

// Cut puts the selected entry on the clipboard for moving.
func (d *Dispatcher) Cut() error {
	return d.store(clipboard.Cut)
}

// Copy puts the selected entry on the clipboard for copying.
func (d *Dispatcher) Copy() error {
	return d.store(clipboard.Copy)
}

func (d *Dispatcher) store(verb clipboard.Verb) error {
	target, ok := d.Selected()
	if !ok {
		return nil
	}
	if err := d.clip.Store(clipboard.Payload{Verb: verb, Source: target}); err != nil {
		d.prompt.ShowError("Clipboard", err)
		return err
	}
	log.LogWithFields(log.F("verb", string(verb)), log.F("path", target.String())).Info("stored on clipboard")
	d.Clear()
	return nil
}

// Paste requests the clipboard and pastes it into the current location.
// done, if set, receives the outcome.
func (d *Dispatcher) Paste(done func(error)) {
	d.clip.Request(func(p clipboard.Payload, err error) {
		err = d.PastePayload(p, err)
		if done != nil {
			done(err)
		}
	})
}

// PastePayload moves or copies the payload's source into the current
// location under its own name. Malformed payloads are ignored.
func (d *Dispatcher) PastePayload(p clipboard.Payload, readErr error) error {
	if readErr != nil {
		if errors.IsMalformedPayload(readErr) {
			log.LogWithError(readErr).Debug("ignoring clipboard content")
			return nil
		}
		d.prompt.ShowError("Failed to paste", readErr)
		return readErr
	}

	current := d.nav.Current()
	if current.IsVirtual() {
		err := errors.NewFileError("cannot paste here", current.String(), errors.InvalidPath, nil)
		d.prompt.ShowError("Failed to paste", err)
		return err
	}

	dst := current.Child(p.Source.Base())
	var err error
	switch p.Verb {
	case clipboard.Cut:
		err = d.fs.Move(p.Source, dst)
	default:
		err = d.fs.Copy(p.Source, dst)
	}
	if err != nil {
		log.LogWithError(err).Warnf("paste (%s) failed", p.Verb)
		d.prompt.ShowError("Failed to paste", err)
		return err
	}

	d.refresh()
	return nil
}

// MoveTo asks for a destination folder and moves the selected entry there.
func (d *Dispatcher) MoveTo() error {
	if _, ok := d.Selected(); !ok {
		return nil
	}
	d.prompt.ChooseDirectory(d.nav.Current(), func(dir location.Location, ok bool) {
		if !ok {
			d.Clear()
			return
		}
		_ = d.MoveInto(dir)
	})
	return nil
}

// MoveInto moves the selected entry into dir.
func (d *Dispatcher) MoveInto(dir location.Location) error {
	target, ok := d.Selected()
	if !ok {
		return nil
	}
	if err := d.fs.Move(target, dir.Child(target.Base())); err != nil {
		log.LogWithError(err).Warn("move failed")
		d.prompt.ShowError("Failed to move file", err)
		return err
	}
	d.refresh()
	return nil
}

// Delete asks for confirmation and moves the selected entry to the trash.
func (d *Dispatcher) Delete() error {
	target, ok := d.Selected()
	if !ok {
		return nil
	}
	msg := fmt.Sprintf("Are you sure you want to move '%s' to trash?", target.Base())
	d.prompt.Confirm("Confirm Delete", msg, func(yes bool) {
		d.Clear()
		if !yes {
			return
		}
		if err := d.fs.Trash(target); err != nil {
			log.LogWithError(err).Warn("trash failed")
			d.prompt.ShowError("Failed to delete file", err)
			return
		}
		d.refresh()
	})
	return nil
}

// refresh reloads the listing after a mutation and drops the selection.
func (d *Dispatcher) refresh() {
	d.Clear()
	if _, err := d.list.Refresh(); err != nil {
		d.prompt.ShowError("Cannot refresh", err)
	}
}
