package app

import (
	"casper/internal/fsys"
	"casper/internal/location"
	"casper/internal/log"
)

// HeadlessPrompter logs notices and declines every question. It serves
// one-shot commands that have no dialogs.
type HeadlessPrompter struct{}

func (HeadlessPrompter) ShowError(title string, err error) {
	log.LogWithError(err).Error(title)
}

func (HeadlessPrompter) ShowInfo(title, message string) {
	log.LogWithFields(log.F("title", title)).Info(message)
}

func (HeadlessPrompter) Confirm(title, message string, answer func(bool)) {
	log.LogWithFields(log.F("title", title)).Warnf("declined: %s", message)
	answer(false)
}

func (HeadlessPrompter) ChooseDirectory(_ location.Location, chosen func(location.Location, bool)) {
	chosen(location.Location{}, false)
}

func (HeadlessPrompter) ChooseApp(_ []fsys.App, chosen func(fsys.App, bool)) {
	chosen(fsys.App{}, false)
}
