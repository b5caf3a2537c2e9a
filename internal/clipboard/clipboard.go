// Package clipboard carries cut/copy payloads between the context actions
// and whichever clipboard the front end uses.
package clipboard

import (
	"strings"
	"sync"

	"casper/internal/errors"
	"casper/internal/location"
	"casper/internal/log"

	sysclip "github.com/atotto/clipboard"
)

// Verb says what a paste should do with the source.
type Verb string

const (
	Cut  Verb = "cut"
	Copy Verb = "copy"
)

// Payload is a pending cut or copy.
type Payload struct {
	Verb   Verb
	Source location.Location
}

// Encode renders the payload as "verb\nuri".
func (p Payload) Encode() string {
	return string(p.Verb) + "\n" + p.Source.URI()
}

// Decode parses text produced by Encode. Any verb other than "cut" is read
// as a copy.
func Decode(text string) (Payload, error) {
	verb, uri, ok := strings.Cut(strings.TrimRight(text, "\r\n"), "\n")
	if !ok || uri == "" {
		return Payload{}, errors.NewClipboardError("malformed clipboard payload", text, errors.MalformedPayload, nil)
	}

	p := Payload{Verb: Copy}
	if Verb(strings.TrimSpace(verb)) == Cut {
		p.Verb = Cut
	}

	src, err := location.FromURI(strings.TrimSpace(uri))
	if err != nil {
		return Payload{}, errors.NewClipboardError("malformed clipboard payload", text, errors.MalformedPayload, err)
	}
	p.Source = src
	return p, nil
}

// Channel stores a payload and hands it back on request. Request delivers
// the payload to ready once the clipboard content is available.
type Channel interface {
	Store(p Payload) error
	Request(ready func(Payload, error))
}

// Backend reads and writes clipboard text.
type Backend interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// TextChannel is a Channel over a text Backend.
type TextChannel struct {
	backend Backend
}

// NewChannel wraps backend.
func NewChannel(backend Backend) *TextChannel {
	return &TextChannel{backend: backend}
}

// Store encodes p onto the backend.
func (c *TextChannel) Store(p Payload) error {
	if err := c.backend.WriteText(p.Encode()); err != nil {
		return errors.NewClipboardError("cannot write clipboard", "", errors.ClipboardUnavailable, err)
	}
	log.LogWithFields(log.F("verb", string(p.Verb)), log.F("source", p.Source.String())).Debug("clipboard stored")
	return nil
}

// Request reads the backend and decodes it for ready.
func (c *TextChannel) Request(ready func(Payload, error)) {
	text, err := c.backend.ReadText()
	if err != nil {
		ready(Payload{}, errors.NewClipboardError("cannot read clipboard", "", errors.ClipboardUnavailable, err))
		return
	}
	ready(Decode(text))
}

// System is the desktop clipboard.
type System struct{}

// Available reports whether a system clipboard tool was found.
func (System) Available() bool {
	return !sysclip.Unsupported
}

func (System) ReadText() (string, error) {
	return sysclip.ReadAll()
}

func (System) WriteText(text string) error {
	return sysclip.WriteAll(text)
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// NewBackend picks a backend by name, falling back to Memory when the
// system clipboard is missing.
func NewBackend(name string) Backend {
	if name == "memory" {
		return &Memory{}
	}
	if sys := (System{}); sys.Available() {
		return sys
	}
	log.Warn("system clipboard unavailable, using in-memory clipboard")
	return &Memory{}
}
