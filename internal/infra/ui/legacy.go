// Where: internal/infra/ui/legacy.go
// What: Plain and decorated UserInterface adapters.
// Why: Keep result lines byte-stable on stdout while diagnostics get emoji on stderr.
package ui

import (
	"fmt"
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by workflows.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewLegacyUI returns a UserInterface that prints every message as a
// bare line.
func NewLegacyUI(out io.Writer) UserInterface {
	return legacyUI{
		out:     out,
		console: New(out),
	}
}

type legacyUI struct {
	out     io.Writer
	console *Console
}

func (l legacyUI) Info(msg string) {
	fmt.Fprintln(l.out, msg)
}

func (l legacyUI) Warn(msg string) {
	fmt.Fprintln(l.out, msg)
}

func (l legacyUI) Success(msg string) {
	fmt.Fprintln(l.out, msg)
}

func (l legacyUI) Block(emoji, title string, rows []KeyValue) {
	l.console.BlockStart(emoji, title)
	for _, kv := range rows {
		l.console.Item(kv.Key, kv.Value)
	}
	l.console.BlockEnd()
}

// NewDiagnosticUI returns a UserInterface for stderr diagnostics with
// optional emoji prefixes on warnings.
func NewDiagnosticUI(out io.Writer, emojiEnabled bool) UserInterface {
	return diagnosticUI{
		out:     out,
		console: NewWithEmoji(out, emojiEnabled),
	}
}

type diagnosticUI struct {
	out     io.Writer
	console *Console
}

func (d diagnosticUI) Info(msg string) {
	fmt.Fprintln(d.out, msg)
}

func (d diagnosticUI) Warn(msg string) {
	d.console.Warn(msg)
}

func (d diagnosticUI) Success(msg string) {
	d.console.Success(msg)
}

func (d diagnosticUI) Block(emoji, title string, rows []KeyValue) {
	d.console.BlockStart(emoji, title)
	for _, kv := range rows {
		d.console.Item(kv.Key, kv.Value)
	}
	d.console.BlockEnd()
}
