// Where: internal/infra/interaction/interaction.go
// What: TTY detection and confirmation wiring.
// Why: Only prompt when a person is at the keyboard; scripts never block.
package interaction

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(title string) (bool, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConfirmFunc returns a confirmation callback, or nil when prompting is
// skipped (assumeYes, no confirmer, or in is not a terminal).
func ConfirmFunc(confirmer Confirmer, in *os.File, assumeYes bool) func(string) (bool, error) {
	if assumeYes || confirmer == nil || !IsTerminal(in) {
		return nil
	}
	return confirmer.Confirm
}
