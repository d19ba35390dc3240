// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface usage for stdout results and stderr diagnostics.
package command

import (
	"io"
	"os"

	"github.com/sciurus/dockhub/internal/infra/interaction"
	"github.com/sciurus/dockhub/internal/infra/ui"
)

func legacyUI(out io.Writer) ui.UserInterface {
	return ui.NewLegacyUI(out)
}

// diagnosticUI decorates warnings with emoji only when errOut is a terminal.
func diagnosticUI(errOut io.Writer) ui.UserInterface {
	file, ok := errOut.(*os.File)
	return ui.NewDiagnosticUI(errOut, ok && interaction.IsTerminal(file))
}
