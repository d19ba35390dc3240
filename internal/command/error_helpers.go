// Where: internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Every failure ends as one line on stderr and exit code 1.
package command

import (
	"fmt"
	"io"
)

// exitWithError prints an error message to the error writer and returns
// exit code 1 for CLI error handling.
func exitWithError(errOut io.Writer, err error) int {
	legacyUI(errOut).Warn(fmt.Sprintf("✗ %v", err))
	return 1
}
