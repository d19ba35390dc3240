// Where: cmd/dockhub/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sciurus/dockhub/internal/command"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/interaction"
)

var newHTTPClient = func() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// buildDependencies constructs the process-wide dependencies: standard
// streams, the real environment, one HTTP client, the huh confirmation
// prompt, and the AWS-backed audit recorder factory.
func buildDependencies() command.Dependencies {
	return command.Dependencies{
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		In:          os.Stdin,
		Getenv:      os.Getenv,
		HTTPClient:  newHTTPClient(),
		Confirmer:   interaction.HuhConfirmer{},
		NewRecorder: audit.NewRecorder,
		Now:         time.Now,
	}
}
