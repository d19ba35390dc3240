// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/sciurus/dockhub/internal/constants"
	"github.com/sciurus/dockhub/internal/domain/registry"
)

// Getenv matches os.Getenv and lets callers substitute a fixed environment.
type Getenv func(string) string

// Trimmed returns the value of key with surrounding whitespace removed.
func Trimmed(getenv Getenv, key string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return strings.TrimSpace(getenv(key))
}

// ResolveCredentials reads DH_USERNAME then DH_PASSWORD. A missing or
// blank value is a config error naming the variable.
func ResolveCredentials(getenv Getenv) (registry.Credentials, error) {
	username := Trimmed(getenv, constants.EnvUsername)
	if username == "" {
		return registry.Credentials{}, missingVariable("username", constants.EnvUsername)
	}
	password := Trimmed(getenv, constants.EnvPassword)
	if password == "" {
		return registry.Credentials{}, missingVariable("password", constants.EnvPassword)
	}
	return registry.Credentials{Username: username, Password: password}, nil
}

func missingVariable(what, key string) error {
	msg := fmt.Sprintf("For security, you must set your %s as the variable %s in your ENV", what, key)
	return registry.NewError(registry.KindConfig, "resolve credentials", msg, nil)
}
