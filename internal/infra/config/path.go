// Where: internal/infra/config/path.go
// What: Config file discovery.
// Why: Resolve the config location from DH_CONFIG_DIR or the home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sciurus/dockhub/internal/constants"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/meta"
)

var userHomeDir = os.UserHomeDir

// GlobalConfigPath returns $DH_CONFIG_DIR/config.yaml, or
// ~/.dockhub/config.yaml when the variable is unset.
func GlobalConfigPath(getenv envutil.Getenv) (string, error) {
	if dir := envutil.Trimmed(getenv, constants.EnvConfigDir); dir != "" {
		return filepath.Join(dir, meta.ConfigFileName), nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}
