// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep the brand, default endpoint, and directory layout in one place.
package meta

const (
	// Project Identity
	AppName   = "dockhub"
	EnvPrefix = "DH"

	// Registry Service
	DefaultBaseURL = "https://hub.docker.com/v2"
	DefaultOrg     = "mozilla"
	ServiceName    = "dockerhub"

	// Directory Layout
	HomeDir        = ".dockhub"
	ConfigFileName = "config.yaml"
)
