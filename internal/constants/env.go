// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// Credentials
	EnvUsername = "DH_USERNAME"
	EnvPassword = "DH_PASSWORD"

	// Service Overrides
	EnvBaseURL   = "DH_BASE_URL"
	EnvOrg       = "DH_ORG"
	EnvConfigDir = "DH_CONFIG_DIR"

	// Audit Sink
	EnvAuditAccessKey = "DH_AUDIT_ACCESS_KEY"
	EnvAuditSecretKey = "DH_AUDIT_SECRET_KEY"
	EnvAWSRegion      = "AWS_REGION"
)
