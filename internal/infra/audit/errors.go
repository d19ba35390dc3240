// Where: internal/infra/audit/errors.go
// What: Shared error definitions for the audit sinks.
// Why: Ensure consistent error wrapping without dynamic error creation.
package audit

import "errors"

var (
	errDynamoClientNil = errors.New("dynamodb client is nil")
	errS3ClientNil     = errors.New("s3 client is nil")
)
