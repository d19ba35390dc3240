// Where: internal/infra/audit/s3.go
// What: S3 audit sink.
// Why: Archive each mutation as a JSON object under a date-partitioned key.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Putter is the subset of the S3 client the sink uses.
type S3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Recorder writes events as objects in Bucket under Prefix.
type S3Recorder struct {
	Client S3Putter
	Bucket string
	Prefix string
}

func (r S3Recorder) Record(ctx context.Context, event Event) error {
	if r.Client == nil {
		return errS3ClientNil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	key := r.objectKey(event)
	_, err = r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put audit object s3://%s/%s: %w", r.Bucket, key, err)
	}
	return nil
}

// objectKey is <prefix>/YYYY/MM/DD/<timestamp>-<operator>-<action>.json.
func (r S3Recorder) objectKey(event Event) string {
	ts := event.Time.UTC()
	name := fmt.Sprintf("%s-%s-%s.json", ts.Format("20060102T150405.000000000Z"), event.Operator, event.Action)
	return path.Join(strings.Trim(r.Prefix, "/"), ts.Format("2006/01/02"), name)
}
