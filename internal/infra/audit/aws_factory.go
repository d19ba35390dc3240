// Where: internal/infra/audit/aws_factory.go
// What: AWS client construction for the audit sinks.
// Why: Encapsulate SDK configuration, including local endpoints and static keys.
package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sciurus/dockhub/internal/constants"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/infra/config"
)

const defaultAWSRegion = "us-east-1"

var loadAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx, optFns...)
}

// NewRecorder builds the recorders enabled in cfg. It returns Nop when
// neither a table nor a bucket is configured.
func NewRecorder(ctx context.Context, cfg config.AuditConfig, getenv envutil.Getenv) (Recorder, error) {
	if !cfg.Enabled() {
		return Nop{}, nil
	}
	awsCfg, err := awsConfigFor(ctx, cfg, getenv)
	if err != nil {
		return nil, err
	}

	var recorders Multi
	if table := strings.TrimSpace(cfg.Table); table != "" {
		client := dynamodb.NewFromConfig(awsCfg, func(options *dynamodb.Options) {
			if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
				options.BaseEndpoint = aws.String(endpoint)
			}
		})
		recorders = append(recorders, DynamoRecorder{Client: client, Table: table})
	}
	if bucket := strings.TrimSpace(cfg.Bucket); bucket != "" {
		client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
			if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
				options.BaseEndpoint = aws.String(endpoint)
				options.UsePathStyle = true
			}
		})
		recorders = append(recorders, S3Recorder{Client: client, Bucket: bucket, Prefix: cfg.Prefix})
	}
	return recorders, nil
}

// awsConfigFor resolves the region (config, then AWS_REGION, then the
// default) and uses static keys when DH_AUDIT_ACCESS_KEY/SECRET_KEY are set.
func awsConfigFor(ctx context.Context, cfg config.AuditConfig, getenv envutil.Getenv) (aws.Config, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = envutil.Trimmed(getenv, constants.EnvAWSRegion)
	}
	if region == "" {
		region = defaultAWSRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	accessKey := envutil.Trimmed(getenv, constants.EnvAuditAccessKey)
	secretKey := envutil.Trimmed(getenv, constants.EnvAuditSecretKey)
	if accessKey != "" && secretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
		opts = append(opts, awsconfig.WithCredentialsProvider(creds))
	}

	awsCfg, err := loadAWSConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}
