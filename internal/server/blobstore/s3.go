package blobstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/pmdadmin/internal/common"
)

type s3PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3PutAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Store writes to AWS S3 or an S3-compatible server such as MinIO.
type S3Store struct {
	client    s3PutAPI
	bucket    string
	publicURL string
}

func NewS3Store(ctx context.Context, o Options) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(o.S3Region)}
	if o.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.S3AccessKey, o.S3SecretKey, "")))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.S3BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.S3BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: o.S3Bucket, publicURL: s3PublicBase(o)}, nil
}

func s3PublicBase(o Options) string {
	switch {
	case o.PublicBaseURL != "":
		return o.PublicBaseURL
	case o.S3BaseEndpoint != "":
		return joinURL(o.S3BaseEndpoint, o.S3Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.S3Bucket, o.S3Region)
	}
}

func (s *S3Store) PutObject(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3 put %s: %v", common.ErrorUpstream, path, err)
	}
	return joinURL(s.publicURL, path), nil
}
