package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/netriktechworks/site-backend/errs"
)

// ObjectAPI is the part of the S3 client the store needs.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps files at s3://bucket/prefix/{category}/{name}. Files are
// still served through /uploads so stored URLs don't depend on the backend.
type S3Store struct {
	client ObjectAPI
	bucket string
	prefix string
}

func NewS3Store(client ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3StoreFromEnv builds the client from the default AWS credential chain.
func NewS3StoreFromEnv(ctx context.Context, bucket, prefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, errs.NewEnvironmentVariableError("S3_BUCKET")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Store(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

func (s *S3Store) key(category Category, name string) string {
	return path.Join(s.prefix, string(category), name)
}

func (s *S3Store) Put(ctx context.Context, category Category, name string, r io.Reader, contentType string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(category, name)),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return errs.NewStorageWriteError(string(category), err)
	}
	return nil
}

func (s *S3Store) Open(ctx context.Context, category Category, name string) (io.ReadCloser, error) {
	if err := ValidName(name); err != nil {
		return nil, errs.NewNotFound("file")
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(category, name)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errs.NewNotFound("file")
		}
		return nil, errs.NewStorageReadError(PublicPath(category, name), err)
	}
	return out.Body, nil
}
