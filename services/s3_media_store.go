package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
)

// S3PutObjectAPI is the part of the S3 client the media store needs.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3MediaStore uploads assets to a bucket under a key prefix.
type S3MediaStore struct {
	client        S3PutObjectAPI
	bucket        string
	prefix        string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewS3MediaStore returns a store writing to bucket. When publicBaseURL is
// empty the returned paths are root-relative ("/<prefix>/<name>").
func NewS3MediaStore(client S3PutObjectAPI, bucket, prefix, publicBaseURL string) *S3MediaStore {
	return &S3MediaStore{
		client:        client,
		bucket:        bucket,
		prefix:        strings.Trim(prefix, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        log.With().Str("component", "s3MediaStore").Str("bucket", bucket).Logger(),
	}
}

// NewS3MediaStoreFromEnv builds the S3 client from the default AWS credential
// chain.
func NewS3MediaStoreFromEnv(ctx context.Context, bucket, prefix, publicBaseURL string) (*S3MediaStore, error) {
	if bucket == "" {
		return nil, errs.NewEnvironmentVariableError("S3_BUCKET")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errs.NewConfigError("aws", err)
	}
	return NewS3MediaStore(s3.NewFromConfig(cfg), bucket, prefix, publicBaseURL), nil
}

func (s *S3MediaStore) Store(ctx context.Context, upload Upload) (Asset, error) {
	asset, err := s.store(ctx, upload)
	metrics.ObserveUpload("s3", len(upload.Data), err)
	return asset, err
}

func (s *S3MediaStore) store(ctx context.Context, upload Upload) (Asset, error) {
	contentType, ext, err := DetectMediaType(upload.Data)
	if err != nil {
		return Asset{}, err
	}

	name := newFileName(upload, ext)
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(upload.Data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(upload.Data))),
	})
	if err != nil {
		return Asset{}, errs.NewStorageError("upload media to s3", err)
	}

	asset := Asset{
		Path:         s.publicBaseURL + "/" + key,
		FileName:     name,
		OriginalName: upload.OriginalName,
		ContentType:  contentType,
		Size:         len(upload.Data),
	}
	s.logger.Debug().Str("key", key).Str("contentType", contentType).Msg("stored media")
	return asset, nil
}
