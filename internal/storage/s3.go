package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service stores images in Amazon S3 (or compatible APIs). Stored paths
// use the s3://bucket/key form.
type S3Service struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Service(client *s3.Client, bucket, keyPrefix string) *S3Service {
	return &S3Service{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *S3Service) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	key := path.Join(s.keyPrefix, path.Base(name))
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func (s *S3Service) Remove(ctx context.Context, p string) error {
	key, err := s.extractKey(p)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func (s *S3Service) extractKey(location string) (string, error) {
	if !strings.HasPrefix(location, "s3://") {
		return "", fmt.Errorf("invalid s3 location")
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("s3 key missing")
	}
	if parts[0] != s.bucket {
		return "", fmt.Errorf("s3 bucket mismatch")
	}
	return parts[1], nil
}
