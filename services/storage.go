package services

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileStorage stores an uploaded document and returns a public reference
// to it. Prescription uploads go through this contract.
type FileStorage interface {
	Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// LocalFileStorage writes uploads to a directory served as static files.
// Used in development.
type LocalFileStorage struct {
	dir     string
	baseURL string
}

func NewLocalFileStorage(dir, baseURL string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalFileStorage) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := uniqueFilename(filename)

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/uploads/%s", s.baseURL, name), nil
}

// S3FileStorage stores uploads in an S3 bucket.
type S3FileStorage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3FileStorage(cfg sdkaws.Config, bucket, region string) *S3FileStorage {
	return &S3FileStorage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (s *S3FileStorage) Store(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := "prescriptions/" + uniqueFilename(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func uniqueFilename(original string) string {
	sanitized := strings.ReplaceAll(filepath.Base(original), " ", "-")
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), sanitized)
}
