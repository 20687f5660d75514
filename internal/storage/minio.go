package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// callTimeout bounds every remote call so a slow store cannot hold a request open.
const callTimeout = 10 * time.Second

// MinioStore implements Store using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists with a public-read
// policy, and returns a ready-to-use MinioStore.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicBase string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
		log.Printf("storage: created bucket %q", bucket)
	}

	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &MinioStore{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Store uploads content under a generated key inside folder. Constraint
// violations are reported before any network call is made.
func (s *MinioStore) Store(ctx context.Context, content io.Reader, size int64, contentType, folder string, c Constraints) (Object, error) {
	if !c.Allows(contentType) {
		return Object{}, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, contentType)
	}
	if c.MaxBytes > 0 && size > c.MaxBytes {
		return Object{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrPayloadTooLarge, size, c.MaxBytes)
	}

	key := NewKey(folder, contentType)

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %q: %w", key, err)
	}

	return Object{URL: s.publicBase + "/" + key, Key: key}, nil
}

// Delete removes the blob at key. A missing key is logged and treated as
// success so attachment cleanup stays idempotent.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			log.Printf("storage: delete of missing key %q, treating as no-op", key)
			return nil
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// NewKey builds a fresh object key inside folder with an extension derived
// from the content type.
func NewKey(folder, contentType string) string {
	return folder + "/" + uuid.NewString() + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
