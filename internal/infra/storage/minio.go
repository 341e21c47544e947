package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
	"github.com/bryanwahyu/leadscope/internal/infra/source/csvfile"
)

// Store reads the company dataset from one CSV object in a MinIO/S3 bucket.
type Store struct {
	client     *minio.Client
	bucketName string
	objectKey  string
	region     string
}

// New buat koneksi MinIO. No request is made until Load or Check.
func New(endpoint, region, bucket, object, accessKey, secretKey string, useSSL bool) (*Store, error) {
	if bucket == "" || object == "" {
		return nil, fmt.Errorf("minio source needs both bucket and object")
	}
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: cli, bucketName: bucket, objectKey: object, region: region}, nil
}

func (s *Store) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.bucketName, s.objectKey)
}

// Load downloads and decodes the object. A missing bucket or key yields
// domain.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*domain.Dataset, error) {
	obj, err := s.client.GetObject(ctx, s.bucketName, s.objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(err)
	}
	defer obj.Close()

	ds, err := csvfile.Decode(obj)
	if err != nil {
		return nil, s.wrap(err)
	}
	return ds, nil
}

// Check verifies the bucket and object exist without downloading the object.
func (s *Store) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s", domain.ErrNotFound, s.bucketName)
	}
	if _, err := s.client.StatObject(ctx, s.bucketName, s.objectKey, minio.StatObjectOptions{}); err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *Store) wrap(err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, s.Location())
	}
	return fmt.Errorf("reading %s: %w", s.Location(), err)
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return false
	}
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}
