package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSSBucket struct {
	bucket        *oss.Bucket
	publicBaseURL string
}

func NewOSSBucket(endpoint, accessKeyID, accessKeySecret, name, publicBaseURL string) (*OSSBucket, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New -> %w", err)
	}

	bucket, err := client.Bucket(name)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket(%s) -> %w", name, err)
	}

	return &OSSBucket{
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (b *OSSBucket) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}

	if err := b.bucket.PutObject(objectPath, r, opts...); err != nil {
		return fmt.Errorf("b.bucket.PutObject(%s) -> %w", objectPath, err)
	}

	return nil
}

func (b *OSSBucket) PublicURL(objectPath string) string {
	return joinURL(b.publicBaseURL, objectPath)
}

func (b *OSSBucket) Remove(ctx context.Context, objectPath string) error {
	if err := b.bucket.DeleteObject(objectPath, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("b.bucket.DeleteObject(%s) -> %w", objectPath, err)
	}

	return nil
}
