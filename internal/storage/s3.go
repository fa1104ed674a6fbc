// Package storage wraps the S3-compatible object store that holds generated
// images. Objects are publicly readable; the service only ever writes.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/outfitoo/outfitoo/internal/config"
)

// s3API is the slice of the S3 client this package uses, for testability.
type s3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ErrNotConfigured is returned when uploads are attempted without complete
// storage credentials.
var ErrNotConfigured = errors.New("object storage not configured")

// Client uploads blobs and derives their public URLs.
type Client struct {
	cfg    config.S3Config
	client s3API
}

// New creates a storage client. With incomplete credentials the client is
// still returned but every Upload fails with ErrNotConfigured.
func New(cfg config.S3Config) *Client {
	c := &Client{cfg: cfg}
	if cfg.Configured() {
		c.client = newS3Client(cfg)
	}
	return c
}

func newS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Upload writes data under key with the given content type.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// PublicURL returns the dereferenceable URL for a stored key. A configured
// public base URL (CDN or bucket website) wins; otherwise the path-style
// endpoint URL is used.
func (c *Client) PublicURL(key string) string {
	if c.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(c.cfg.PublicBaseURL, "/") + "/" + key
	}
	endpoint := strings.TrimSuffix(c.cfg.Endpoint, "/")
	if endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.cfg.Bucket, c.cfg.Region, key)
	}
	return fmt.Sprintf("%s/%s/%s", endpoint, c.cfg.Bucket, key)
}
