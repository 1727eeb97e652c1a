package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrObjectNotFound is returned when a delete targets a missing object
var ErrObjectNotFound = errors.New("storage object not found")

// S3Client is the subset of the S3 API the document store needs
type S3Client interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Config holds S3-compatible storage settings
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// DocumentStore uploads and removes documents in a single bucket
type DocumentStore struct {
	client    S3Client
	bucket    string
	publicURL string
}

// NewSession opens an AWS session pointed at an S3-compatible endpoint
func NewSession(cfg Config) (*session.Session, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	return session.NewSession(&aws.Config{
		Region:           aws.String(region),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
}

// NewDocumentStore creates a store backed by client
func NewDocumentStore(client S3Client, cfg Config) *DocumentStore {
	return &DocumentStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

// NewS3DocumentStore builds the production store
func NewS3DocumentStore(cfg Config) (*DocumentStore, error) {
	sess, err := NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage session: %w", err)
	}
	return NewDocumentStore(s3.New(sess), cfg), nil
}

// Upload writes data under key and returns its public URL
func (s *DocumentStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.PublicURL(key), nil
}

// Delete removes the object a public URL points at
func (s *DocumentStore) Delete(ctx context.Context, fileURL string) error {
	key, ok := s.KeyFromURL(fileURL)
	if !ok {
		return ErrObjectNotFound
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchKey, "NotFound":
				return ErrObjectNotFound
			}
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// PublicURL is {publicURL}/{bucket}/{key}
func (s *DocumentStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, strings.TrimLeft(key, "/"))
}

// KeyFromURL extracts the object key following the /{bucket}/ segment
func (s *DocumentStore) KeyFromURL(fileURL string) (string, bool) {
	marker := "/" + s.bucket + "/"
	idx := strings.Index(fileURL, marker)
	if idx < 0 {
		return "", false
	}
	key := fileURL[idx+len(marker):]
	if q := strings.IndexAny(key, "?#"); q >= 0 {
		key = key[:q]
	}
	if key == "" {
		return "", false
	}
	return key, true
}
