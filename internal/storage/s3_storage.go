package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage uploads photos to a bucket under barber_images/ and returns their
// public URL.
type S3Storage struct {
	client  S3API
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(ctx context.Context, region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// Static keys when given, otherwise the default credential chain.
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			logger.Warn("Falling back to region-only AWS config", logger.Fields{
				"error": err.Error(),
			})
			cfg = aws.Config{Region: region}
		}
	}

	return NewS3StorageWithClient(s3.NewFromConfig(cfg), bucket, region, baseURL)
}

func NewS3StorageWithClient(client S3API, bucket, region, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *S3Storage) key(name string) string {
	return PhotoDir + "/" + name
}

// URL returns the public URL for an object key.
func (s *S3Storage) URL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	name = SafeName(name)
	if name == "" {
		return "", fmt.Errorf("invalid photo name")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	logger.Debug("Photo uploaded to S3", logger.Fields{
		"bucket": s.bucket,
		"key":    s.key(name),
	})
	return s.URL(s.key(name)), nil
}

// Delete removes the object behind a URL returned by Save.
func (s *S3Storage) Delete(ctx context.Context, stored string) error {
	prefix := s.URL(PhotoDir + "/")
	if !strings.HasPrefix(stored, prefix) {
		return fmt.Errorf("photo path %q is not managed by this bucket", stored)
	}
	key := PhotoDir + "/" + strings.TrimPrefix(stored, prefix)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo from S3: %w", err)
	}
	return nil
}
