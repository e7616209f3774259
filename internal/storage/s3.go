package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Umesh-JNU/jeff-backend/internal/apperror"
	"github.com/Umesh-JNU/jeff-backend/internal/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// File is one uploaded payload handed to the gateway.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Uploader accepts binary payloads and returns durable URLs.
type Uploader interface {
	Store(ctx context.Context, file File, dir string) (string, error)
	StoreMany(ctx context.Context, files []File, dir string) ([]string, error)
}

// S3Uploader implements Uploader on an S3 bucket.
type S3Uploader struct {
	uploader *s3manager.Uploader
	bucket   string
}

// NewS3Uploader builds an uploader from static credentials.
func NewS3Uploader(cfg *config.Config) (*S3Uploader, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.AWSBucketRegion),
		Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKey, cfg.AWSSecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	return &S3Uploader{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.AWSBucketName,
	}, nil
}

// Store uploads a single file under dir and returns its URL.
func (u *S3Uploader) Store(ctx context.Context, file File, dir string) (string, error) {
	if dir == "" {
		dir = "uploads"
	}
	key := fmt.Sprintf("%s/%d-%s-%s", dir, time.Now().UnixMilli(), uuid.NewString(), file.Name)

	out, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file.Content),
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", apperror.Upstream("failed to store file", err)
	}
	return out.Location, nil
}

// StoreMany uploads each file under dir, failing on the first error.
func (u *S3Uploader) StoreMany(ctx context.Context, files []File, dir string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := u.Store(ctx, file, dir)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
