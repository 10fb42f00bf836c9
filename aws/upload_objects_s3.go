package s3

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/config"
)

// Uploader archives raw question files in an S3 bucket.
type Uploader struct {
	api    s3manageriface.UploaderAPI
	bucket string
	now    func() time.Time
}

func CreateSession(cfg config.AWSConfig) (*session.Session, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKeyID != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.AccessKeySecret, ""))
	}
	return session.NewSession(awsCfg)
}

func NewUploader(cfg config.AWSConfig) (*Uploader, error) {
	if cfg.UploadBucket == "" {
		return nil, fmt.Errorf("upload bucket is required")
	}
	sess, err := CreateSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return NewUploaderWithAPI(s3manager.NewUploader(sess), cfg.UploadBucket), nil
}

func NewUploaderWithAPI(api s3manageriface.UploaderAPI, bucket string) *Uploader {
	return &Uploader{api: api, bucket: bucket, now: time.Now}
}

// ObjectKey places uploads of a subject under uploads/<subject>/<unix nanos>.json.
func ObjectKey(subject primitive.ObjectID, at time.Time) string {
	return fmt.Sprintf("uploads/%s/%d.json", subject.Hex(), at.UnixNano())
}

func (u *Uploader) ArchiveUpload(ctx context.Context, subject primitive.ObjectID, data []byte) (string, error) {
	key := ObjectKey(subject, u.now())
	if err := u.UploadObject(ctx, key, data, "application/json"); err != nil {
		return "", err
	}
	return key, nil
}

func (u *Uploader) UploadObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.api.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s to %s: %w", key, u.bucket, err)
	}

	log.Printf("Successfully uploaded %q to %q", key, u.bucket)
	return nil
}
