package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config locates the bucket. Endpoint and static credentials are only
// needed for S3 compatible services such as MinIO.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string

	// PublicURL is the base URL objects are fetched from.
	PublicURL string
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps images in an S3 bucket.
type S3Store struct {
	client    objectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewS3Store builds a client from the default AWS configuration chain,
// overridden by any values set in cfg.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("media: S3 bucket is required")
	}
	if cfg.PublicURL == "" {
		return nil, errors.New("media: S3 public URL is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, cfg.Bucket, cfg.PublicURL), nil
}

func newS3Store(client objectAPI, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/") + "/",
		now:       time.Now,
	}
}

// objectKey places each upload under its own random prefix so equal names
// uploaded in the same millisecond never collide.
func objectKey(stored string) string {
	return "uploads/" + uuid.NewString() + "/" + stored
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	stored, err := StoredName(name, s.now())
	if err != nil {
		return "", err
	}
	key := objectKey(stored)

	// Uploads are size capped, and a seekable body lets the SDK sign it.
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("media: read upload: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("media: put object: %w", err)
	}
	return s.publicURL + key, nil
}

func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicURL)
	if !ok || !strings.HasPrefix(key, "uploads/") || strings.Contains(key, "..") || strings.Count(key, "/") != 2 {
		return ErrInvalidURL
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media: delete object: %w", err)
	}
	return nil
}
