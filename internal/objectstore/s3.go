package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/justic/justic-api/internal/config"
	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/platform/logger"
)

// S3Store implements Store on top of an S3-compatible bucket.
type S3Store struct {
	client s3iface.S3API
	bucket string
	logger *slog.Logger
}

// Ensure S3Store implements Store interface
var _ Store = (*S3Store)(nil)

// NewS3Client creates an S3 client for the configured endpoint. Path-style
// addressing is forced so that MinIO endpoints work without DNS buckets.
// The transport gives up on an endpoint that accepts a request but never
// answers it; streaming responses are not cut short.
func NewS3Client(cfg config.StorageConfig) (s3iface.S3API, error) {
	sess, err := session.NewSession(&aws.Config{
		HTTPClient:       newS3HTTPClient(cfg),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(!cfg.UseSSL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage session: %w", err)
	}
	return s3.New(sess), nil
}

func newS3HTTPClient(cfg config.StorageConfig) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: cfg.UploadTimeout(),
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConnsPerHost:   16,
		},
	}
}

// NewS3Store creates a Store backed by bucket.
func NewS3Store(client s3iface.S3API, bucket string, logger *slog.Logger) *S3Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Store{
		client: client,
		bucket: bucket,
		logger: logger.With("component", "object_store", "bucket", bucket),
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("%w: head bucket %s: %w", domain.ErrStorage, s.bucket, err)
	}

	_, err = s.client.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			return nil
		}
		return fmt.Errorf("%w: create bucket %s: %w", domain.ErrStorage, s.bucket, err)
	}

	s.logger.Info("created bucket")
	return nil
}

// Put implements Store.Put
func (s *S3Store) Put(ctx context.Context, key domain.ArtifactKey, body io.ReadSeeker, size int64) error {
	if err := key.Validate(); err != nil {
		return err
	}
	name := key.ObjectName()

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(key.Kind.ContentType()),
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to upload object",
			"object", name,
			"size", size,
			"error", err)
		return fmt.Errorf("%w: put %s: %w", domain.ErrStorage, name, err)
	}

	s.logger.Debug("uploaded object", "object", name, "size", size)
	return nil
}

// Get implements Store.Get
func (s *S3Store) Get(ctx context.Context, key domain.ArtifactKey) (*domain.Artifact, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	name := key.ObjectName()

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: object %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrStorage, name, err)
	}

	contentType := key.Kind.ContentType()
	if out.ContentType != nil && *out.ContentType != "" {
		contentType = *out.ContentType
	}

	return &domain.Artifact{
		Body:        out.Body,
		ContentType: contentType,
		Size:        aws.Int64Value(out.ContentLength),
	}, nil
}

// Exists implements Store.Exists
func (s *S3Store) Exists(ctx context.Context, key domain.ArtifactKey) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}
	name := key.ObjectName()

	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: head %s: %w", domain.ErrStorage, name, err)
	}
	return true, nil
}

// ListTaskIDs implements Store.ListTaskIDs
func (s *S3Store) ListTaskIDs(ctx context.Context, owner string) ([]string, error) {
	if err := domain.ValidateIdentifier(owner); err != nil {
		return nil, err
	}

	var ids []string
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(domain.OwnerPrefix(owner)),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range page.Contents {
			if id, ok := domain.TaskIDFromObjectName(owner, aws.StringValue(obj.Key)); ok {
				ids = append(ids, id)
			}
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", domain.ErrStorage, domain.OwnerPrefix(owner), err)
	}

	return ids, nil
}

// isNotFound reports whether err is an S3 "missing key/bucket" error.
// HEAD requests carry no body, so they surface a bare "NotFound" code.
func isNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}
	var reqErr awserr.RequestFailure
	return errors.As(err, &reqErr) && reqErr.StatusCode() == 404
}
