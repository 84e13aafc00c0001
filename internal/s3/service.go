package s3

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/flexprice/invoicer/internal/config"
	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/flexprice/invoicer/internal/sentry"
)

const (
	defaultPresignExpiryDuration = 30 * time.Minute
)

// Service archives rendered invoice documents
type Service interface {
	UploadDocument(ctx context.Context, document *Document) error
	GetPresignedUrl(ctx context.Context, ref DocumentRef) (string, error)
	GetDocument(ctx context.Context, ref DocumentRef) ([]byte, error)
	Exists(ctx context.Context, ref DocumentRef) (bool, error)
}

type s3ServiceImpl struct {
	client    *s3.Client
	presigner *s3.PresignClient
	config    *config.S3Config
	sentry    *sentry.Service
}

// NewService returns nil when the archive is disabled; callers treat a nil
// Service as "archive not configured".
func NewService(cfg *config.Configuration, sentrySvc *sentry.Service) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	if cfg.S3.InvoiceBucketConfig.Bucket == "" {
		return nil, ierr.NewError("s3 bucket is not configured").
			WithHint("Set s3.invoice.bucket when s3 is enabled").
			Mark(ierr.ErrValidation)
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(cfg.S3.Region),
	)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to load aws config").
			Mark(ierr.ErrStorage)
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3ServiceImpl{
		config:    &cfg.S3,
		client:    client,
		presigner: s3.NewPresignClient(client),
		sentry:    sentrySvc,
	}, nil
}

func (s *s3ServiceImpl) bucket() string {
	return s.config.InvoiceBucketConfig.Bucket
}

func (s *s3ServiceImpl) key(ref DocumentRef) (string, error) {
	if ref.InvoiceID == "" {
		return "", ierr.NewError("invoice id is required").
			WithHint("Invoice id is required to address an archived document").
			Mark(ierr.ErrValidation)
	}
	return ObjectKey(s.config.InvoiceBucketConfig.KeyPrefix, ref), nil
}

func (s *s3ServiceImpl) presignExpiry() time.Duration {
	duration, err := time.ParseDuration(s.config.InvoiceBucketConfig.PresignExpiryDuration)
	if err != nil || duration <= 0 {
		return defaultPresignExpiryDuration
	}
	return duration
}

// Exists implements Service.
func (s *s3ServiceImpl) Exists(ctx context.Context, ref DocumentRef) (bool, error) {
	key, err := s.key(ref)
	if err != nil {
		return false, err
	}

	span, ctx := s.sentry.StartStorageSpan(ctx, "s3.head_object", map[string]interface{}{"key": key})
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			sentry.FinishSpan(span, nil)
			return false, nil
		}
		sentry.FinishSpan(span, err)
		return false, ierr.WithError(err).
			WithHint("Failed to check the invoice archive").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrStorage)
	}

	sentry.FinishSpan(span, nil)
	return true, nil
}

// GetPresignedUrl implements Service.
func (s *s3ServiceImpl) GetPresignedUrl(ctx context.Context, ref DocumentRef) (string, error) {
	key, err := s.key(ref)
	if err != nil {
		return "", err
	}

	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket()),
		Key:                        aws.String(key),
		ResponseContentType:        aws.String(contentTypePDF),
		ResponseContentDisposition: aws.String("inline"),
	}, s3.WithPresignExpires(s.presignExpiry()))
	if err != nil {
		return "", ierr.WithError(err).WithHint("failed to get presigned url").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrStorage)
	}

	return result.URL, nil
}

// UploadDocument implements Service.
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) error {
	if document == nil || len(document.Data) == 0 {
		return ierr.NewError("empty document").
			WithHint("Cannot archive an empty document").
			Mark(ierr.ErrValidation)
	}

	key, err := s.key(document.DocumentRef)
	if err != nil {
		return err
	}

	span, ctx := s.sentry.StartStorageSpan(ctx, "s3.put_object", map[string]interface{}{
		"key":  key,
		"size": len(document.Data),
	})
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket()),
		Key:           aws.String(key),
		Body:          bytes.NewReader(document.Data),
		ContentType:   aws.String(contentTypePDF),
		ContentLength: aws.Int64(int64(len(document.Data))),
	})
	sentry.FinishSpan(span, err)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrStorage)
	}

	return nil
}

// GetDocument implements Service.
func (s *s3ServiceImpl) GetDocument(ctx context.Context, ref DocumentRef) ([]byte, error) {
	key, err := s.key(ref)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket()),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ierr.WithError(err).
				WithHintf("Document for invoice %s is not archived", ref.InvoiceID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get document").
			WithMessagef("bucket:%s, key:%s", s.bucket(), key).
			Mark(ierr.ErrStorage)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to read document").
			Mark(ierr.ErrStorage)
	}
	return data, nil
}
