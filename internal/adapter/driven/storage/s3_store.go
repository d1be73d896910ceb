package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/diillson/loa-audit-dashboard-go/internal/domain/entity"
	"github.com/diillson/loa-audit-dashboard-go/internal/shared/types"
)

// s3API é o subconjunto do cliente S3 usado pelo store.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps the dataset as the object <key>.json in a bucket.
type S3Store struct {
	client s3API
	bucket string
	object string
}

// NewS3Store loads the AWS configuration for profile (empty means the default
// chain) and builds the S3 client.
func NewS3Store(ctx context.Context, bucket, region, profile, key string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("%w: s3 backend needs a bucket (storage.s3_bucket or LOA_S3_BUCKET)", types.ErrUnsupportedStorage)
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}

	return newS3StoreWithClient(s3.NewFromConfig(cfg), bucket, key), nil
}

func newS3StoreWithClient(client s3API, bucket, key string) *S3Store {
	return &S3Store{client: client, bucket: bucket, object: key + ".json"}
}

func (s *S3Store) Load(ctx context.Context) ([]entity.LedgerLine, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.object),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return []entity.LedgerLine{}, nil
		}
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", s.bucket, s.object, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading s3://%s/%s: %w", s.bucket, s.object, err)
	}

	lines, ok := decodeStored(data)
	if !ok {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return lines, types.ErrDatasetDiscarded
	}
	return lines, nil
}

func (s *S3Store) Save(ctx context.Context, batchID string, lines []entity.LedgerLine) error {
	data, err := entity.MarshalLines(lines)
	if err != nil {
		return fmt.Errorf("error encoding dataset: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.object),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	if batchID != "" {
		input.Metadata = map[string]string{"batch-id": batchID}
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error writing s3://%s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}

// Clear remove o objeto. DeleteObject no S3 não falha quando o objeto não existe.
func (s *S3Store) Clear(ctx context.Context) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.object),
	})
	if err != nil {
		return fmt.Errorf("error deleting s3://%s/%s: %w", s.bucket, s.object, err)
	}
	return nil
}

func (s *S3Store) Location() string { return "s3://" + s.bucket + "/" + s.object }
