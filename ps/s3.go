package ps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Config holds the bucket location and optional static credentials for
// an S3-backed blob store. Endpoint supports S3-compatible services.
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// S3API is the subset of the S3 client the blob store calls. Tests supply
// a stub; production passes *s3.Client.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3BlobStore keeps the database document as one object in a bucket.
type S3BlobStore struct {
	client S3API
	bucket string
	key    string
}

// NewS3BlobStore builds a client from cfg and returns a store addressing
// s3://cfg.Bucket/cfg.Key.
func NewS3BlobStore(ctx context.Context, cfg S3Config) (*S3BlobStore, error) {
	if cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3 blob store requires bucket and key")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // For S3-compatible services
		})
	}

	client := s3.NewFromConfig(awsCfg, clientOpts...)
	return NewS3BlobStoreWithClient(client, cfg.Bucket, cfg.Key), nil
}

func NewS3BlobStoreWithClient(client S3API, bucket, key string) *S3BlobStore {
	return &S3BlobStore{client: client, bucket: bucket, key: key}
}

func (store *S3BlobStore) Load() ([]byte, bool, error) {
	ctx := context.Background()

	resp, err := store.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(store.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (store *S3BlobStore) Save(data []byte) error {
	_, err := store.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(store.key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (store *S3BlobStore) Delete() error {
	_, err := store.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(store.key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}
