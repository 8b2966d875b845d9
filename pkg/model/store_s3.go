package model

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	tserrors "github.com/wcheek/tensorstack/pkg/errors"
)

const DefaultDirMode = 0o755

type S3Options struct {
	URL       string `json:"url,omitempty"`
	Region    string `json:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	AccessKey string `json:"accessKey,omitempty"`
	SecretKey string `json:"secretKey,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

func NewDefaultS3Options() *S3Options {
	return &S3Options{
		Bucket:    "models-bucket",
		URL:       "",
		AccessKey: "",
		SecretKey: "",
		Region:    "",
		PathStyle: false,
	}
}

// S3Store reads and writes model artifacts in the model bucket. It is the
// Fetcher of the loader and the Putter of the seeder.
type S3Store struct {
	Bucket string
	Prefix string
	Client *s3.Client
}

func NewS3Store(ctx context.Context, options *S3Options) (*S3Store, error) {
	loadopts := []func(*config.LoadOptions) error{
		config.WithRegion(options.Region),
	}
	if options.AccessKey != "" {
		loadopts = append(loadopts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		))
	}
	if options.URL != "" {
		loadopts = append(loadopts, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{URL: options.URL}, nil
				},
			),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadopts...)
	if err != nil {
		return nil, err
	}
	s3cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = options.PathStyle
	})
	return &S3Store{
		Bucket: options.Bucket,
		Prefix: options.Prefix,
		Client: s3cli,
	}, nil
}

// Fetch downloads the object into the given file path. The destination is
// written in place: concurrent cold starts fetching the same immutable object
// write the same bytes.
func (m *S3Store) Fetch(ctx context.Context, key string, into string) error {
	if err := os.MkdirAll(filepath.Dir(into), DefaultDirMode); err != nil {
		return err
	}
	f, err := os.Create(into)
	if err != nil {
		return err
	}
	defer f.Close()

	getobj := &s3.GetObjectInput{
		Bucket: aws.String(m.Bucket),
		Key:    m.prefixedKey(key),
	}
	if _, err := manager.NewDownloader(m.Client).Download(ctx, f, getobj); err != nil {
		// a failed fetch must not leave a partial artifact at the cache path
		f.Close()
		os.Remove(into)
		if IsS3StorageNotFound(err) {
			return tserrors.NewModelUnknownError(key)
		}
		return tserrors.NewStorageFailureError(err)
	}
	return nil
}

// Put uploads one object.
func (m *S3Store) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	uploadobj := &s3.PutObjectInput{
		Bucket:      aws.String(m.Bucket),
		Key:         m.prefixedKey(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if _, err := manager.NewUploader(m.Client).Upload(ctx, uploadobj); err != nil {
		return tserrors.NewStorageFailureError(err)
	}
	return nil
}

func (m *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(m.Bucket),
		Key:    m.prefixedKey(key),
	})
	if err != nil {
		if IsS3StorageNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func IsS3StorageNotFound(err error) bool {
	var apie *smithyhttp.ResponseError
	if errors.As(err, &apie) {
		return apie.HTTPStatusCode() == 404
	}
	return false
}

func (m *S3Store) prefixedKey(key string) *string {
	if m.Prefix == "" {
		return aws.String(key)
	}
	return aws.String(path.Join(m.Prefix, key))
}
