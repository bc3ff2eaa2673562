package datasets

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Getter is the part of the S3 client the loader needs.
type S3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ S3Getter = (*s3.Client)(nil)

// S3Options configures NewS3Client.
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// NewS3Client builds an S3 client. Static credentials are used when an access key
// is given, otherwise the default AWS credential chain applies. A custom endpoint
// switches to path-style addressing for MinIO and similar stores.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ObjectKey is the key of a table's CSV object under prefix.
func ObjectKey(prefix, table string) string {
	return path.Join(prefix, table+".csv")
}

// LoadS3 reads <prefix>/<table>.csv for every table in TableNames from bucket.
func LoadS3(ctx context.Context, client S3Getter, bucket, prefix string) (*Store, error) {
	tables := make([]*Table, 0, len(TableNames))
	for _, name := range TableNames {
		t, err := loadS3Object(ctx, client, bucket, ObjectKey(prefix, name), name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewStore(tables...)
}

func loadS3Object(ctx context.Context, client S3Getter, bucket, key, name string) (*Table, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return ParseCSV(name, out.Body)
}
