package integration

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
)

const (
	localStackImage  = "localstack/localstack:3.8"
	localStackRegion = "us-east-1"
)

// TestBucket is an S3 bucket served by a LocalStack container.
type TestBucket struct {
	Container *localstack.LocalStackContainer
	Client    *s3.Client
	Name      string
}

// SetupTestBucket starts LocalStack and creates an empty bucket in it.
func SetupTestBucket(t *testing.T) *TestBucket {
	t.Helper()

	ctx := context.Background()

	container, err := localstack.Run(ctx, localStackImage)
	if err != nil {
		t.Fatalf("failed to start localstack container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "4566/tcp", "http")
	if err != nil {
		t.Fatalf("failed to get localstack endpoint: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(localStackRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		t.Fatalf("failed to load aws config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	bucket := "voucher-hub-it"
	if _, err := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); err != nil {
		t.Fatalf("failed to create bucket: %v", err)
	}

	return &TestBucket{
		Container: container,
		Client:    client,
		Name:      bucket,
	}
}

// Put uploads body under key.
func (b *TestBucket) Put(t *testing.T, key string, body []byte) {
	t.Helper()

	_, err := b.Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		t.Fatalf("failed to put object %s: %v", key, err)
	}
}

// Get downloads the object stored under key.
func (b *TestBucket) Get(t *testing.T, key string) []byte {
	t.Helper()

	out, err := b.Client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
	})
	if err != nil {
		t.Fatalf("failed to get object %s: %v", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		t.Fatalf("failed to read object %s: %v", key, err)
	}
	return body
}
