package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores generated journal cover images on any S3-compatible endpoint.
type S3 struct {
	Endpoint     string
	Region       string
	Bucket       string
	PublicDomain string

	client *s3.Client
}

func NewS3Client(endpoint, region, bucket, publicDomain, ak, sk string) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: ak, SecretAccessKey: sk,
			},
		}),
		config.WithRegion(region),
		config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL: endpoint,
			}, nil
		})))
	if err != nil {
		return nil, err
	}

	return &S3{
		Endpoint:     endpoint,
		Region:       region,
		Bucket:       bucket,
		PublicDomain: publicDomain,
		client:       s3.NewFromConfig(cfg),
	}, nil
}

// UploadCover writes raw image bytes under covers/ and returns the public URL.
func (s *S3) UploadCover(ctx context.Context, name string, raw []byte) (string, error) {
	key := path.Join("covers", name)

	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *S3) Delete(ctx context.Context, fullPath string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(fullPath, "/")),
	})
	return err
}

func (s *S3) PublicURL(key string) string {
	base := s.PublicDomain
	if base == "" {
		base = fmt.Sprintf("%s/%s", strings.TrimSuffix(s.Endpoint, "/"), s.Bucket)
	}
	return fmt.Sprintf("%s/%s", strings.TrimSuffix(base, "/"), key)
}
