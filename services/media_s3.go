package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
)

const s3HostName = "s3"

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Host stores media in an S3 compatible bucket. Objects are served from
// publicURL, which defaults to the bucket's virtual-hosted endpoint.
type S3Host struct {
	bucket    string
	publicURL string
	api       objectAPI
}

func NewS3Host(ctx context.Context, settings config.S3Settings) (*S3Host, error) {
	if settings.Bucket == "" {
		return nil, errors.New("S3_BUCKET is required for the s3 media host")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Host(client, settings), nil
}

func newS3Host(api objectAPI, settings config.S3Settings) *S3Host {
	public := strings.TrimRight(settings.PublicURL, "/")
	if public == "" {
		if settings.Endpoint != "" {
			public = strings.TrimRight(settings.Endpoint, "/") + "/" + settings.Bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", settings.Bucket, settings.Region)
		}
	}
	return &S3Host{bucket: settings.Bucket, publicURL: public, api: api}
}

func (h *S3Host) Name() string {
	return s3HostName
}

func (h *S3Host) Upload(ctx context.Context, obj Object) (string, error) {
	key := obj.Folder + "/" + obj.Name + obj.Ext
	_, err := h.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(obj.Data),
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return h.publicURL + "/" + key, nil
}

func (h *S3Host) Owns(url string) bool {
	return strings.HasPrefix(url, h.publicURL+"/")
}

func (h *S3Host) Delete(ctx context.Context, url string) (bool, error) {
	key := strings.TrimPrefix(url, h.publicURL+"/")
	if key == "" || key == url {
		return false, nil
	}
	_, err := h.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return true, nil
}

// NewMediaHost picks the remote host from settings. A nil host means uploads
// stay on local disk.
func NewMediaHost(ctx context.Context, s config.Settings) (MediaHost, error) {
	switch {
	case s.MediaHost == s3HostName:
		return NewS3Host(ctx, s.S3)
	case s.Cloudinary.Configured():
		return NewCloudinaryHost(s.Cloudinary)
	default:
		return nil, nil
	}
}
