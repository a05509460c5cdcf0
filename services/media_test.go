package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
)

func TestParseCloudinaryURL(t *testing.T) {
	cases := []struct {
		url, id, kind string
		ok            bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712/portfolio/abc.webp", "portfolio/abc", "image", true},
		{"https://res.cloudinary.com/demo/video/upload/portfolio/videos/clip.mp4", "portfolio/videos/clip", "video", true},
		{"https://res.cloudinary.com/demo/image/upload/v99/abc", "abc", "image", true},
		{"https://res.cloudinary.com/demo/image/upload/", "", "", false},
		{"https://example.com/demo/image/upload/v1/abc.png", "", "", false},
		{"/uploads/portfolio/abc.png", "", "", false},
	}
	for _, tc := range cases {
		id, kind, ok := ParseCloudinaryURL(tc.url)
		if id != tc.id || kind != tc.kind || ok != tc.ok {
			t.Errorf("ParseCloudinaryURL(%q) = %q, %q, %v", tc.url, id, kind, ok)
		}
	}
}

type fakeCloudinary struct {
	uploadParams  uploader.UploadParams
	destroyParams uploader.DestroyParams
	destroyResult string
}

func (f *fakeCloudinary) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = params
	return &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/" + params.ResourceType + "/upload/v1/" + params.Folder + "/" + params.PublicID + ".webp",
	}, nil
}

func (f *fakeCloudinary) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = params
	return &uploader.DestroyResult{Result: f.destroyResult}, nil
}

func TestCloudinaryHost(t *testing.T) {
	fake := &fakeCloudinary{destroyResult: "ok"}
	host := &CloudinaryHost{cloudName: "demo", api: fake}
	ctx := context.Background()

	url, err := host.Upload(ctx, Object{Kind: KindImage, Folder: "portfolio", Name: "abc", Data: pngBytes})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	p := fake.uploadParams
	if p.Format != "webp" || p.Transformation != "q_auto:good" || p.ResourceType != "image" || p.PublicID != "abc" {
		t.Fatalf("unexpected upload params %+v", p)
	}
	if p.Overwrite == nil || !*p.Overwrite {
		t.Fatalf("overwrite not set")
	}
	if !host.Owns(url) {
		t.Fatalf("host does not recognize its own url %q", url)
	}

	ok, err := host.Delete(ctx, url)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if fake.destroyParams.PublicID != "portfolio/abc" || fake.destroyParams.ResourceType != "image" {
		t.Fatalf("unexpected destroy params %+v", fake.destroyParams)
	}

	fake.destroyResult = "not found"
	if ok, _ := host.Delete(ctx, url); ok {
		t.Fatalf("delete reported success for a missing asset")
	}
}

func TestCloudinaryHostVideoIsNotTranscoded(t *testing.T) {
	fake := &fakeCloudinary{}
	host := &CloudinaryHost{cloudName: "demo", api: fake}
	if _, err := host.Upload(context.Background(), Object{Kind: KindVideo, Folder: "reel", Name: "v"}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if fake.uploadParams.Format != "" || fake.uploadParams.ResourceType != "video" {
		t.Fatalf("unexpected params %+v", fake.uploadParams)
	}
}

type failingCloudinary struct{ fakeCloudinary }

func (f *failingCloudinary) Upload(context.Context, interface{}, uploader.UploadParams) (*uploader.UploadResult, error) {
	return &uploader.UploadResult{Error: api.ErrorResp{Message: "invalid signature"}}, nil
}

func TestCloudinaryHostReportsAPIError(t *testing.T) {
	host := &CloudinaryHost{cloudName: "demo", api: &failingCloudinary{}}
	if _, err := host.Upload(context.Background(), Object{Kind: KindImage, Name: "x"}); err == nil {
		t.Fatalf("expected error from api error response")
	}
}

type fakeS3 struct {
	put    *s3.PutObjectInput
	delete *s3.DeleteObjectInput
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.delete = in
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3Host(t *testing.T) {
	fake := &fakeS3{}
	host := newS3Host(fake, config.S3Settings{Bucket: "media", Region: "sa-east-1"})
	ctx := context.Background()

	url, err := host.Upload(ctx, Object{Folder: "portfolio", Name: "abc", Ext: ".png", ContentType: "image/png", Data: pngBytes})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://media.s3.sa-east-1.amazonaws.com/portfolio/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(fake.put.Key) != "portfolio/abc.png" || aws.ToString(fake.put.ContentType) != "image/png" {
		t.Fatalf("unexpected put %+v", fake.put)
	}

	if !host.Owns(url) || host.Owns("https://res.cloudinary.com/demo/image/upload/x.png") {
		t.Fatalf("ownership check wrong")
	}
	ok, err := host.Delete(ctx, url)
	if err != nil || !ok || aws.ToString(fake.delete.Key) != "portfolio/abc.png" {
		t.Fatalf("delete: %v %v %+v", ok, err, fake.delete)
	}

	fake.err = errors.New("denied")
	if _, err := host.Upload(ctx, Object{Folder: "f", Name: "n"}); err == nil {
		t.Fatalf("expected put error")
	}
}

func TestS3HostCustomEndpoint(t *testing.T) {
	host := newS3Host(&fakeS3{}, config.S3Settings{Bucket: "media", Endpoint: "http://localhost:9000/"})
	if host.publicURL != "http://localhost:9000/media" {
		t.Fatalf("unexpected public url %q", host.publicURL)
	}
	host = newS3Host(&fakeS3{}, config.S3Settings{Bucket: "media", PublicURL: "https://cdn.example.com/"})
	if host.publicURL != "https://cdn.example.com" {
		t.Fatalf("unexpected public url %q", host.publicURL)
	}
}

func TestNewMediaHostLocalFallback(t *testing.T) {
	host, err := NewMediaHost(context.Background(), config.Settings{})
	if err != nil || host != nil {
		t.Fatalf("expected no remote host, got %v %v", host, err)
	}
}
