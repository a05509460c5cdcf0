package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rpupo63/gaffer-portfolio-backend/config"
)

const (
	cloudinaryHostName   = "cloudinary"
	cloudinaryDomain     = "res.cloudinary.com"
	imageTransformation  = "q_auto:good"
	imageDeliveredFormat = "webp"
)

var versionSegment = regexp.MustCompile(`^v\d+$`)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryHost stores media on Cloudinary. Images are transcoded to webp.
type CloudinaryHost struct {
	cloudName string
	api       cloudinaryAPI
}

func NewCloudinaryHost(settings config.CloudinarySettings) (*CloudinaryHost, error) {
	if !settings.Configured() {
		return nil, errors.New("cloudinary credentials are incomplete")
	}
	cld, err := cloudinary.NewFromParams(settings.CloudName, settings.APIKey, settings.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryHost{cloudName: settings.CloudName, api: &cld.Upload}, nil
}

func (h *CloudinaryHost) Name() string {
	return cloudinaryHostName
}

func (h *CloudinaryHost) Upload(ctx context.Context, obj Object) (string, error) {
	params := uploader.UploadParams{
		PublicID:     obj.Name,
		Folder:       obj.Folder,
		Overwrite:    api.Bool(true),
		ResourceType: string(obj.Kind),
	}
	if obj.Kind == KindImage {
		params.Format = imageDeliveredFormat
		params.Transformation = imageTransformation
	}

	res, err := h.api.Upload(ctx, bytes.NewReader(obj.Data), params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure url")
	}
	return res.SecureURL, nil
}

func (h *CloudinaryHost) Owns(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host == cloudinaryDomain && strings.HasPrefix(u.Path, "/"+h.cloudName+"/")
}

func (h *CloudinaryHost) Delete(ctx context.Context, raw string) (bool, error) {
	publicID, resourceType, ok := ParseCloudinaryURL(raw)
	if !ok {
		return false, nil
	}
	res, err := h.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return false, fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return false, fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	return res.Result == "ok", nil
}

// ParseCloudinaryURL extracts the public id and resource type from a
// delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1712/portfolio/abc.webp
// which yields "portfolio/abc" and "image".
func ParseCloudinaryURL(raw string) (publicID, resourceType string, ok bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host != cloudinaryDomain {
		return "", "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadAt := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadAt = i
			break
		}
	}
	if uploadAt < 1 || uploadAt == len(segments)-1 {
		return "", "", false
	}
	resourceType = segments[uploadAt-1]

	rest := segments[uploadAt+1:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	publicID = strings.Join(rest, "/")
	if dot := strings.LastIndex(publicID, "."); dot > strings.LastIndex(publicID, "/") {
		publicID = publicID[:dot]
	}
	if publicID == "" {
		return "", "", false
	}
	return publicID, resourceType, true
}
