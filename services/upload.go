package services

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	MaxFileSizeMB     = 50
	MaxFileSize       = MaxFileSizeMB * 1024 * 1024
	MaxFilesPerUpload = 10

	multiUploadConcurrency = 4
)

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

var (
	AllowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"}
	AllowedVideoTypes = []string{"video/mp4", "video/avi", "video/mov", "video/wmv", "video/flv"}

	extensions = map[string]string{
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
		"video/mp4":  ".mp4",
		"video/avi":  ".avi",
		"video/mov":  ".mov",
		"video/wmv":  ".wmv",
		"video/flv":  ".flv",
	}

	folderPattern = regexp.MustCompile(`^[A-Za-z0-9._/-]+$`)
)

// File is an uploaded payload read into memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Object is what a MediaHost stores. Name is unique and has no extension.
type Object struct {
	Kind        MediaKind
	Folder      string
	Name        string
	Ext         string
	ContentType string
	Data        []byte
}

// MediaHost is a remote asset store.
type MediaHost interface {
	Name() string
	Upload(ctx context.Context, obj Object) (string, error)
	// Owns reports whether url points at an object this host stored.
	Owns(url string) bool
	Delete(ctx context.Context, url string) (bool, error)
}

type UploadConfig struct {
	CloudinaryConfigured bool     `json:"cloudinary_configured"`
	RemoteHost           string   `json:"remote_host"`
	MaxFileSizeMB        int      `json:"max_file_size_mb"`
	AllowedImageTypes    []string `json:"allowed_image_types"`
	AllowedVideoTypes    []string `json:"allowed_video_types"`
}

type FileResult struct {
	Filename string `json:"filename"`
	Success  bool   `json:"success"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type MultiResult struct {
	Results      []FileResult `json:"results"`
	SuccessCount int          `json:"success_count"`
}

// Uploader validates media and stores it on the remote host, or on local
// disk when no host is configured.
type Uploader struct {
	host   MediaHost
	local  *LocalStore
	logger zerolog.Logger
}

func NewUploader(host MediaHost, local *LocalStore) *Uploader {
	return &Uploader{
		host:   host,
		local:  local,
		logger: log.With().Str("service", "uploader").Logger(),
	}
}

func (u *Uploader) hostName() string {
	if u.host == nil {
		return "local"
	}
	return u.host.Name()
}

func (u *Uploader) Config() UploadConfig {
	return UploadConfig{
		CloudinaryConfigured: u.hostName() == cloudinaryHostName,
		RemoteHost:           u.hostName(),
		MaxFileSizeMB:        MaxFileSizeMB,
		AllowedImageTypes:    AllowedImageTypes,
		AllowedVideoTypes:    AllowedVideoTypes,
	}
}

// UploadImage stores an image and returns its public URL.
func (u *Uploader) UploadImage(ctx context.Context, f File, folder string) (string, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return "", err
	}
	if err := checkFile(f, AllowedImageTypes); err != nil {
		return "", err
	}
	if sniffed := http.DetectContentType(f.Data); !strings.HasPrefix(sniffed, "image/") {
		e := errs.NewBadRequestError("file content is not an image")
		e.Details = fmt.Sprintf("detected %s", sniffed)
		e.Field = "file"
		return "", e
	}
	return u.store(ctx, KindImage, f, folder)
}

// UploadVideo stores a video as is and returns its public URL.
func (u *Uploader) UploadVideo(ctx context.Context, f File, folder string) (string, error) {
	folder, err := CleanFolder(folder)
	if err != nil {
		return "", err
	}
	if err := checkFile(f, AllowedVideoTypes); err != nil {
		return "", err
	}
	return u.store(ctx, KindVideo, f, folder)
}

// UploadMultiple stores up to ten files concurrently. Results keep the order
// of files; a failing file does not stop the others.
func (u *Uploader) UploadMultiple(ctx context.Context, files []File, folder string) (MultiResult, error) {
	if len(files) == 0 {
		return MultiResult{}, errs.NewBadRequestError("no files provided")
	}
	if len(files) > MaxFilesPerUpload {
		e := errs.NewBadRequestError("too many files")
		e.Details = fmt.Sprintf("maximum is %d files per upload", MaxFilesPerUpload)
		return MultiResult{}, e
	}
	folder, err := CleanFolder(folder)
	if err != nil {
		return MultiResult{}, err
	}

	results := make([]FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(multiUploadConcurrency)
	for i, f := range files {
		g.Go(func() error {
			results[i] = u.uploadOne(ctx, f, folder)
			return nil
		})
	}
	_ = g.Wait()

	out := MultiResult{Results: results}
	for _, r := range results {
		if r.Success {
			out.SuccessCount++
		}
	}
	return out, nil
}

func (u *Uploader) uploadOne(ctx context.Context, f File, folder string) FileResult {
	result := FileResult{Filename: f.Filename}

	var url string
	var err error
	switch {
	case strings.HasPrefix(f.ContentType, "image/"):
		url, err = u.UploadImage(ctx, f, folder)
	case strings.HasPrefix(f.ContentType, "video/"):
		url, err = u.UploadVideo(ctx, f, folder+"/videos")
	default:
		result.Error = "unsupported file type"
		return result
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	result.URL = url
	return result
}

// DeleteFile removes a previously uploaded file. It returns false when the
// URL is not recognized or the store did not delete anything.
func (u *Uploader) DeleteFile(ctx context.Context, url string) bool {
	if u.host != nil && u.host.Owns(url) {
		ok, err := u.host.Delete(ctx, url)
		if err != nil {
			u.logger.Error().Err(err).Str("url", url).Msg("remote delete failed")
			return false
		}
		return ok
	}
	if u.local != nil && strings.HasPrefix(url, LocalURLPrefix+"/") {
		ok, err := u.local.Delete(url)
		if err != nil {
			u.logger.Error().Err(err).Str("url", url).Msg("local delete failed")
			return false
		}
		return ok
	}
	return false
}

func (u *Uploader) store(ctx context.Context, kind MediaKind, f File, folder string) (string, error) {
	obj := Object{
		Kind:        kind,
		Folder:      folder,
		Name:        uuid.NewString(),
		Ext:         extensionFor(f.ContentType, f.Filename),
		ContentType: f.ContentType,
		Data:        f.Data,
	}

	var url string
	var err error
	if u.host != nil {
		url, err = u.host.Upload(ctx, obj)
	} else {
		url, err = u.local.Save(obj)
	}
	metrics.RecordUpload(string(kind), u.hostName(), err == nil)
	if err != nil {
		return "", errs.NewInternalErrorWithCause("upload failed", err)
	}

	u.logger.Info().Str("kind", string(kind)).Str("host", u.hostName()).Str("url", url).Msg("file uploaded")
	return url, nil
}

func checkFile(f File, allowed []string) error {
	if !contains(allowed, f.ContentType) {
		return errs.NewUnsupportedMediaTypeError(f.ContentType, allowed)
	}
	if len(f.Data) > MaxFileSize {
		return errs.NewFileTooLargeError(MaxFileSizeMB)
	}
	return nil
}

// CleanFolder normalizes an upload folder and rejects anything that could
// escape the upload root.
func CleanFolder(folder string) (string, error) {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	bad := func() error {
		e := errs.NewBadRequestError("invalid folder")
		e.Field = "folder"
		return e
	}
	if folder == "" || !folderPattern.MatchString(folder) {
		return "", bad()
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == ".." {
			return "", bad()
		}
	}
	cleaned := path.Clean(folder)
	if cleaned == "." {
		return "", bad()
	}
	return cleaned, nil
}

func extensionFor(contentType, filename string) string {
	if ext, ok := extensions[contentType]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(filename))
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
