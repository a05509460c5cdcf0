package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rpupo63/gaffer-portfolio-backend/errs"
	"github.com/rpupo63/gaffer-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultImageFolder = "gaffer-portfolio"
	defaultVideoFolder = "gaffer-portfolio/videos"

	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *services.Uploader
}

func newUploadHandler(uploader *services.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

func (h uploadHandler) getConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.uploader.Config())
	}
}

func (h uploadHandler) uploadImage() http.HandlerFunc {
	return h.uploadSingle(defaultImageFolder, "Image uploaded successfully", h.uploader.UploadImage)
}

func (h uploadHandler) uploadVideo() http.HandlerFunc {
	return h.uploadSingle(defaultVideoFolder, "Video uploaded successfully", h.uploader.UploadVideo)
}

type uploadFunc func(ctx context.Context, f services.File, folder string) (string, error)

func (h uploadHandler) uploadSingle(defaultFolder, message string, upload uploadFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, services.MaxFileSize+multipartOverhead); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["file"]
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewValidationError("file", "field required"))
			return
		}
		file, err := readPart(headers[0])
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		url, err := upload(r.Context(), file, folderParam(r, defaultFolder))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, UploadResponse{
			Success:  true,
			Message:  message,
			URL:      url,
			Filename: file.Filename,
		})
	}
}

func (h uploadHandler) uploadMultiple() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(services.MaxFilesPerUpload)*services.MaxFileSize + multipartOverhead
		if err := parseMultipart(w, r, limit); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["files"]
		if len(headers) > services.MaxFilesPerUpload {
			h.responder.WriteError(w, errs.NewBadRequestError(fmt.Sprintf("maximum %d files per upload", services.MaxFilesPerUpload)))
			return
		}
		files := make([]services.File, 0, len(headers))
		for _, fh := range headers {
			file, err := readPart(fh)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			files = append(files, file)
		}

		result, err := h.uploader.UploadMultiple(r.Context(), files, folderParam(r, defaultImageFolder))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, MultiUploadResponse{
			Success:      result.SuccessCount > 0,
			Message:      fmt.Sprintf("%d of %d files uploaded successfully", result.SuccessCount, len(files)),
			Results:      result.Results,
			SuccessCount: result.SuccessCount,
		})
	}
}

func (h uploadHandler) deleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileURL := r.URL.Query().Get("file_url")
		if fileURL == "" {
			h.responder.WriteError(w, errs.NewValidationError("file_url", "field required"))
			return
		}

		if !h.uploader.DeleteFile(r.Context(), fileURL) {
			h.responder.WriteJSON(w, MutationResponse{Success: false, Message: "File not found or could not be deleted"})
			return
		}
		h.responder.WriteJSON(w, MutationResponse{Success: true, Message: "File deleted successfully"})
	}
}

func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewFileTooLargeError(services.MaxFileSizeMB)
		}
		return errs.NewMalformedPayloadError("multipart", err)
	}
	return nil
}

func readPart(fh *multipart.FileHeader) (services.File, error) {
	if fh.Size > services.MaxFileSize {
		return services.File{}, errs.NewFileTooLargeError(services.MaxFileSizeMB)
	}
	f, err := fh.Open()
	if err != nil {
		return services.File{}, errs.NewMalformedPayloadError("multipart", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.File{}, errs.NewMalformedPayloadError("multipart", err)
	}
	return services.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func folderParam(r *http.Request, def string) string {
	if folder := r.URL.Query().Get("folder"); folder != "" {
		return folder
	}
	return def
}
