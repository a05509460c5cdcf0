package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpupo63/gaffer-portfolio-backend/services"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type upload struct {
	filename    string
	contentType string
	data        []byte
}

func (e *testEnv) upload(t *testing.T, path, field, token string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write(f.data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadConfigIsPublic(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/api/upload/config", nil, "")
	var cfg services.UploadConfig
	decodeBody(t, rec, &cfg)
	if rec.Code != http.StatusOK || cfg.CloudinaryConfigured || cfg.RemoteHost != "local" || cfg.MaxFileSizeMB != services.MaxFileSizeMB {
		t.Fatalf("unexpected config %d %+v", rec.Code, cfg)
	}
}

func TestUploadImageLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.login(t)

	expectError(t, env.upload(t, "/api/upload/image", "file", "", upload{"a.png", "image/png", pngBytes}), http.StatusUnauthorized, "")

	rec := env.upload(t, "/api/upload/image?folder=sets", "file", token, upload{"a.png", "image/png", pngBytes})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp UploadResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Filename != "a.png" || !strings.HasPrefix(resp.URL, "/uploads/sets/") {
		t.Fatalf("unexpected upload response %+v", resp)
	}

	rel := strings.TrimPrefix(resp.URL, "/uploads/")
	if _, err := os.Stat(filepath.Join(env.uploadDir, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	served := env.do(t, http.MethodGet, resp.URL, nil, "")
	if served.Code != http.StatusOK || !bytes.Equal(served.Body.Bytes(), pngBytes) {
		t.Fatalf("uploaded file not served: %d", served.Code)
	}

	deletePath := "/api/upload/file?file_url=" + url.QueryEscape(resp.URL)
	rec = env.do(t, http.MethodDelete, deletePath, nil, token)
	var deleted MutationResponse
	decodeBody(t, rec, &deleted)
	if !deleted.Success {
		t.Fatalf("expected delete to succeed: %+v", deleted)
	}
	rec = env.do(t, http.MethodDelete, deletePath, nil, token)
	decodeBody(t, rec, &deleted)
	if rec.Code != http.StatusOK || deleted.Success {
		t.Fatalf("second delete should report failure: %d %+v", rec.Code, deleted)
	}

	expectError(t, env.do(t, http.MethodDelete, "/api/upload/file", nil, token), http.StatusUnprocessableEntity, "file_url")
}

func TestUploadRejectsBadFiles(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.login(t)

	expectError(t, env.upload(t, "/api/upload/image", "file", token, upload{"doc.pdf", "application/pdf", []byte("%PDF-1.4")}), http.StatusBadRequest, "file")
	expectError(t, env.upload(t, "/api/upload/image", "file", token, upload{"fake.png", "image/png", []byte("plain text")}), http.StatusBadRequest, "file")
	expectError(t, env.upload(t, "/api/upload/image", "other", token, upload{"a.png", "image/png", pngBytes}), http.StatusUnprocessableEntity, "file")
	expectError(t, env.upload(t, "/api/upload/image?folder=../etc", "file", token, upload{"a.png", "image/png", pngBytes}), http.StatusBadRequest, "folder")
	expectError(t, env.upload(t, "/api/upload/video", "file", token, upload{"a.png", "image/png", pngBytes}), http.StatusBadRequest, "file")
}

func TestUploadVideo(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.login(t)

	rec := env.upload(t, "/api/upload/video", "file", token, upload{"reel.mp4", "video/mp4", []byte("....ftypmp42")})
	var resp UploadResponse
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || !strings.HasPrefix(resp.URL, "/uploads/gaffer-portfolio/videos/") {
		t.Fatalf("unexpected video upload %d %+v", rec.Code, resp)
	}
}

func TestUploadMultiple(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.login(t)

	rec := env.upload(t, "/api/upload/multiple", "files", token,
		upload{"a.png", "image/png", pngBytes},
		upload{"notes.txt", "text/plain", []byte("hello")},
		upload{"reel.mp4", "video/mp4", []byte("....ftypmp42")},
	)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp MultiUploadResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.SuccessCount != 2 || len(resp.Results) != 3 {
		t.Fatalf("unexpected multi upload %+v", resp)
	}
	if resp.Results[1].Success || resp.Results[1].Filename != "notes.txt" {
		t.Fatalf("text file should fail in place: %+v", resp.Results[1])
	}
	if !strings.HasPrefix(resp.Results[2].URL, "/uploads/gaffer-portfolio/videos/") {
		t.Fatalf("video stored in the wrong folder: %+v", resp.Results[2])
	}

	many := make([]upload, services.MaxFilesPerUpload+1)
	for i := range many {
		many[i] = upload{fmt.Sprintf("%d.png", i), "image/png", pngBytes}
	}
	expectError(t, env.upload(t, "/api/upload/multiple", "files", token, many...), http.StatusBadRequest, "")
}
