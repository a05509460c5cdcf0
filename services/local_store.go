package services

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalURLPrefix is where the router serves locally stored uploads.
const LocalURLPrefix = "/uploads"

// LocalStore keeps uploads on disk when no remote host is configured.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Save writes the object under <dir>/<folder>/ and returns its URL path.
func (s *LocalStore) Save(obj Object) (string, error) {
	name := obj.Name + obj.Ext
	folderDir := filepath.Join(s.dir, filepath.FromSlash(obj.Folder))
	if err := os.MkdirAll(folderDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folderDir, name), obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return LocalURLPrefix + "/" + obj.Folder + "/" + name, nil
}

// Delete removes the file behind a /uploads/ URL path. A missing file is not
// an error, it just reports false.
func (s *LocalStore) Delete(urlPath string) (bool, error) {
	rel := strings.TrimPrefix(urlPath, LocalURLPrefix+"/")
	if rel == urlPath || rel == "" {
		return false, nil
	}
	cleaned := path.Clean("/" + rel)
	if cleaned == "/" || strings.Contains(rel, "..") {
		return false, nil
	}

	target := filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/")))
	if err := os.Remove(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove upload: %w", err)
	}
	return true, nil
}
