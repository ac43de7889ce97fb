package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded images under the media dir and resolves their
// public /media/... URL. One verb: save blob, get URL back.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store { return &Store{Dir: dir} }

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// Save writes the upload under <dir>/<prefix>/ with a uuid filename and
// returns the public URL path. The original filename is never trusted.
func (s *Store) Save(prefix string, fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	prefix = filepath.Clean(prefix)
	if prefix == "." || strings.Contains(prefix, "..") || filepath.IsAbs(prefix) {
		return "", fmt.Errorf("invalid media prefix %q", prefix)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + ext
	destDir := filepath.Join(s.Dir, prefix)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	dest, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", err
	}
	return "/media/" + prefix + "/" + name, nil
}
