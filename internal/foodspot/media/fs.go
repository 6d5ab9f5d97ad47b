package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FSStore keeps images in a directory and serves them under URLPrefix.
type FSStore struct {
	dir string
	now func() time.Time
}

// NewFSStore creates dir if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &FSStore{dir: dir, now: time.Now}, nil
}

func (s *FSStore) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	stored, err := StoredName(name, s.now())
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: create %s: %w", stored, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("media: write %s: %w", stored, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return URLPrefix + stored, nil
}

func (s *FSStore) Delete(_ context.Context, url string) error {
	name, err := nameFromURL(url, URLPrefix)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Handler serves stored files. Mount it under URLPrefix with the prefix
// stripped. Directory listings are disabled.
func (s *FSStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path == "/" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}
