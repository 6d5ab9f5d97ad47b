// Package media stores uploaded images on the local filesystem or in an S3
// compatible bucket.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// URLPrefix is the path under which filesystem uploads are served.
const URLPrefix = "/uploads/"

// DefaultMaxBytes is the default upload size limit.
const DefaultMaxBytes = 5 << 20

var (
	ErrInvalidName        = errors.New("media: invalid file name")
	ErrInvalidURL         = errors.New("media: url is not an uploaded file")
	ErrUnsupportedContent = errors.New("media: only image uploads are accepted")
	ErrNotFound           = errors.New("media: file not found")
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore persists uploaded images and returns the URL clients use to
// fetch them.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// StoredName turns a client supplied file name into the stored object
// name: the upload time in unix milliseconds, a dash, then the base name
// with spaces replaced by underscores.
func StoredName(name string, now time.Time) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), strings.ReplaceAll(name, " ", "_")), nil
}

// SniffContentType reads the head of r to detect its type and returns a
// reader that replays it. Only image types are accepted.
func SniffContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	ct := http.DetectContentType(head)
	if _, ok := allowedTypes[ct]; !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, ct)
	}
	return ct, io.MultiReader(bytes.NewReader(head), r), nil
}

// nameFromURL extracts the stored name from a URL produced by prefix.
func nameFromURL(url, prefix string) (string, error) {
	name, ok := strings.CutPrefix(url, prefix)
	if !ok || name == "" || name != path.Base(name) || strings.Contains(name, "..") || strings.Contains(name, `\`) {
		return "", ErrInvalidURL
	}
	return name, nil
}
