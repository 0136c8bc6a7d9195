// Package images resolves catalog image handles to files the client can load.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileResolver looks for <dir>/<handle>.png and serves it under urlPrefix.
type FileResolver struct {
	dir       string
	urlPrefix string
}

// NewFileResolver creates a resolver for images stored in dir.
func NewFileResolver(dir, urlPrefix string) *FileResolver {
	return &FileResolver{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

// Resolve returns the image URL for handle when the file exists.
func (r *FileResolver) Resolve(handle string) (string, bool) {
	if handle == "" || strings.ContainsAny(handle, `/\`) || strings.Contains(handle, "..") {
		return "", false
	}
	filename := handle + ".png"
	info, err := os.Stat(filepath.Join(r.dir, filename))
	if err != nil || info.IsDir() {
		return "", false
	}
	return fmt.Sprintf("%s/%s", r.urlPrefix, filename), true
}

// Headless is used when no images are deployed; every handle is missing.
type Headless struct{}

func (Headless) Resolve(string) (string, bool) { return "", false }
