package storage

import (
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/errs"
)

// Category is one of the fixed upload folders.
type Category string

const (
	CategoryProjects     Category = "projects"
	CategoryTestimonials Category = "testimonials"
	CategoryInvoices     Category = "invoices"
)

// Categories lists every folder the store accepts.
var Categories = []Category{CategoryProjects, CategoryTestimonials, CategoryInvoices}

// PublicPrefix is where stored files are served from.
const PublicPrefix = "/uploads"

// ParseCategory maps a URL folder to its Category.
func ParseCategory(folder string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == folder {
			return c, true
		}
	}
	return "", false
}

// FileStore persists uploaded files. Implementations store name verbatim;
// callers pick the name (see RandomName).
type FileStore interface {
	Put(ctx context.Context, category Category, name string, r io.Reader, contentType string) error
	Open(ctx context.Context, category Category, name string) (io.ReadCloser, error)
}

// Save stores r under a fresh random name that keeps the extension of
// originalName and returns the public path of the stored file.
func Save(ctx context.Context, store FileStore, category Category, originalName string, r io.Reader, contentType string) (string, error) {
	name := RandomName(originalName)
	if err := store.Put(ctx, category, name, r, contentType); err != nil {
		return "", err
	}
	return PublicPath(category, name), nil
}

// SaveNamed stores r under name, replacing any previous file with that name.
func SaveNamed(ctx context.Context, store FileStore, category Category, name string, r io.Reader, contentType string) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}
	if err := store.Put(ctx, category, name, r, contentType); err != nil {
		return "", err
	}
	return PublicPath(category, name), nil
}

// RandomName returns "{uuid}{ext}" where ext is the lowercased extension of
// originalName, or "{uuid}" when it has none.
func RandomName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func PublicPath(category Category, name string) string {
	return path.Join(PublicPrefix, string(category), name)
}

// ValidName rejects names that would escape their category folder.
func ValidName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return errs.NewInvalidFieldError("filename", "must be a plain file name")
	}
	return nil
}

// IsImage reports whether a media type is an image a browser renders
// without running script. SVG is excluded.
func IsImage(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/") && mediaType != "image/svg+xml"
}

// ContentTypeFor is the media type a stored file is served as, taken from
// its extension.
func ContentTypeFor(name string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// IsImageName reports whether name would be served as an image.
func IsImageName(name string) bool {
	return IsImage(ContentTypeFor(name))
}
