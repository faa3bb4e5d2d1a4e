package services

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

// Naming selects how a stored asset's file name is built.
type Naming int

const (
	// NamingUUID produces "<uuid>.<ext>".
	NamingUUID Naming = iota
	// NamingUUIDOriginal produces "<uuid>-<original name>".
	NamingUUIDOriginal
)

// AllowedMediaTypes is the upload allow-list.
var AllowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"video/mp4",
	"video/webm",
}

// Upload is one file handed to a MediaStore.
type Upload struct {
	Data         []byte
	OriginalName string
	Naming       Naming
}

// Asset describes a stored file. Path is what projects reference.
type Asset struct {
	Path         string `json:"filePath"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	ContentType  string `json:"contentType"`
	Size         int    `json:"size"`
}

// MediaStore persists uploaded binaries. Stored assets are never modified or
// deleted.
type MediaStore interface {
	Store(ctx context.Context, upload Upload) (Asset, error)
}

// DetectMediaType sniffs data and returns its allow-listed MIME type together
// with the canonical extension for it.
func DetectMediaType(data []byte) (contentType string, ext string, err error) {
	if len(data) == 0 {
		return "", "", errs.NewValidationError("file", "file is empty")
	}
	detected := mimetype.Detect(data)
	for _, allowed := range AllowedMediaTypes {
		if detected.Is(allowed) {
			return allowed, detected.Extension(), nil
		}
	}
	return "", "", errs.NewUnsupportedMediaTypeError(detected.String(), AllowedMediaTypes)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeName reduces an uploaded file name to a safe base name.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeNameChars.ReplaceAllString(name, "-")
	return strings.Trim(name, "-.")
}

// newFileName builds a unique name for upload. detectedExt is used when the
// original name carries no extension.
func newFileName(upload Upload, detectedExt string) string {
	id := uuid.NewString()
	safe := sanitizeName(upload.OriginalName)

	if upload.Naming == NamingUUIDOriginal && safe != "" {
		if filepath.Ext(safe) == "" {
			safe += detectedExt
		}
		return id + "-" + safe
	}

	ext := strings.ToLower(filepath.Ext(safe))
	if ext == "" {
		ext = detectedExt
	}
	return id + ext
}
