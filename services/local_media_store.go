package services

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
)

// UploadsURLPrefix is the URL path under which local uploads are served.
const UploadsURLPrefix = "/uploads"

// LocalMediaStore writes assets into <publicDir>/uploads.
type LocalMediaStore struct {
	dir    string
	logger zerolog.Logger
}

func NewLocalMediaStore(publicDir string) *LocalMediaStore {
	dir := filepath.Join(publicDir, "uploads")
	return &LocalMediaStore{
		dir:    dir,
		logger: log.With().Str("component", "localMediaStore").Str("dir", dir).Logger(),
	}
}

// Dir returns the directory assets are written to.
func (s *LocalMediaStore) Dir() string {
	return s.dir
}

func (s *LocalMediaStore) Store(ctx context.Context, upload Upload) (Asset, error) {
	asset, err := s.store(ctx, upload)
	metrics.ObserveUpload("local", len(upload.Data), err)
	return asset, err
}

func (s *LocalMediaStore) store(ctx context.Context, upload Upload) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	contentType, ext, err := DetectMediaType(upload.Data)
	if err != nil {
		return Asset{}, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Asset{}, errs.NewStorageError("create upload directory", err)
	}

	name := newFileName(upload, ext)
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Asset{}, errs.NewStorageError("create media file", err)
	}
	if _, err := f.Write(upload.Data); err != nil {
		f.Close()
		return Asset{}, errs.NewStorageError("write media file", err)
	}
	if err := f.Close(); err != nil {
		return Asset{}, errs.NewStorageError("close media file", err)
	}

	asset := Asset{
		Path:         path.Join(UploadsURLPrefix, name),
		FileName:     name,
		OriginalName: upload.OriginalName,
		ContentType:  contentType,
		Size:         len(upload.Data),
	}
	s.logger.Debug().Str("path", asset.Path).Str("contentType", contentType).Int("size", asset.Size).Msg("stored media")
	return asset, nil
}
