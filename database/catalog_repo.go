package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/metrics"
	"github.com/rpupo63/artist-portfolio-backend/models"
)

// CatalogFileName is the catalog document's name inside the data directory.
const CatalogFileName = "projects.json"

const lockRetryDelay = 20 * time.Millisecond

// errUnchanged lets a mutation finish without rewriting the file.
var errUnchanged = errors.New("catalog unchanged")

// CatalogRepo owns the catalog JSON file. Every operation reads the whole
// document and mutations rewrite it whole. Writers are serialized by an
// in-process mutex and an advisory file lock so the server and catalogctl
// never interleave a read-modify-write.
type CatalogRepo struct {
	path   string
	mu     sync.Mutex
	lock   *flock.Flock
	logger zerolog.Logger
}

// CreateResult carries the keys assigned to a new project.
type CreateResult struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func NewCatalogRepo(path string) *CatalogRepo {
	return &CatalogRepo{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: log.With().Str("component", "catalogRepo").Str("path", path).Logger(),
	}
}

// Path returns the location of the catalog file.
func (r *CatalogRepo) Path() string {
	return r.path
}

// Close releases the lock file handle.
func (r *CatalogRepo) Close() error {
	return r.lock.Close()
}

// EnsureInitialized creates the data directory and an empty document when
// the file does not exist yet.
func (r *CatalogRepo) EnsureInitialized(ctx context.Context) error {
	return r.withLock(ctx, r.ensureInitialized)
}

// ReadAll returns the full document.
func (r *CatalogRepo) ReadAll(ctx context.Context) (*models.Catalog, error) {
	var catalog *models.Catalog
	err := r.withLock(ctx, func() error {
		if err := r.ensureInitialized(); err != nil {
			return err
		}
		var err error
		catalog, err = r.load()
		return err
	})
	metrics.ObserveCatalog("read", err)
	return catalog, err
}

// ListAll returns both partitions; filtering is left to the caller.
func (r *CatalogRepo) ListAll(ctx context.Context) (*models.Catalog, error) {
	return r.ReadAll(ctx)
}

// FindBySlug searches the preferred partition first and falls back to the
// other one. Slugs are not unique: the first match in insertion order wins.
// A nil project with a nil error means nothing matched.
func (r *CatalogRepo) FindBySlug(ctx context.Context, slug string, preferred models.Language) (*models.Project, error) {
	catalog, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, lang := range []models.Language{preferred, preferred.Other()} {
		partition := catalog.Partition(lang)
		if partition == nil {
			continue
		}
		if project := partition.FindBySlug(slug); project != nil {
			return project, nil
		}
	}
	return nil, nil
}

// FindByID returns the project stored under id in lang, or a not-found error.
func (r *CatalogRepo) FindByID(ctx context.Context, lang models.Language, id string) (*models.Project, error) {
	catalog, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	partition := catalog.Partition(lang)
	if partition == nil {
		return nil, errs.NewInvalidFieldError("language", "must be one of en, fr")
	}
	project := partition.Get(id)
	if project == nil {
		return nil, errs.NewNotFound("project")
	}
	return project, nil
}

// Create validates project, derives missing id and slug, rejects ids already
// present in the target partition and stores the record.
func (r *CatalogRepo) Create(ctx context.Context, lang models.Language, project *models.Project) (CreateResult, error) {
	p := project.Clone()
	if err := models.ValidateProject(p); err != nil {
		return CreateResult{}, err
	}
	models.AssignIdentity(p)
	if p.ID == "" {
		return CreateResult{}, errs.NewInvalidFieldError("id", "could not be derived from title")
	}
	models.NormalizeMedia(p)

	err := r.Mutate(ctx, "create", func(catalog *models.Catalog) error {
		partition := catalog.Partition(lang)
		if partition == nil {
			return errs.NewInvalidFieldError("language", "must be one of en, fr")
		}
		if partition.Has(p.ID) {
			return errs.NewConflictError("project", p.ID)
		}
		partition.Set(p.ID, p)
		return nil
	})
	if err != nil {
		return CreateResult{}, err
	}

	r.logger.Debug().Str("language", lang.String()).Str("id", p.ID).Str("slug", p.Slug).Msg("project created")
	return CreateResult{ID: p.ID, Slug: p.Slug}, nil
}

type updateOptions struct {
	appendMedia []models.MediaItem
	repairCover bool
}

// UpdateOption adjusts how Update merges the payload with the stored record.
// Options run under the catalog lock, against the stored state.
type UpdateOption func(*updateOptions)

// AppendMedia adds items after the stored media, in order. When the payload
// carries no gallery the stored gallery is extended instead.
func AppendMedia(items ...models.MediaItem) UpdateOption {
	return func(o *updateOptions) {
		o.appendMedia = append(o.appendMedia, items...)
	}
}

// RepairCover runs the cover repair on the merged record before it is saved.
func RepairCover() UpdateOption {
	return func(o *updateOptions) {
		o.repairCover = true
	}
}

// Update replaces the record stored under project.ID in lang. Stored media is
// kept when the payload carries none, and the shared fields are mirrored into
// the other language's record when it exists.
func (r *CatalogRepo) Update(ctx context.Context, lang models.Language, project *models.Project, opts ...UpdateOption) error {
	var o updateOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := project.Clone()
	if p.ID == "" {
		return errs.NewMissingRequiredFieldError("id")
	}
	if err := models.ValidateProject(p); err != nil {
		return err
	}

	mirrored := false
	err := r.Mutate(ctx, "update", func(catalog *models.Catalog) error {
		partition := catalog.Partition(lang)
		if partition == nil {
			return errs.NewInvalidFieldError("language", "must be one of en, fr")
		}
		existing := partition.Get(p.ID)
		if existing == nil {
			return errs.NewNotFound("project")
		}
		if p.Media == nil && existing.Media != nil {
			p.Media = existing.Clone().Media
		}
		if p.Slug == "" {
			p.Slug = existing.Slug
		}
		if len(o.appendMedia) > 0 && p.Gallery == nil {
			p.Gallery = existing.Clone().Gallery
		}
		models.NormalizeMedia(p)
		for _, item := range o.appendMedia {
			models.AddMedia(p, item)
		}
		if o.repairCover {
			models.RepairCover(p)
		}
		partition.Set(p.ID, p)

		if other := catalog.Partition(lang.Other()).Get(p.ID); other != nil {
			models.MirrorSharedFields(other, p)
			mirrored = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug().Str("language", lang.String()).Str("id", p.ID).Int("appended", len(o.appendMedia)).Bool("mirrored", mirrored).Msg("project updated")
	return nil
}

// Delete removes id from both partitions and returns the languages it was
// removed from.
func (r *CatalogRepo) Delete(ctx context.Context, id string) ([]models.Language, error) {
	if id == "" {
		return nil, errs.NewMissingRequiredFieldError("id")
	}

	var deleted []models.Language
	err := r.Mutate(ctx, "delete", func(catalog *models.Catalog) error {
		for _, lang := range models.Languages {
			if catalog.Partition(lang).Delete(id) {
				deleted = append(deleted, lang)
			}
		}
		if len(deleted) == 0 {
			return errs.NewNotFound("project")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Str("id", id).Interface("languages", deleted).Msg("project deleted")
	return deleted, nil
}

// MigrateMedia gives every record that only has a gallery a media list built
// from it. It returns how many records changed; the file is only rewritten
// when something did.
func (r *CatalogRepo) MigrateMedia(ctx context.Context) (int, error) {
	migrated := 0
	err := r.Mutate(ctx, "migrate_media", func(catalog *models.Catalog) error {
		catalog.Each(func(lang models.Language, project *models.Project) {
			if project.Gallery != nil && project.Media == nil {
				models.NormalizeMedia(project)
				migrated++
				r.logger.Info().Str("language", lang.String()).Str("id", project.ID).Msg("migrated gallery to media")
			}
		})
		if migrated == 0 {
			return errUnchanged
		}
		return nil
	})
	return migrated, err
}

// RepairAll runs the cover repair over every record and returns how many
// records changed.
func (r *CatalogRepo) RepairAll(ctx context.Context) (int, error) {
	repaired := 0
	err := r.Mutate(ctx, "repair", func(catalog *models.Catalog) error {
		catalog.Each(func(lang models.Language, project *models.Project) {
			if models.RepairCover(project) {
				repaired++
				r.logger.Info().Str("language", lang.String()).Str("id", project.ID).Str("coverImage", project.CoverImage).Msg("repaired cover")
			}
		})
		if repaired == 0 {
			return errUnchanged
		}
		return nil
	})
	return repaired, err
}

// Mutate runs fn against the current document under the write lock and saves
// the result. When fn fails nothing is written.
func (r *CatalogRepo) Mutate(ctx context.Context, operation string, fn func(*models.Catalog) error) error {
	err := r.withLock(ctx, func() error {
		if err := r.ensureInitialized(); err != nil {
			return err
		}
		catalog, err := r.load()
		if err != nil {
			return err
		}
		if err := fn(catalog); err != nil {
			return err
		}
		return r.save(catalog)
	})
	if errors.Is(err, errUnchanged) {
		err = nil
	}
	metrics.ObserveCatalog(operation, err)
	if err != nil && errs.StatusCode(err) >= 500 {
		r.logger.Error().Err(err).Str("operation", operation).Msg("catalog operation failed")
	}
	return err
}

func (r *CatalogRepo) withLock(ctx context.Context, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errs.NewStorageError("create data directory", err)
	}

	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return errs.NewStorageLockError(r.path, err)
	}
	if !locked {
		return errs.NewStorageLockError(r.path, ctx.Err())
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to release catalog lock")
		}
	}()

	return fn()
}

func (r *CatalogRepo) ensureInitialized() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return errs.NewStorageError("stat catalog", err)
	}
	r.logger.Info().Msg("creating empty catalog")
	return r.save(models.NewCatalog())
}

func (r *CatalogRepo) load() (*models.Catalog, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errs.NewStorageError("read catalog", err)
	}
	catalog, err := models.DecodeCatalog(data)
	if err != nil {
		return nil, errs.NewCorruptDataError(r.path, err)
	}
	return catalog, nil
}

// save writes the document to a temporary file and renames it into place.
func (r *CatalogRepo) save(catalog *models.Catalog) error {
	data, err := models.EncodeCatalog(catalog)
	if err != nil {
		return errs.NewStorageError("encode catalog", err)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return errs.NewStorageError("write catalog", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return errs.NewStorageError("replace catalog", fmt.Errorf("rename %s: %w", tmpPath, err))
	}
	return nil
}
