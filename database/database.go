package database

import (
	"context"
	"path/filepath"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

type Database struct {
	catalogRepo *CatalogRepo
}

// New initializes a Database whose catalog lives in dataDir.
func New(dataDir string) Database {
	return Database{
		catalogRepo: NewCatalogRepo(filepath.Join(dataDir, CatalogFileName)),
	}
}

func (d Database) CatalogRepo() *CatalogRepo {
	return d.catalogRepo
}

// Init makes sure the catalog file exists and is readable.
func (d Database) Init(ctx context.Context) error {
	if err := d.catalogRepo.EnsureInitialized(ctx); err != nil {
		return err
	}
	_, err := d.catalogRepo.ReadAll(ctx)
	return err
}

// Migrate runs the catalog data migrations and returns how many records
// changed.
func (d Database) Migrate(ctx context.Context) (int, error) {
	if d.catalogRepo == nil {
		return 0, errs.NewInternalError("catalog repository not configured")
	}
	return d.catalogRepo.MigrateMedia(ctx)
}

func (d Database) Close() error {
	return d.catalogRepo.Close()
}
