package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/artist-portfolio-backend/database"
	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/models"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

const (
	multipartMemory    = 32 << 20
	maxParallelUploads = 4
)

type projectHandler struct {
	responder      Responder
	logger         zerolog.Logger
	catalogRepo    *database.CatalogRepo
	mediaStore     services.MediaStore
	maxUploadBytes int64
}

func newProjectHandler(catalogRepo *database.CatalogRepo, mediaStore services.MediaStore, maxUploadBytes int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		catalogRepo:    catalogRepo,
		mediaStore:     mediaStore,
		maxUploadBytes: maxUploadBytes,
	}
}

// projectForm is a decoded POST/PUT /projects multipart submission.
type projectForm struct {
	language  models.Language
	project   *models.Project
	cover     *multipart.FileHeader
	thumbnail *multipart.FileHeader
	gallery   []*multipart.FileHeader
}

// getProjects returns the whole catalog, or a single project when a slug is
// given.
// @Summary Get projects
// @Description With ?slug= the preferred ?language= is searched first, then the other one
// @Tags Projects
// @Produce json
// @Param slug query string false "Project slug"
// @Param language query string false "en or fr (default fr)"
// @Success 200 {object} ProjectsBySlugResponse
// @Failure 400 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		slug := query.Get("slug")
		if slug == "" {
			catalog, err := h.catalogRepo.ListAll(r.Context())
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteJSON(w, catalog)
			return
		}

		language, err := models.ParseLanguage(query.Get("language"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.catalogRepo.FindBySlug(r.Context(), slug, language)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		response := ProjectsBySlugResponse{Projects: []*models.Project{}}
		if project != nil {
			response.Projects = append(response.Projects, project)
		}
		h.responder.WriteJSON(w, response)
	}
}

// createProject stores the uploaded files and adds the project to one
// language partition.
// @Summary Create project
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param language formData string false "en or fr (default fr)"
// @Param project formData string true "Project JSON"
// @Param coverImage formData file false "Cover image"
// @Param thumbnailImage formData file false "Thumbnail image"
// @Param gallery formData file false "Gallery files"
// @Success 200 {object} CreateProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := h.requestLogger(r)

		form, err := h.parseProjectForm(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := models.ValidateProject(form.project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		gallery, stored, err := h.storeUploads(r.Context(), form)
		if err != nil {
			logOrphans(logger, stored, err)
			h.responder.WriteError(w, err)
			return
		}
		for _, item := range gallery {
			models.AddMedia(form.project, item)
		}
		if form.cover == nil && models.RepairCover(form.project) {
			logger.Debug().Str("coverImage", form.project.CoverImage).Msg("cover repaired")
		}

		result, err := h.catalogRepo.Create(r.Context(), form.language, form.project)
		if err != nil {
			logOrphans(logger, stored, err)
			h.responder.WriteError(w, err)
			return
		}

		logger.Info().
			Str("language", form.language.String()).
			Str("id", result.ID).
			Int("uploads", len(stored)).
			Msg("project created")

		h.responder.WriteJSON(w, CreateProjectResponse{Success: true, ID: result.ID, Slug: result.Slug})
	}
}

// updateProject replaces a project in one language partition and mirrors its
// media fields into the other.
// @Summary Update project
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param language formData string false "en or fr (default fr)"
// @Param project formData string true "Project JSON including id"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := h.requestLogger(r)

		form, err := h.parseProjectForm(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if form.project.ID == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}
		if err := models.ValidateProject(form.project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		gallery, stored, err := h.storeUploads(r.Context(), form)
		if err != nil {
			logOrphans(logger, stored, err)
			h.responder.WriteError(w, err)
			return
		}

		// Gallery parts are merged with the stored record under the catalog
		// lock so concurrent updates cannot drop each other's items.
		opts := []database.UpdateOption{database.AppendMedia(gallery...)}
		if form.cover == nil {
			opts = append(opts, database.RepairCover())
		}

		if err := h.catalogRepo.Update(r.Context(), form.language, form.project, opts...); err != nil {
			logOrphans(logger, stored, err)
			h.responder.WriteError(w, err)
			return
		}

		logger.Info().
			Str("language", form.language.String()).
			Str("id", form.project.ID).
			Int("uploads", len(stored)).
			Msg("project updated")

		h.responder.WriteJSON(w, SuccessResponse{Success: true})
	}
}

// deleteProject removes ?id= from both language partitions.
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id query string true "Project ID"
// @Success 200 {object} DeleteProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		deleted, err := h.catalogRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		logger := h.requestLogger(r)
		logger.Info().Str("id", id).Interface("languages", deleted).Msg("project deleted")
		h.responder.WriteJSON(w, DeleteProjectResponse{Success: true, DeletedFrom: deleted})
	}
}

func (h projectHandler) requestLogger(r *http.Request) zerolog.Logger {
	return ctxGetLogger(r.Context()).With().Str("handlerName", "projectHandler").Logger()
}

func (h projectHandler) parseProjectForm(w http.ResponseWriter, r *http.Request) (*projectForm, error) {
	if err := parseMultipart(w, r, h.maxUploadBytes); err != nil {
		return nil, err
	}

	language, err := models.ParseLanguage(r.FormValue("language"))
	if err != nil {
		return nil, err
	}

	raw := r.FormValue("project")
	if raw == "" {
		return nil, errs.NewMissingRequiredFieldError("project")
	}
	var project models.Project
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		return nil, errs.NewMalformedPayloadError("project", err)
	}

	files := r.MultipartForm.File
	form := &projectForm{
		language: language,
		project:  &project,
		gallery:  append(append([]*multipart.FileHeader{}, files["gallery"]...), files["gallery[]"]...),
	}
	if parts := files["coverImage"]; len(parts) > 0 {
		form.cover = parts[0]
	}
	if parts := files["thumbnailImage"]; len(parts) > 0 {
		form.thumbnail = parts[0]
	}
	return form, nil
}

// storeUploads stores every file part of form. Cover and thumbnail parts are
// set on the project directly; gallery parts come back as media items in
// submission order for the caller to append. The returned paths are
// everything that was written, including on error.
func (h projectHandler) storeUploads(ctx context.Context, form *projectForm) ([]models.MediaItem, []string, error) {
	parts := make([]*multipart.FileHeader, 0, len(form.gallery)+2)
	parts = append(parts, form.gallery...)
	if form.cover != nil {
		parts = append(parts, form.cover)
	}
	if form.thumbnail != nil {
		parts = append(parts, form.thumbnail)
	}

	assets, err := storeParts(ctx, h.mediaStore, parts)
	var stored []string
	for _, asset := range assets {
		if asset.Path != "" {
			stored = append(stored, asset.Path)
		}
	}
	if err != nil {
		return nil, stored, err
	}

	gallery := make([]models.MediaItem, 0, len(form.gallery))
	for _, asset := range assets[:len(form.gallery)] {
		gallery = append(gallery, models.MediaItem{Path: asset.Path})
	}
	next := len(form.gallery)
	if form.cover != nil {
		form.project.CoverImage = assets[next].Path
		next++
	}
	if form.thumbnail != nil {
		form.project.ThumbnailImage = assets[next].Path
	}
	return gallery, stored, nil
}

// storeParts writes parts concurrently. assets[i] belongs to parts[i]; entries
// of parts that failed or were skipped stay zero.
func storeParts(ctx context.Context, store services.MediaStore, parts []*multipart.FileHeader) ([]services.Asset, error) {
	assets := make([]services.Asset, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelUploads)

	for i, part := range parts {
		g.Go(func() error {
			data, err := readPart(part)
			if err != nil {
				return err
			}
			asset, err := store.Store(gctx, services.Upload{
				Data:         data,
				OriginalName: part.Filename,
				Naming:       services.NamingUUIDOriginal,
			})
			if err != nil {
				return err
			}
			assets[i] = asset
			return nil
		})
	}
	return assets, g.Wait()
}

func readPart(part *multipart.FileHeader) ([]byte, error) {
	f, err := part.Open()
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errs.NewMalformedPayloadError("multipart", err)
	}
	return data, nil
}

// parseMultipart bounds the body to maxBytes and parses it.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errs.NewMaxBodySizeExceededError(maxBytes)
		}
		return errs.NewMalformedPayloadError("multipart", err)
	}
	return nil
}

// logOrphans records media that was written for a request whose catalog
// write did not happen. Stored media is never removed.
func logOrphans(logger zerolog.Logger, paths []string, cause error) {
	if len(paths) == 0 {
		return
	}
	logger.Warn().Err(cause).Strs("paths", paths).Msg("stored media left unreferenced")
}
