package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/artist-portfolio-backend/errs"
	"github.com/rpupo63/artist-portfolio-backend/services"
)

type uploadHandler struct {
	responder      Responder
	mediaStore     services.MediaStore
	maxUploadBytes int64
}

func newUploadHandler(mediaStore services.MediaStore, maxUploadBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder:      NewResponder(logger),
		mediaStore:     mediaStore,
		maxUploadBytes: maxUploadBytes,
	}
}

// uploadFile stores the single "file" part and returns its public path.
// @Summary Upload media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /upload [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		parts := r.MultipartForm.File["file"]
		if len(parts) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		part := parts[0]

		data, err := readPart(part)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		asset, err := h.mediaStore.Store(r.Context(), services.Upload{
			Data:         data,
			OriginalName: part.Filename,
			Naming:       services.NamingUUID,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		logger := ctxGetLogger(r.Context())
		logger.Info().
			Str("handlerName", "uploadHandler").
			Str("path", asset.Path).
			Str("contentType", asset.ContentType).
			Int("size", asset.Size).
			Msg("media uploaded")

		h.responder.WriteJSON(w, UploadResponse{
			Success:      true,
			FilePath:     asset.Path,
			FileName:     asset.FileName,
			OriginalName: asset.OriginalName,
		})
	}
}
