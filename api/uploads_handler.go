package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type uploadsHandler struct {
	responder Responder
	logger    zerolog.Logger
	files     storage.FileStore
}

func newUploadsHandler(files storage.FileStore) uploadsHandler {
	logger := log.With().Str("handlerName", "uploadsHandler").Logger()

	return uploadsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		files:     files,
	}
}

// serveFile streams a stored upload. Only the fixed upload folders are served.
func (h uploadsHandler) serveFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := storage.ParseCategory(chi.URLParam(r, "folder"))
		if !ok {
			h.responder.WriteError(w, errs.NewNotFound("file"))
			return
		}
		name := chi.URLParam(r, "filename")

		file, err := h.files.Open(r.Context(), category, name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer file.Close()

		contentType := storage.ContentTypeFor(name)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		switch {
		case category == storage.CategoryInvoices:
			w.Header().Set("Cache-Control", "no-store")
		case !storage.IsImageName(name):
			// image folders only render images inline
			contentType = "application/octet-stream"
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)

		if _, err := io.Copy(w, file); err != nil {
			h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("error streaming upload")
		}
	}
}
