package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog"
)

const maxJSONBodyBytes = 1 << 20

// readJSON decodes the request body into dst.
func readJSON(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, payloadName string, dst any) error {
	bodyBytes, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		logger.Error().Err(err).Msg("Failed to read request body")
		return errs.NewBadRequestError("failed to read request body")
	}

	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(dst); err != nil {
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			return apiErr
		}
		logger.Warn().Err(err).Str("body", services.Truncate(string(bodyBytes), 512)).Msgf("Failed to decode %s request body", payloadName)
		return errs.NewMalformedPayloadError(payloadName, err)
	}
	return nil
}

// pathID reads a uuid path parameter. Ids that don't parse can't name a
// stored record, so they are reported as not found.
func pathID(r *http.Request, param, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewInvalidFieldError(name, "must be true or false")
	}
	return value, nil
}

// imageUploader accepts a single multipart "file" part holding an image.
type imageUploader struct {
	files    storage.FileStore
	maxBytes int64
}

// receiveImage stores the uploaded image in category and returns its
// public path.
func (u imageUploader) receiveImage(ctx context.Context, w http.ResponseWriter, r *http.Request, category storage.Category) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", errs.NewMaxBodySizeExceededError(u.maxBytes)
		}
		return "", errs.NewMalformedPayloadError("multipart", err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", errs.NewMissingRequiredFieldError("file")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !storage.IsImage(contentType) {
		return "", errs.NewInvalidFileTypeError(contentType, "image/*")
	}
	// The stored name keeps the extension and is served by it.
	if !storage.IsImageName(header.Filename) {
		return "", errs.NewInvalidFileTypeError(storage.ContentTypeFor(header.Filename), "image/*")
	}

	return storage.Save(ctx, u.files, category, header.Filename, file, contentType)
}
