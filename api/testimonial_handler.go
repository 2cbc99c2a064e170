package api

import (
	"net/http"

	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo *database.TestimonialRepo
	uploader        imageUploader
}

func newTestimonialHandler(testimonialRepo *database.TestimonialRepo, uploader imageUploader, alerts services.Notifier) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger, alerts),
		logger:          logger,
		testimonialRepo: testimonialRepo,
		uploader:        uploader,
	}
}

// getPublicTestimonials lists testimonials for the site
// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Param featured_only query bool false "Only featured testimonials"
// @Success 200 {array} models.Testimonial
// @Router /testimonials [get]
func (h testimonialHandler) getPublicTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featuredOnly, err := queryBool(r, "featured_only")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonials, err := h.testimonialRepo.FindPublic(r.Context(), featuredOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}

		h.responder.WriteJSON(w, testimonials)
	}
}

// getAllTestimonials lists every testimonial for the admin panel
// @Summary List testimonials (admin)
// @Tags Testimonials
// @Produce json
// @Success 200 {array} models.Testimonial
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/testimonials [get]
func (h testimonialHandler) getAllTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonials, err := h.testimonialRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}

		h.responder.WriteJSON(w, testimonials)
	}
}

// createTestimonial creates a new testimonial
// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonial body TestimonialRequest true "Testimonial data"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse "Bad Request - Missing field or rating outside 1..5"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/testimonials [post]
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TestimonialRequest
		if err := readJSON(w, r, h.logger, "testimonial", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.validateCreate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonial := req.toModel()
		if err := h.testimonialRepo.Insert(r.Context(), testimonial); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "testimonial", err))
			return
		}

		h.responder.WriteCreated(w, testimonial)
	}
}

// updateTestimonial applies a partial update
// @Summary Update testimonial
// @Description Only the fields present in the body are changed
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Param testimonial body TestimonialRequest true "Fields to change"
// @Success 200 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse "Bad Request - Rating outside 1..5"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Testimonial not found"
// @Router /admin/testimonials/{testimonialID} [patch]
func (h testimonialHandler) updateTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathID(r, "testimonialID", "testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req TestimonialRequest
		if err := readJSON(w, r, h.logger, "testimonial", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.validateRating(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonial, err := h.testimonialRepo.UpdateFields(r.Context(), testimonialID, req.toUpdateMap())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, testimonial)
	}
}

// deleteTestimonial deletes a testimonial by ID
// @Summary Delete testimonial
// @Tags Testimonials
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Testimonial not found"
// @Router /admin/testimonials/{testimonialID} [delete]
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathID(r, "testimonialID", "testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.testimonialRepo.Delete(r.Context(), testimonialID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "testimonial", err))
			return
		}

		h.responder.WriteMessage(w, "Testimonial deleted successfully")
	}
}

// uploadTestimonialImage replaces the testimonial's portrait
// @Summary Upload testimonial image
// @Tags Testimonials
// @Accept multipart/form-data
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Param file formData file true "Image"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Not an image"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Testimonial not found"
// @Failure 413 {object} ErrorResponse "Upload too large"
// @Router /admin/testimonials/{testimonialID}/image [post]
func (h testimonialHandler) uploadTestimonialImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathID(r, "testimonialID", "testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.testimonialRepo.FindOne(r.Context(), testimonialID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonial", err))
			return
		}

		imageURL, err := h.uploader.receiveImage(r.Context(), w, r, storage.CategoryTestimonials)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.testimonialRepo.SetImage(r.Context(), testimonialID, imageURL); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("set image on", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, ImageUploadResponse{Message: "Image uploaded successfully", ImageURL: imageURL})
	}
}

// likeTestimonial adds one like
// @Summary Like testimonial
// @Tags Testimonials
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} LikeResponse
// @Failure 404 {object} ErrorResponse "Not Found - Testimonial not found"
// @Router /testimonials/{testimonialID}/like [post]
func (h testimonialHandler) likeTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, err := pathID(r, "testimonialID", "testimonial")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		likes, err := h.testimonialRepo.IncrementLikes(r.Context(), testimonialID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("like", "testimonial", err))
			return
		}

		h.responder.WriteJSON(w, LikeResponse{Likes: likes})
	}
}
