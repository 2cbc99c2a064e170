package api

import (
	"net/http"
	"strings"

	"github.com/netriktechworks/site-backend/database"
	"github.com/netriktechworks/site-backend/services"
	"github.com/netriktechworks/site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	uploader    imageUploader
}

func newProjectHandler(projectRepo *database.ProjectRepo, uploader imageUploader, alerts services.Notifier) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger, alerts),
		logger:      logger,
		projectRepo: projectRepo,
		uploader:    uploader,
	}
}

// getPublicProjects lists the portfolio
// @Summary List projects
// @Description Public portfolio, most recently completed first
// @Tags Projects
// @Produce json
// @Param category query string false "Only projects in this category"
// @Param featured_only query bool false "Only featured projects"
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h projectHandler) getPublicProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featuredOnly, err := queryBool(r, "featured_only")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.FindPublic(r.Context(), database.ProjectFilter{
			Category:     strings.TrimSpace(r.URL.Query().Get("category")),
			FeaturedOnly: featuredOnly,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getAllProjects lists every project for the admin panel
// @Summary List projects (admin)
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindOne(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body ProjectRequest true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProjectRequest
		if err := readJSON(w, r, h.logger, "project", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.validateCreate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.toModel()
		if err := h.projectRepo.Insert(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteCreated(w, project)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Description Only the fields present in the body are changed
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body ProjectRequest true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ProjectRequest
		if err := readJSON(w, r, h.logger, "project", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.UpdateFields(r.Context(), projectID, req.toUpdateMap())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteMessage(w, "Project deleted successfully")
	}
}

// uploadProjectImage adds an image to the project's gallery
// @Summary Upload project image
// @Description The first image uploaded to a project without a featured image becomes its featured image
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param file formData file true "Image"
// @Success 200 {object} ImageUploadResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Not an image"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 413 {object} ErrorResponse "Upload too large"
// @Router /admin/projects/{projectID}/images [post]
func (h projectHandler) uploadProjectImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.FindOne(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		imageURL, err := h.uploader.receiveImage(r.Context(), w, r, storage.CategoryProjects)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.AppendImage(r.Context(), projectID, imageURL); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("append image to", "project", err))
			return
		}

		h.responder.WriteJSON(w, ImageUploadResponse{Message: "Image uploaded successfully", ImageURL: imageURL})
	}
}
