package api

import (
	"time"

	"github.com/netriktechworks/site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps Dependencies, uploadLimit int64, startupTime time.Time) *routeHandlers {
	uploader := imageUploader{files: deps.Files, maxBytes: uploadLimit}

	return &routeHandlers{
		statusHandler:      newStatusHandler(database, startupTime),
		authHandler:        newAuthHandler(deps.Tokens),
		contactHandler:     newContactHandler(database.ContactSubmissionRepo(), deps.Notifier),
		quotationHandler:   newQuotationHandler(database.QuotationRepo(), deps.Files, deps.Notifier, deps.Now),
		projectHandler:     newProjectHandler(database.ProjectRepo(), uploader, deps.Notifier),
		testimonialHandler: newTestimonialHandler(database.TestimonialRepo(), uploader, deps.Notifier),
		uploadsHandler:     newUploadsHandler(deps.Files),
	}
}
