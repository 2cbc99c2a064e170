package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public site API, the admin API and uploaded files
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/uploads/{folder}/{filename}", handlers.uploadsHandler.serveFile())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handlers.statusHandler.root())
		r.Get("/uploads/{folder}/{filename}", handlers.uploadsHandler.serveFile())
		r.Get("/health", handlers.statusHandler.health())

		// Public routes
		r.Post("/admin/login", handlers.authHandler.login())
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Get("/projects", handlers.projectHandler.getPublicProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/testimonials", handlers.testimonialHandler.getPublicTestimonials())
		r.Post("/testimonials/{testimonialID}/like", handlers.testimonialHandler.likeTestimonial())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/admin/contact-submissions", handlers.contactHandler.getContactSubmissions())
			r.Patch("/admin/contact-submissions/{submissionID}/read", handlers.contactHandler.markSubmissionRead())

			r.Post("/admin/quotations", handlers.quotationHandler.createQuotation())
			r.Get("/admin/quotations", handlers.quotationHandler.getAllQuotations())
			r.Get("/admin/quotations/{quotationID}", handlers.quotationHandler.getQuotation())
			r.Get("/admin/quotations/{quotationID}/pdf", handlers.quotationHandler.getQuotationPDF())

			r.Post("/admin/projects", handlers.projectHandler.createProject())
			r.Get("/admin/projects", handlers.projectHandler.getAllProjects())
			r.Patch("/admin/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/admin/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Post("/admin/projects/{projectID}/images", handlers.projectHandler.uploadProjectImage())

			r.Post("/admin/testimonials", handlers.testimonialHandler.createTestimonial())
			r.Get("/admin/testimonials", handlers.testimonialHandler.getAllTestimonials())
			r.Patch("/admin/testimonials/{testimonialID}", handlers.testimonialHandler.updateTestimonial())
			r.Delete("/admin/testimonials/{testimonialID}", handlers.testimonialHandler.deleteTestimonial())
			r.Post("/admin/testimonials/{testimonialID}/image", handlers.testimonialHandler.uploadTestimonialImage())
		})
	})
}
