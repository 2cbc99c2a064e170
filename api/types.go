package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/datatypes"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	statusHandler      statusHandler
	authHandler        authHandler
	contactHandler     contactHandler
	quotationHandler   quotationHandler
	projectHandler     projectHandler
	testimonialHandler testimonialHandler
	uploadsHandler     uploadsHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// MessageResponse is returned by actions that have nothing else to report
type MessageResponse struct {
	Message string `json:"message" example:"Project deleted successfully"`
}

// ImageUploadResponse is returned after an image upload
type ImageUploadResponse struct {
	Message  string `json:"message" example:"Image uploaded successfully"`
	ImageURL string `json:"image_url" example:"/uploads/projects/3f6c....jpg"`
}

// LikeResponse carries a testimonial's like count
type LikeResponse struct {
	Likes int64 `json:"likes"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ContactSubmissionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Date accepts RFC 3339 timestamps as well as plain "2006-01-02" dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return errs.NewInvalidFieldError("date", "expected YYYY-MM-DD or RFC 3339, got "+raw)
}

// ProjectRequest is used for both create and partial update. Absent fields
// are nil and left untouched on update.
type ProjectRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Client         *string   `json:"client"`
	Category       *string   `json:"category"`
	Tags           *[]string `json:"tags"`
	Images         *[]string `json:"images"`
	FeaturedImage  *string   `json:"featured_image"`
	CompletionDate *Date     `json:"completion_date"`
	IsFeatured     *bool     `json:"is_featured"`
}

func (p ProjectRequest) validateCreate() error {
	if err := requireStrings(
		requiredString{"title", p.Title},
		requiredString{"description", p.Description},
		requiredString{"client", p.Client},
		requiredString{"category", p.Category},
	); err != nil {
		return err
	}
	if p.CompletionDate == nil {
		return errs.NewMissingRequiredFieldError("completion_date")
	}
	return nil
}

func (p ProjectRequest) toModel() *models.Project {
	project := &models.Project{
		Title:          *p.Title,
		Description:    *p.Description,
		Client:         *p.Client,
		Category:       *p.Category,
		CompletionDate: p.CompletionDate.Time,
		FeaturedImage:  p.FeaturedImage,
	}
	if p.Tags != nil {
		project.Tags = datatypes.JSONSlice[string](*p.Tags)
	}
	if p.Images != nil {
		project.Images = datatypes.JSONSlice[string](*p.Images)
	}
	if p.IsFeatured != nil {
		project.IsFeatured = *p.IsFeatured
	}
	return project
}

func (p ProjectRequest) toUpdateMap() map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Client != nil {
		fields["client"] = *p.Client
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Tags != nil {
		fields["tags"] = datatypes.JSONSlice[string](nonNil(*p.Tags))
	}
	if p.Images != nil {
		fields["images"] = datatypes.JSONSlice[string](nonNil(*p.Images))
	}
	if p.FeaturedImage != nil {
		fields["featured_image"] = *p.FeaturedImage
	}
	if p.CompletionDate != nil {
		fields["completion_date"] = p.CompletionDate.Time
	}
	if p.IsFeatured != nil {
		fields["is_featured"] = *p.IsFeatured
	}
	return fields
}

// TestimonialRequest is used for both create and partial update
type TestimonialRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Company    *string `json:"company"`
	Content    *string `json:"content"`
	Rating     *int    `json:"rating"`
	IsFeatured *bool   `json:"is_featured"`
}

func (t TestimonialRequest) validateCreate() error {
	if err := requireStrings(
		requiredString{"name", t.Name},
		requiredString{"role", t.Role},
		requiredString{"content", t.Content},
	); err != nil {
		return err
	}
	if t.Rating == nil {
		return errs.NewMissingRequiredFieldError("rating")
	}
	return t.validateRating()
}

func (t TestimonialRequest) validateRating() error {
	if t.Rating != nil && !models.ValidRating(*t.Rating) {
		return errs.NewInvalidFieldError("rating", "must be between 1 and 5")
	}
	return nil
}

func (t TestimonialRequest) toModel() *models.Testimonial {
	testimonial := &models.Testimonial{
		Name:    *t.Name,
		Role:    *t.Role,
		Company: t.Company,
		Content: *t.Content,
		Rating:  *t.Rating,
	}
	if t.IsFeatured != nil {
		testimonial.IsFeatured = *t.IsFeatured
	}
	return testimonial
}

func (t TestimonialRequest) toUpdateMap() map[string]any {
	fields := map[string]any{}
	if t.Name != nil {
		fields["name"] = *t.Name
	}
	if t.Role != nil {
		fields["role"] = *t.Role
	}
	if t.Company != nil {
		fields["company"] = *t.Company
	}
	if t.Content != nil {
		fields["content"] = *t.Content
	}
	if t.Rating != nil {
		fields["rating"] = *t.Rating
	}
	if t.IsFeatured != nil {
		fields["is_featured"] = *t.IsFeatured
	}
	return fields
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type requiredString struct {
	field string
	value *string
}

// requireStrings fails on the first field that is absent or blank
func requireStrings(fields ...requiredString) error {
	for _, f := range fields {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			return errs.NewMissingRequiredFieldError(f.field)
		}
	}
	return nil
}
