package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	collection[models.Testimonial]
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{newCollection[models.Testimonial](db, "testimonial")}
}

// FindPublic returns testimonials newest first, optionally only featured ones
func (r *TestimonialRepo) FindPublic(ctx context.Context, featuredOnly bool) ([]*models.Testimonial, error) {
	filter := map[string]any{}
	if featuredOnly {
		filter["is_featured"] = true
	}
	return r.Find(ctx, Query{Filter: filter, Sort: "created_at DESC"})
}

// FindAll returns every testimonial, newest first
func (r *TestimonialRepo) FindAll(ctx context.Context) ([]*models.Testimonial, error) {
	return r.Find(ctx, Query{Sort: "created_at DESC"})
}

// SetImage replaces the testimonial's portrait
func (r *TestimonialRepo) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*models.Testimonial, error) {
	return r.UpdateFields(ctx, id, map[string]any{"image": imageURL})
}

// IncrementLikes bumps the like counter in place and returns the new count
func (r *TestimonialRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	var likes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Testimonial{}).
			Where("id = ?", id).
			UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if result.Error != nil {
			return errs.NewDatabaseError("like", "testimonial", result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("testimonial")
		}

		return tx.Model(&models.Testimonial{}).Where("id = ?", id).Pluck("likes", &likes).Error
	})
	if err != nil {
		return 0, errs.NewDatabaseError("like", "testimonial", err)
	}
	return likes, nil
}
