package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/gorm"
)

type ContactSubmissionRepo struct {
	collection[models.ContactSubmission]
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{newCollection[models.ContactSubmission](db, "submission")}
}

// FindAll returns submissions newest first
func (r *ContactSubmissionRepo) FindAll(ctx context.Context, unreadOnly bool) ([]*models.ContactSubmission, error) {
	filter := map[string]any{}
	if unreadOnly {
		filter["is_read"] = false
	}
	return r.Find(ctx, Query{Filter: filter, Sort: "submitted_at DESC"})
}

// MarkRead flips the read flag. It is the only mutation a submission allows.
func (r *ContactSubmissionRepo) MarkRead(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error) {
	return r.UpdateFields(ctx, id, map[string]any{"is_read": true})
}
