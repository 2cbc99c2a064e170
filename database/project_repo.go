package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	collection[models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{newCollection[models.Project](db, "project")}
}

// ProjectFilter holds the public listing filters
type ProjectFilter struct {
	Category     string
	FeaturedOnly bool
}

// FindPublic returns projects for the public portfolio, most recently
// completed first
func (r *ProjectRepo) FindPublic(ctx context.Context, f ProjectFilter) ([]*models.Project, error) {
	filter := map[string]any{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.FeaturedOnly {
		filter["is_featured"] = true
	}
	return r.Find(ctx, Query{Filter: filter, Sort: "completion_date DESC"})
}

// FindAll returns every project, newest first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	return r.Find(ctx, Query{Sort: "created_at DESC"})
}

// AppendImage adds imageURL to the project's gallery. The first image
// uploaded to a project without a featured image becomes the featured one.
func (r *ProjectRepo) AppendImage(ctx context.Context, id uuid.UUID, imageURL string) (*models.Project, error) {
	var updated *models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := r.findOne(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}

		images := append(datatypes.JSONSlice[string]{}, project.Images...)
		images = append(images, imageURL)
		fields := map[string]any{"images": images}
		if project.FeaturedImage == nil || *project.FeaturedImage == "" {
			fields["featured_image"] = imageURL
		}

		if err := tx.Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return errs.NewDatabaseError("append image to", "project", err)
		}

		updated, err = r.findOne(tx, id)
		return err
	})
	if err != nil {
		return nil, errs.NewDatabaseError("append image to", "project", err)
	}
	return updated, nil
}
