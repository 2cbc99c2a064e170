package database

import (
	"context"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	contactSubmissionRepo *ContactSubmissionRepo
	quotationRepo         *QuotationRepo
	projectRepo           *ProjectRepo
	testimonialRepo       *TestimonialRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		contactSubmissionRepo: NewContactSubmissionRepo(db),
		quotationRepo:         NewQuotationRepo(db),
		projectRepo:           NewProjectRepo(db),
		testimonialRepo:       NewTestimonialRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

func (d Database) QuotationRepo() *QuotationRepo {
	return d.quotationRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

// Ping checks that the primary database answers
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewServiceUnavailableError("database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewServiceUnavailableError("database", err)
	}
	return nil
}

// Migrate creates or alters every table and seeds the quote counter
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errs.NewTransactionFailedError("auto migrate", err)
	}
	if err := seedQuotationSequence(db); err != nil {
		return errs.NewTransactionFailedError("seed quotation sequence", err)
	}
	return nil
}
