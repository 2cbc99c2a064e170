package database

import (
	"context"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/netriktechworks/site-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuotationSequenceName names the counter quote numbers are drawn from
const QuotationSequenceName = "quotation"

type QuotationRepo struct {
	collection[models.Quotation]
}

func NewQuotationRepo(db *gorm.DB) *QuotationRepo {
	return &QuotationRepo{newCollection[models.Quotation](db, "quotation")}
}

// FindAll returns quotations newest first
func (r *QuotationRepo) FindAll(ctx context.Context) ([]*models.Quotation, error) {
	return r.Find(ctx, Query{Sort: "created_at DESC"})
}

// CreateNumbered allocates the next sequence value, lets number turn it
// into a quote number on q, and inserts q, all in one transaction. Two
// concurrent calls never observe the same sequence value.
func (r *QuotationRepo) CreateNumbered(ctx context.Context, q *models.Quotation, number func(seq int64) string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequence(tx, QuotationSequenceName)
		if err != nil {
			return err
		}
		q.QuoteNumber = number(seq)

		if err := tx.Create(q).Error; err != nil {
			return errs.NewDatabaseError("create", "quotation", err)
		}
		return nil
	})
	if err != nil {
		return errs.NewDatabaseError("create", "quotation", err)
	}
	return nil
}

// nextSequence increments the named counter in place. The UPDATE holds the
// row lock until the surrounding transaction ends.
func nextSequence(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.QuoteSequence{Name: name}).Error
	if err != nil {
		return 0, errs.NewTransactionFailedError("seed sequence "+name, err)
	}

	result := tx.Model(&models.QuoteSequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if result.Error != nil {
		return 0, errs.NewTransactionFailedError("increment sequence "+name, result.Error)
	}

	var seq models.QuoteSequence
	if err := tx.Where("name = ?", name).First(&seq).Error; err != nil {
		return 0, errs.NewTransactionFailedError("read sequence "+name, err)
	}
	return seq.Value, nil
}

// seedQuotationSequence starts the counter at the number of quotations
// already stored, so databases that predate the counter keep numbering
// where they left off.
func seedQuotationSequence(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.QuoteSequence{}).Where("name = ?", QuotationSequenceName).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		var quotations int64
		if err := tx.Model(&models.Quotation{}).Count(&quotations).Error; err != nil {
			return err
		}
		return tx.Create(&models.QuoteSequence{Name: QuotationSequenceName, Value: quotations}).Error
	})
}
