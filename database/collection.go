package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/netriktechworks/site-backend/errs"
	"gorm.io/gorm"
)

// DefaultListLimit caps list queries that don't ask for a smaller page.
const DefaultListLimit = 1000

// Query narrows a Find call. Filter holds column equality matches, Sort is
// an ORDER BY expression such as "created_at DESC".
type Query struct {
	Filter map[string]any
	Sort   string
	Limit  int
}

// collection is the CRUD shared by every document table. Records are keyed
// by their generated uuid, never by a storage-assigned id.
type collection[T any] struct {
	db     *gorm.DB
	entity string
}

func newCollection[T any](db *gorm.DB, entity string) collection[T] {
	return collection[T]{db: db, entity: entity}
}

// GetDB returns the underlying database connection for debugging purposes
func (c collection[T]) GetDB() *gorm.DB {
	return c.db
}

// Insert stores a new record
func (c collection[T]) Insert(ctx context.Context, record *T) error {
	if err := c.db.WithContext(ctx).Create(record).Error; err != nil {
		return errs.NewDatabaseError("create", c.entity, err)
	}
	return nil
}

// Find returns the records matching q
func (c collection[T]) Find(ctx context.Context, q Query) ([]*T, error) {
	tx := c.db.WithContext(ctx)
	if len(q.Filter) > 0 {
		tx = tx.Where(q.Filter)
	}
	if q.Sort != "" {
		tx = tx.Order(q.Sort)
	}
	limit := q.Limit
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	records := make([]*T, 0)
	if err := tx.Limit(limit).Find(&records).Error; err != nil {
		return nil, errs.NewDatabaseError("find", c.entity, err)
	}
	return records, nil
}

// FindOne returns the record with the given id or a NotFound error
func (c collection[T]) FindOne(ctx context.Context, id uuid.UUID) (*T, error) {
	return c.findOne(c.db.WithContext(ctx), id)
}

func (c collection[T]) findOne(tx *gorm.DB, id uuid.UUID) (*T, error) {
	var record T
	err := tx.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(c.entity)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", c.entity, err)
	}
	return &record, nil
}

// UpdateFields applies only the supplied columns and returns the updated
// record. Columns missing from fields are left untouched; zero values that
// are present (false, "", empty lists) are written.
func (c collection[T]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	var updated *T
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := c.findOne(tx, id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
				return errs.NewDatabaseError("update", c.entity, err)
			}
		}

		record, err := c.findOne(tx, id)
		if err != nil {
			return err
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, errs.NewDatabaseError("update", c.entity, err)
	}
	return updated, nil
}

// Delete removes the record with the given id or returns a NotFound error
func (c collection[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return errs.NewDatabaseError("delete", c.entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound(c.entity)
	}
	return nil
}
