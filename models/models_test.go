package models

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestBeforeCreateDefaults(t *testing.T) {
	db := openTestDB(t)

	contact := ContactSubmission{Name: "Aina", Email: "aina@example.com", Phone: "012", Service: "Web Design", Message: "hi"}
	require.NoError(t, db.Create(&contact).Error)
	assert.NotEqual(t, uuid.Nil, contact.ID)
	assert.False(t, contact.IsRead)
	assert.False(t, contact.SubmittedAt.IsZero())

	project := Project{Title: "Site", Description: "d", Client: "c", Category: "Web Design"}
	require.NoError(t, db.Create(&project).Error)
	assert.NotNil(t, project.Tags)
	assert.NotNil(t, project.Images)

	quotation := Quotation{QuoteNumber: "NT-2026-0001", ClientName: "c"}
	require.NoError(t, db.Create(&quotation).Error)
	assert.Equal(t, QuotationStatusDraft, quotation.Status)

	var reloaded Project
	require.NoError(t, db.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, project.ID, reloaded.ID)
	assert.Empty(t, reloaded.Images)
}

func TestQuoteNumberIsUnique(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&Quotation{QuoteNumber: "NT-2026-0001"}).Error)
	assert.Error(t, db.Create(&Quotation{QuoteNumber: "NT-2026-0001"}).Error)
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}

func TestColumnMismatchReport(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Exec("ALTER TABLE projects ADD COLUMN legacy_slug TEXT").Error)

	var out bytes.Buffer
	total := GenerateColumnMismatchReport(&out, db)

	assert.Equal(t, 1, total)
	assert.Contains(t, out.String(), "--- Table: projects ---")
	assert.Contains(t, out.String(), "  - legacy_slug")
}

func TestFindColumnMismatches(t *testing.T) {
	got := findColumnMismatches([]string{"id", "zeta", "title", "alpha"}, []string{"id", "title"})
	assert.Equal(t, []string{"alpha", "zeta"}, got)
}
