package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

/*
Model tooling.

GENERATE_MODELS=true migrates every model and writes typed query helpers
(gorm gen) to ./generated.

GENERATE_COLUMN_REPORT=true prints, per table, the database columns that no
struct field maps to. Useful after hand-editing a production schema:

	=== COLUMN MISMATCH REPORT ===
	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_slug
*/

// All returns one zero value of every persisted model, in migration order.
func All() []any {
	return []any{
		&ContactSubmission{},
		&Quotation{},
		&QuoteSequence{},
		&Project{},
		&Testimonial{},
	}
}

func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 verbose,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	fmt.Println("Migrating models...")
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}

	GenerateColumnMismatchReport(os.Stdout, db)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	fmt.Println("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport writes a report of database columns that
// aren't accounted for in Go models.
func GenerateColumnMismatchReport(w io.Writer, db *gorm.DB) int {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for _, model := range All() {
		s, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
		if err != nil {
			fmt.Fprintf(w, "Error parsing model %T: %v\n", model, err)
			continue
		}

		fmt.Fprintf(w, "\n--- Table: %s ---\n", s.Table)

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			fmt.Fprintf(w, "Error getting columns for table %s: %v\n", s.Table, err)
			continue
		}
		if len(columnTypes) == 0 {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}

		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		mismatches := findColumnMismatches(dbColumns, s.DBNames)
		if len(mismatches) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	sort.Strings(mismatches)
	return mismatches
}
