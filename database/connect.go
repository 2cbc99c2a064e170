package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/netriktechworks/site-backend/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Dialector picks the GORM driver for DB_TYPE.
//
//	postgres | supa  -> DATABASE_URL or DB_HOST/DB_USER/... (sslmode=require for supa)
//	mysql            -> MariaDB/MySQL via DATABASE_URL or DB_HOST/DB_USER/...
//	sqlite           -> SQLITE_PATH (default netrik.db)
func Dialector(c map[string]string, dsn string) (gorm.Dialector, error) {
	switch dbType := strings.ToLower(config.GetString(c, "DB_TYPE", "postgres")); dbType {
	case "postgres", "supa":
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil
	case "mysql", "mariadb":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// PrimaryDSN builds the connection string for the primary database.
func PrimaryDSN(c map[string]string) string {
	if url := config.GetString(c, "DATABASE_URL", ""); url != "" {
		return url
	}

	switch strings.ToLower(config.GetString(c, "DB_TYPE", "postgres")) {
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		)
	case "mysql", "mariadb":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.GetString(c, "DB_USER", "root"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_PORT", "3306"),
			config.GetString(c, "DB_NAME", "netrik_techworks"),
		)
	case "sqlite":
		return config.GetString(c, "SQLITE_PATH", "netrik.db")
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "netrik_techworks"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
	}
}

// Open connects to the configured database. When DB_REPLICA_DSN is set,
// reads are routed to the replica through dbresolver; writes and
// transactions stay on the primary.
func Open(c map[string]string) (*gorm.DB, error) {
	primary, err := Dialector(c, PrimaryDSN(c))
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(primary, &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if replicaDSN := config.GetString(c, "DB_REPLICA_DSN", ""); replicaDSN != "" {
		replica, err := Dialector(c, replicaDSN)
		if err != nil {
			return nil, err
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{replica},
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(config.GetInt(c, "DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxLifetime(config.GetSeconds(c, "DB_CONN_MAX_LIFETIME_SECONDS", 3600))

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}
