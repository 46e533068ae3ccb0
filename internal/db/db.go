package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ttt/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects using DATABASE_URL.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	cfg := config.Load()
	cfg.DatabaseURL = dsn
	return OpenConfig(cfg)
}

// OpenConfig picks a dialect from the DSN scheme and applies pool settings.
func OpenConfig(cfg config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(cfg.DBLogLevel),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite(cfg.DatabaseURL) {
		// each :memory: connection is its own database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	}
	return conn, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	switch {
	case dsn == "":
		return nil, errors.New("database url is empty")
	case IsPostgres(dsn):
		return postgres.Open(dsn), nil
	case isSQLite(dsn):
		return sqlite.Open(sqliteDSN(dsn)), nil
	}
	return nil, fmt.Errorf("unsupported database url: %q", dsn)
}

// IsPostgres reports whether the URL selects the Postgres dialect.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func isSQLite(dsn string) bool {
	return dsn == ":memory:" || strings.HasPrefix(dsn, "sqlite://") || strings.HasPrefix(dsn, "file:")
}

// sqliteDSN turns foreign key enforcement on; SQLite leaves it off by default.
func sqliteDSN(dsn string) string {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if path == ":memory:" {
		path = "file::memory:"
	}
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func newLogger(level string) logger.Interface {
	return logger.New(log.New(os.Stdout, "", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// models lists tables in dependency order.
func models() []any {
	return []any{
		&Tournament{},
		&Round{},
		&Match{},
		&Team{},
		&Player{},
	}
}

// Migrate runs GORM auto-migrations for the tournament tables. Safe to call repeatedly.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(models()...); err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}

// Drop removes every tournament table, association table first. Missing tables are ignored.
func Drop(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	tables := []any{TeamPlayersTable}
	list := models()
	for i := len(list) - 1; i >= 0; i-- {
		tables = append(tables, list[i])
	}
	return conn.Migrator().DropTable(tables...)
}
