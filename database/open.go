package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/portfolio-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the store described by cfg and verifies the connection.
func Open(cfg config.DatabaseConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLogger,
	}

	var db *gorm.DB
	var err error

	switch cfg.Type {
	case "supa", "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  PostgresDSN(cfg, cfg.Host),
			PreferSimpleProtocol: true,
		}), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		if len(cfg.ReplicaHosts) > 0 {
			replicas := make([]gorm.Dialector, 0, len(cfg.ReplicaHosts))
			for _, host := range cfg.ReplicaHosts {
				replicas = append(replicas, postgres.New(postgres.Config{
					DSN:                  PostgresDSN(cfg, host),
					PreferSimpleProtocol: true,
				}))
			}
			if err := db.Use(dbresolver.Register(dbresolver.Config{
				Replicas: replicas,
				Policy:   dbresolver.RandomPolicy{},
			})); err != nil {
				return nil, fmt.Errorf("register read replicas: %w", err)
			}
		}
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.SQLitePath)), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}

		// A single writer avoids "database is locked" between pooled connections
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.Type)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

// PostgresDSN builds a keyword/value connection string for host.
func PostgresDSN(cfg config.DatabaseConfig, host string) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
}

// SQLiteDSN enables foreign keys and a busy timeout on the given database file.
func SQLiteDSN(path string) string {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return path + separator + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
