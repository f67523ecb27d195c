package db

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

//go:embed migrations
var migrations embed.FS

// Open connects to the calculation store and checks it answers.
func Open(dialect, dsn string) (*sql.DB, error) {
	switch dialect {
	case DialectSQLite:
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite serialises writers; one connection also keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return db, nil
	case DialectPostgres:
		db, err := sql.Open("postgres", postgresDSN(dsn))
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unsupported database type %q", dialect)
}

func postgresDSN(dsn string) string {
	if dsn == "" {
		dsn = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if strings.Contains(dsn, "sslmode=") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if strings.Contains(dsn, "?") {
			return dsn + "&sslmode=require"
		}
		return dsn + "?sslmode=require"
	}
	return dsn + " sslmode=require"
}

// Migrate applies the embedded schema migrations for the dialect.
func Migrate(db *sql.DB, dialect string) error {
	goose.SetLogger(&logger{})
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations/"+dialect); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// logger routes goose output through zap.
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) {
	zap.S().Named("migrations").Infof(strings.TrimSuffix(format, "\n"), v...)
}
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Named("migrations").Fatalf(format, v...) }
