package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"

	"eventenrollment/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	migrationUp   = "up"
	migrationDown = "down"
)

func main() {
	var migrationsPath, migrationsTable, migrationType, dbURL string
	var steps int
	flag.StringVar(&migrationType, "migration-type", migrationUp, "migration type (up or down)")
	flag.StringVar(&migrationsPath, "migrations-path", "migrations", "path to migrations")
	flag.StringVar(&migrationsTable, "migrations-table", "schema_migrations", "name of migrations table")
	flag.StringVar(&dbURL, "db", "", "database URL (defaults to DATABASE_URL)")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply; 0 means all")
	flag.Parse()

	if dbURL == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		dbURL = cfg.DBUrl
	}

	target, err := withMigrationsTable(dbURL, migrationsTable)
	if err != nil {
		log.Fatalf("invalid database URL: %v", err)
	}

	m, err := migrate.New("file://"+migrationsPath, target)
	if err != nil {
		log.Fatalf("init migrate: %v", err)
	}
	defer m.Close()

	if err := run(m, migrationType, steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		log.Fatalf("migrate %s: %v", migrationType, err)
	}
	fmt.Printf("migrations %s applied successfully\n", migrationType)
}

func run(m *migrate.Migrate, migrationType string, steps int) error {
	switch migrationType {
	case migrationUp:
		if steps > 0 {
			return m.Steps(steps)
		}
		return m.Up()
	case migrationDown:
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	default:
		return fmt.Errorf("unknown migration type %q", migrationType)
	}
}

func withMigrationsTable(dbURL, table string) (string, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("x-migrations-table", table)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
