// Package pgtest starts a disposable PostgreSQL container with the depot
// schema for repository integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	depotpostgres "depot/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a migrated database running in its own container.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates every depot table.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(connStr), depotpostgres.GormConfig())
	if err != nil {
		return nil, err
	}

	if err = depotpostgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every table and resets sequences.
func (d *Database) Truncate() error {
	stmt := "TRUNCATE TABLE " + strings.Join(depotpostgres.Tables(), ", ") + " RESTART IDENTITY CASCADE"
	return d.DB.Exec(stmt).Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
