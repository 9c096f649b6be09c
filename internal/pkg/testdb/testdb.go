// Package testdb starts a disposable PostgreSQL container with the order
// schema applied, for integration tests.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated PostgreSQL instance.
type Database struct {
	Container *postgres.PostgresContainer
	SQL       *sql.DB
	Gorm      *gorm.DB
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	gormDB, sqlDB, err := postgres_adapter.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{
		Container: container,
		SQL:       sqlDB,
		Gorm:      gormDB,
	}, nil
}

// Truncate empties every order table.
func (d *Database) Truncate() error {
	return d.Gorm.Exec("TRUNCATE TABLE order_items, orders").Error
}

// Stop closes the pool and removes the container.
func (d *Database) Stop(ctx context.Context) error {
	_ = d.SQL.Close()
	return d.Container.Terminate(ctx)
}
