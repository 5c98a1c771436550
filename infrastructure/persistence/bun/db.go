// Package bun provides the relational persistence layer built on the bun ORM.
package bun

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"bookshop/domain/model"
	"bookshop/infrastructure/config"
)

// NewDB opens the configured database and prepares the schema.
func NewDB(cfg *config.Config) (*bun.DB, error) {
	sqldb, err := sql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var db *bun.DB
	switch cfg.DBDriver {
	case "postgres":
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	// Join model must be registered before any m2m relation is queried.
	db.RegisterModel((*model.BookAuthor)(nil))

	if cfg.IsDevelopment() {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := createSchema(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*model.Book)(nil),
		(*model.Author)(nil),
		(*model.Review)(nil),
		(*model.BookAuthor)(nil),
	}
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}
	return nil
}
