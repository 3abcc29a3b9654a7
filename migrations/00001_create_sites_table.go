package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSitesTable, downCreateSitesTable)
}

func upCreateSitesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE sites (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  location TEXT NOT NULL,
	  branch_location TEXT NOT NULL DEFAULT '',
	  created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	`

	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}

	return nil
}

func downCreateSitesTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS sites;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
