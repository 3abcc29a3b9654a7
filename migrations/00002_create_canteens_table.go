package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateCanteensTable, downCreateCanteensTable)
}

func upCreateCanteensTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS canteens (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			UNIQUE (site_id, name)
		);

		CREATE INDEX IF NOT EXISTS idx_canteens_site_id ON canteens(site_id);
	`)
	return err
}

func downCreateCanteensTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS canteens;`)
	return err
}
