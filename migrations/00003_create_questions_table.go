package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateQuestionsTable, downCreateQuestionsTable)
}

func upCreateQuestionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
			question_text TEXT NOT NULL,
			emoji TEXT,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_questions_site_id ON questions(site_id);
	`)
	return err
}

func downCreateQuestionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS questions;`)
	return err
}
