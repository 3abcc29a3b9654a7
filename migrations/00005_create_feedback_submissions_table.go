package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateFeedbackSubmissionsTable, downCreateFeedbackSubmissionsTable)
}

func upCreateFeedbackSubmissionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS feedback_submissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id) ON DELETE CASCADE,
			canteen_id UUID NOT NULL REFERENCES canteens(id) ON DELETE CASCADE,
			user_id UUID REFERENCES users(id) ON DELETE SET NULL,
			username TEXT,
			responses JSONB NOT NULL DEFAULT '[]',
			submitted_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_feedback_submissions_site_id ON feedback_submissions(site_id);
		CREATE INDEX IF NOT EXISTS idx_feedback_submissions_submitted_at ON feedback_submissions(submitted_at);
	`)
	return err
}

func downCreateFeedbackSubmissionsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS feedback_submissions;`)
	return err
}
