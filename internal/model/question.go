package model

import (
	"time"

	"github.com/google/uuid"
)

// Question is one feedback prompt, scoped to a single site.
type Question struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SiteID       uuid.UUID `db:"site_id" json:"site_id"`
	QuestionText string    `db:"question_text" json:"question_text"`
	Emoji        *string   `db:"emoji" json:"emoji,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
