package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// FeedbackResponse is one answer to one question.
type FeedbackResponse struct {
	QuestionID uuid.UUID   `json:"question_id"`
	Rating     RatingLevel `json:"rating"`
}

// ResponseList is stored as a JSONB column on the submission row.
type ResponseList []FeedbackResponse

func (l ResponseList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *ResponseList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported source type for ResponseList")
}

// FeedbackSubmission is one respondent's full set of answers for a
// site/canteen visit.
type FeedbackSubmission struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	SiteID      uuid.UUID    `db:"site_id" json:"site_id"`
	CanteenID   uuid.UUID    `db:"canteen_id" json:"canteen_id"`
	UserID      *uuid.UUID   `db:"user_id" json:"user_id,omitempty"`
	Username    *string      `db:"username" json:"username,omitempty"`
	Responses   ResponseList `db:"responses" json:"responses"`
	SubmittedAt time.Time    `db:"submitted_at" json:"submitted_at"`
}
