package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/model"
	repo "feedback-service/internal/repository"
)

func TestPostgresFeedbackRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFeedbackRepository(sqlxDB)

	siteID := uuid.New()
	canteenID := uuid.New()
	questionID := uuid.New()
	sub := &model.FeedbackSubmission{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: model.ResponseList{{QuestionID: questionID, Rating: model.RatingGood}},
	}

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO feedback_submissions (site_id, canteen_id, user_id, username, responses)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`)).WithArgs(siteID, canteenID, nil, nil, sub.Responses).
		WillReturnRows(sqlmock.NewRows([]string{"id", "submitted_at"}).AddRow(id, now))

	created, err := r.Create(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.WithinDuration(t, now, created.SubmittedAt, time.Second)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFeedbackRepository_ListBySite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFeedbackRepository(sqlxDB)

	siteID := uuid.New()
	questionID := uuid.New()
	responses := []byte(`[{"question_id":"` + questionID.String() + `","rating":3}]`)

	rows := sqlmock.NewRows([]string{"id", "site_id", "canteen_id", "user_id", "username", "responses", "submitted_at"}).
		AddRow(uuid.New(), siteID, uuid.New(), nil, nil, responses, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, site_id, canteen_id, user_id, username, responses, submitted_at
		FROM feedback_submissions
		WHERE site_id = $1
		ORDER BY submitted_at DESC
	`)).WithArgs(siteID).WillReturnRows(rows)

	subs, err := r.ListBySite(context.Background(), siteID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Responses, 1)
	require.Equal(t, questionID, subs[0].Responses[0].QuestionID)
	require.Equal(t, model.RatingGood, subs[0].Responses[0].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFeedbackRepository_List_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresFeedbackRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, site_id, canteen_id, user_id, username, responses, submitted_at
		FROM feedback_submissions
		ORDER BY submitted_at DESC
	`)).WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "canteen_id", "user_id", "username", "responses", "submitted_at"}))

	subs, err := r.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, subs)
	require.NoError(t, mock.ExpectationsWereMet())
}
