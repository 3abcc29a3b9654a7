package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-service/internal/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, sub *model.FeedbackSubmission) (*model.FeedbackSubmission, error)
	List(ctx context.Context) ([]model.FeedbackSubmission, error)
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.FeedbackSubmission, error)
}

type postgresFeedbackRepository struct {
	db *sqlx.DB
}

func NewPostgresFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: db}
}

func (r *postgresFeedbackRepository) Create(ctx context.Context, sub *model.FeedbackSubmission) (*model.FeedbackSubmission, error) {
	query := `
		INSERT INTO feedback_submissions (site_id, canteen_id, user_id, username, responses)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`
	row := r.db.QueryRowxContext(ctx, query, sub.SiteID, sub.CanteenID, sub.UserID, sub.Username, sub.Responses)
	if err := row.Scan(&sub.ID, &sub.SubmittedAt); err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *postgresFeedbackRepository) List(ctx context.Context) ([]model.FeedbackSubmission, error) {
	subs := []model.FeedbackSubmission{}
	query := `
		SELECT id, site_id, canteen_id, user_id, username, responses, submitted_at
		FROM feedback_submissions
		ORDER BY submitted_at DESC
	`
	err := r.db.SelectContext(ctx, &subs, query)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *postgresFeedbackRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.FeedbackSubmission, error) {
	subs := []model.FeedbackSubmission{}
	query := `
		SELECT id, site_id, canteen_id, user_id, username, responses, submitted_at
		FROM feedback_submissions
		WHERE site_id = $1
		ORDER BY submitted_at DESC
	`
	err := r.db.SelectContext(ctx, &subs, query, siteID)
	if err != nil {
		return nil, err
	}
	return subs, nil
}
