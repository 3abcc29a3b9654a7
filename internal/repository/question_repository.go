package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-service/internal/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) (*model.Question, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	ListActiveBySite(ctx context.Context, siteID uuid.UUID) ([]model.Question, error)
	ListActive(ctx context.Context) ([]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresQuestionRepository struct {
	db *sqlx.DB
}

func NewPostgresQuestionRepository(db *sqlx.DB) QuestionRepository {
	return &postgresQuestionRepository{db: db}
}

func (r *postgresQuestionRepository) Create(ctx context.Context, question *model.Question) (*model.Question, error) {
	query := `
		INSERT INTO questions (site_id, question_text, emoji, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, question.SiteID, question.QuestionText, question.Emoji, question.Active)
	if err := row.Scan(&question.ID, &question.CreatedAt); err != nil {
		return nil, err
	}
	return question, nil
}

func (r *postgresQuestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	var question model.Question
	query := `SELECT id, site_id, question_text, emoji, active, created_at FROM questions WHERE id = $1`
	err := r.db.GetContext(ctx, &question, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *postgresQuestionRepository) ListActiveBySite(ctx context.Context, siteID uuid.UUID) ([]model.Question, error) {
	questions := []model.Question{}
	query := `
		SELECT id, site_id, question_text, emoji, active, created_at
		FROM questions
		WHERE site_id = $1 AND active
		ORDER BY created_at
	`
	err := r.db.SelectContext(ctx, &questions, query, siteID)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *postgresQuestionRepository) ListActive(ctx context.Context) ([]model.Question, error) {
	questions := []model.Question{}
	query := `
		SELECT id, site_id, question_text, emoji, active, created_at
		FROM questions
		WHERE active
		ORDER BY created_at
	`
	err := r.db.SelectContext(ctx, &questions, query)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *postgresQuestionRepository) Update(ctx context.Context, question *model.Question) error {
	query := `UPDATE questions SET question_text = $1, emoji = $2, active = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, question.QuestionText, question.Emoji, question.Active, question.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM questions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
