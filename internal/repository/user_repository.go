package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByUsername(ctx context.Context, siteID uuid.UUID, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `INSERT INTO users (site_id, username, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, user.SiteID, user.Username, user.PasswordHash, user.Role).Scan(&newID)
	if err != nil {
		return uuid.Nil, err
	}
	return newID, nil
}

func (r *postgresUserRepository) FindByUsername(ctx context.Context, siteID uuid.UUID, username string) (*model.User, error) {
	var user model.User
	query := `SELECT id, site_id, username, password_hash, role, created_at, updated_at FROM users WHERE site_id = $1 AND username = $2`
	err := r.db.GetContext(ctx, &user, query, siteID, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT id, site_id, username, password_hash, role, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	query := `SELECT id, site_id, username, password_hash, role, created_at, updated_at FROM users ORDER BY created_at`
	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	query := `SELECT count(*) FROM users WHERE role = $1`
	err := r.db.GetContext(ctx, &count, query, role)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = $1, password_hash = $2, role = $3, updated_at = now() WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.ID)
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

func (r *postgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
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
