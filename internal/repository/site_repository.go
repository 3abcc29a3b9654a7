package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-service/internal/model"
)

type SiteRepository interface {
	Create(ctx context.Context, site *model.Site) (*model.Site, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Site, error)
	List(ctx context.Context) ([]model.Site, error)
	Update(ctx context.Context, site *model.Site) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresSiteRepository struct {
	db *sqlx.DB
}

func NewPostgresSiteRepository(db *sqlx.DB) SiteRepository {
	return &postgresSiteRepository{db: db}
}

func (r *postgresSiteRepository) Create(ctx context.Context, site *model.Site) (*model.Site, error) {
	query := `
		INSERT INTO sites (location, branch_location)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, site.Location, site.BranchLocation)
	if err := row.Scan(&site.ID, &site.CreatedAt); err != nil {
		return nil, err
	}
	return site, nil
}

func (r *postgresSiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Site, error) {
	var site model.Site
	query := `SELECT id, location, branch_location, created_at FROM sites WHERE id = $1`
	err := r.db.GetContext(ctx, &site, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &site, nil
}

func (r *postgresSiteRepository) List(ctx context.Context) ([]model.Site, error) {
	sites := []model.Site{}
	query := `SELECT id, location, branch_location, created_at FROM sites ORDER BY created_at`
	err := r.db.SelectContext(ctx, &sites, query)
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *postgresSiteRepository) Update(ctx context.Context, site *model.Site) error {
	query := `UPDATE sites SET location = $1, branch_location = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, site.Location, site.BranchLocation, site.ID)
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

func (r *postgresSiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sites WHERE id = $1`
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
