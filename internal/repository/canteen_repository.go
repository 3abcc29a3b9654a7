package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"feedback-service/internal/model"
)

type CanteenRepository interface {
	Create(ctx context.Context, canteen *model.Canteen) (*model.Canteen, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Canteen, error)
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.Canteen, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresCanteenRepository struct {
	db *sqlx.DB
}

func NewPostgresCanteenRepository(db *sqlx.DB) CanteenRepository {
	return &postgresCanteenRepository{db: db}
}

func (r *postgresCanteenRepository) Create(ctx context.Context, canteen *model.Canteen) (*model.Canteen, error) {
	query := `
		INSERT INTO canteens (site_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	row := r.db.QueryRowxContext(ctx, query, canteen.SiteID, canteen.Name)
	if err := row.Scan(&canteen.ID, &canteen.CreatedAt); err != nil {
		return nil, err
	}
	return canteen, nil
}

func (r *postgresCanteenRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Canteen, error) {
	var canteen model.Canteen
	query := `SELECT id, site_id, name, created_at FROM canteens WHERE id = $1`
	err := r.db.GetContext(ctx, &canteen, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &canteen, nil
}

func (r *postgresCanteenRepository) ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.Canteen, error) {
	canteens := []model.Canteen{}
	query := `SELECT id, site_id, name, created_at FROM canteens WHERE site_id = $1 ORDER BY name`
	err := r.db.SelectContext(ctx, &canteens, query, siteID)
	if err != nil {
		return nil, err
	}
	return canteens, nil
}

func (r *postgresCanteenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM canteens WHERE id = $1`
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
