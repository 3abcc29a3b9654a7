package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type DeviceTokenRepository interface {
	Register(ctx context.Context, userID uuid.UUID, deviceToken string) error
	ListAdminTokens(ctx context.Context) ([]string, error)
}

type postgresDeviceTokenRepository struct {
	db *sqlx.DB
}

func NewPostgresDeviceTokenRepository(db *sqlx.DB) DeviceTokenRepository {
	return &postgresDeviceTokenRepository{db: db}
}

func (r *postgresDeviceTokenRepository) Register(ctx context.Context, userID uuid.UUID, deviceToken string) error {
	query := `
		INSERT INTO user_device_tokens (user_id, device_token)
		VALUES ($1, $2)
		ON CONFLICT (user_id, device_token) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, deviceToken)
	return err
}

func (r *postgresDeviceTokenRepository) ListAdminTokens(ctx context.Context) ([]string, error) {
	var tokens []string
	query := `
		SELECT t.device_token
		FROM user_device_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.role = 'admin'
	`
	err := r.db.SelectContext(ctx, &tokens, query)
	return tokens, err
}
