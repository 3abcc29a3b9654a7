package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"feedback-service/internal/model"
	"feedback-service/internal/repository"
)

// BootstrapAdminConfig seeds the first admin account. Registration only
// ever creates regular users and role promotion requires an existing
// admin token, so an empty database needs this escape hatch to make the
// admin surface reachable at all.
type BootstrapAdminConfig struct {
	Username     string
	Password     string
	SiteLocation string
}

const defaultBootstrapSite = "Head Office"

// EnsureBootstrapAdmin creates the configured admin when no admin exists
// yet. It is a no-op when the config is empty or an admin is already
// present. Returns the created user, or nil when nothing was done.
func EnsureBootstrapAdmin(
	ctx context.Context,
	siteRepo repository.SiteRepository,
	userRepo repository.UserRepository,
	cfg BootstrapAdminConfig,
) (*model.User, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, nil
	}

	admins, err := userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if admins > 0 {
		return nil, nil
	}

	// The users table requires a home site. Reuse the first existing
	// site; on a completely empty database create the configured one.
	sites, err := siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var siteID uuid.UUID
	if len(sites) > 0 {
		siteID = sites[0].ID
	} else {
		location := cfg.SiteLocation
		if location == "" {
			location = defaultBootstrapSite
		}
		site, err := siteRepo.Create(ctx, &model.Site{Location: location})
		if err != nil {
			return nil, err
		}
		siteID = site.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		SiteID:       siteID,
		Username:     cfg.Username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleAdmin,
	}
	newID, err := userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = newID

	slog.InfoContext(ctx, "Bootstrap admin created",
		slog.String("username", cfg.Username),
		slog.String("site_id", siteID.String()),
	)
	return user, nil
}
