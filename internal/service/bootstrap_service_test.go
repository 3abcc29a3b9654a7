package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"feedback-service/internal/model"
	"feedback-service/internal/service"
)

type stubSiteRepo struct {
	sites   []model.Site
	created []*model.Site
}

func (s *stubSiteRepo) Create(_ context.Context, site *model.Site) (*model.Site, error) {
	site.ID = uuid.New()
	s.created = append(s.created, site)
	s.sites = append(s.sites, *site)
	return site, nil
}

func (s *stubSiteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Site, error) {
	for i := range s.sites {
		if s.sites[i].ID == id {
			return &s.sites[i], nil
		}
	}
	return nil, nil
}

func (s *stubSiteRepo) List(context.Context) ([]model.Site, error) { return s.sites, nil }
func (s *stubSiteRepo) Update(context.Context, *model.Site) error  { return nil }
func (s *stubSiteRepo) Delete(context.Context, uuid.UUID) error    { return nil }

type stubUserRepo struct {
	adminCount int
	created    []*model.User
}

func (s *stubUserRepo) Create(_ context.Context, user *model.User) (uuid.UUID, error) {
	id := uuid.New()
	s.created = append(s.created, user)
	return id, nil
}

func (s *stubUserRepo) FindByUsername(context.Context, uuid.UUID, string) (*model.User, error) {
	return nil, nil
}
func (s *stubUserRepo) FindByID(context.Context, uuid.UUID) (*model.User, error) { return nil, nil }
func (s *stubUserRepo) List(context.Context) ([]model.User, error)               { return nil, nil }
func (s *stubUserRepo) CountByRole(context.Context, string) (int, error) {
	return s.adminCount, nil
}
func (s *stubUserRepo) Update(context.Context, *model.User) error { return nil }
func (s *stubUserRepo) Delete(context.Context, uuid.UUID) error   { return nil }

func TestEnsureBootstrapAdmin_EmptyDatabase(t *testing.T) {
	siteRepo := &stubSiteRepo{}
	userRepo := &stubUserRepo{}

	created, err := service.EnsureBootstrapAdmin(context.Background(), siteRepo, userRepo, service.BootstrapAdminConfig{
		Username:     "root",
		Password:     "change-me",
		SiteLocation: "North Campus",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, model.RoleAdmin, created.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("change-me")))

	// A home site was created for the admin on the empty database.
	require.Len(t, siteRepo.created, 1)
	require.Equal(t, "North Campus", siteRepo.created[0].Location)
	require.Equal(t, siteRepo.created[0].ID, created.SiteID)
	require.Len(t, userRepo.created, 1)
}

func TestEnsureBootstrapAdmin_ReusesExistingSite(t *testing.T) {
	existing := model.Site{ID: uuid.New(), Location: "South Campus"}
	siteRepo := &stubSiteRepo{sites: []model.Site{existing}}
	userRepo := &stubUserRepo{}

	created, err := service.EnsureBootstrapAdmin(context.Background(), siteRepo, userRepo, service.BootstrapAdminConfig{
		Username: "root",
		Password: "change-me",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, existing.ID, created.SiteID)
	require.Empty(t, siteRepo.created)
}

func TestEnsureBootstrapAdmin_SkipsWhenAdminExists(t *testing.T) {
	siteRepo := &stubSiteRepo{}
	userRepo := &stubUserRepo{adminCount: 1}

	created, err := service.EnsureBootstrapAdmin(context.Background(), siteRepo, userRepo, service.BootstrapAdminConfig{
		Username: "root",
		Password: "change-me",
	})
	require.NoError(t, err)
	require.Nil(t, created)
	require.Empty(t, userRepo.created)
	require.Empty(t, siteRepo.created)
}

func TestEnsureBootstrapAdmin_SkipsWhenUnconfigured(t *testing.T) {
	siteRepo := &stubSiteRepo{}
	userRepo := &stubUserRepo{}

	created, err := service.EnsureBootstrapAdmin(context.Background(), siteRepo, userRepo, service.BootstrapAdminConfig{})
	require.NoError(t, err)
	require.Nil(t, created)
	require.Empty(t, userRepo.created)
	require.Empty(t, siteRepo.created)
}
