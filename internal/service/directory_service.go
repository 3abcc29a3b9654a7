package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"feedback-service/internal/model"
	"feedback-service/internal/repository"
)

var (
	ErrSiteNotFound    = errors.New("site not found")
	ErrCanteenNotFound = errors.New("canteen not found")
)

// DirectoryService owns the site/canteen directory that drives every
// site-selection list in the clients.
type DirectoryService interface {
	ListSites(ctx context.Context) ([]model.Site, error)
	GetSite(ctx context.Context, id uuid.UUID) (*model.Site, error)
	CreateSite(ctx context.Context, location, branchLocation string) (*model.Site, error)
	UpdateSite(ctx context.Context, id uuid.UUID, location, branchLocation string) (*model.Site, error)
	DeleteSite(ctx context.Context, id uuid.UUID) error

	ListCanteens(ctx context.Context, siteID uuid.UUID) ([]model.Canteen, error)
	AddCanteen(ctx context.Context, siteID uuid.UUID, name string) (*model.Canteen, error)
	RemoveCanteen(ctx context.Context, id uuid.UUID) error
}

type directoryService struct {
	siteRepo    repository.SiteRepository
	canteenRepo repository.CanteenRepository
}

func NewDirectoryService(siteRepo repository.SiteRepository, canteenRepo repository.CanteenRepository) DirectoryService {
	return &directoryService{
		siteRepo:    siteRepo,
		canteenRepo: canteenRepo,
	}
}

func (s *directoryService) ListSites(ctx context.Context) ([]model.Site, error) {
	return s.siteRepo.List(ctx)
}

func (s *directoryService) GetSite(ctx context.Context, id uuid.UUID) (*model.Site, error) {
	site, err := s.siteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}
	return site, nil
}

func (s *directoryService) CreateSite(ctx context.Context, location, branchLocation string) (*model.Site, error) {
	site := &model.Site{
		Location:       location,
		BranchLocation: branchLocation,
	}
	return s.siteRepo.Create(ctx, site)
}

func (s *directoryService) UpdateSite(ctx context.Context, id uuid.UUID, location, branchLocation string) (*model.Site, error) {
	site, err := s.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	site.Location = location
	site.BranchLocation = branchLocation
	if err := s.siteRepo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *directoryService) DeleteSite(ctx context.Context, id uuid.UUID) error {
	return s.siteRepo.Delete(ctx, id)
}

func (s *directoryService) ListCanteens(ctx context.Context, siteID uuid.UUID) ([]model.Canteen, error) {
	return s.canteenRepo.ListBySite(ctx, siteID)
}

func (s *directoryService) AddCanteen(ctx context.Context, siteID uuid.UUID, name string) (*model.Canteen, error) {
	site, err := s.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}

	canteen := &model.Canteen{
		SiteID: siteID,
		Name:   name,
	}
	return s.canteenRepo.Create(ctx, canteen)
}

func (s *directoryService) RemoveCanteen(ctx context.Context, id uuid.UUID) error {
	return s.canteenRepo.Delete(ctx, id)
}
