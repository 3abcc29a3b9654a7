package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"feedback-service/internal/model"
	"feedback-service/internal/repository"
)

var ErrQuestionNotFound = errors.New("question not found")

type QuestionService interface {
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.Question, error)
	Create(ctx context.Context, siteID uuid.UUID, text string, emoji *string) (*model.Question, error)
	Update(ctx context.Context, id uuid.UUID, text string, emoji *string, active *bool) (*model.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	siteRepo     repository.SiteRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, siteRepo repository.SiteRepository) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		siteRepo:     siteRepo,
	}
}

func (s *questionService) ListBySite(ctx context.Context, siteID uuid.UUID) ([]model.Question, error) {
	return s.questionRepo.ListActiveBySite(ctx, siteID)
}

func (s *questionService) Create(ctx context.Context, siteID uuid.UUID, text string, emoji *string) (*model.Question, error) {
	site, err := s.siteRepo.FindByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, ErrSiteNotFound
	}

	question := &model.Question{
		SiteID:       siteID,
		QuestionText: text,
		Emoji:        emoji,
		Active:       true,
	}
	return s.questionRepo.Create(ctx, question)
}

// Update edits a question in place. A nil active leaves the current
// activation state untouched, so a text-only edit cannot re-activate a
// deactivated question.
func (s *questionService) Update(ctx context.Context, id uuid.UUID, text string, emoji *string, active *bool) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	question.QuestionText = text
	question.Emoji = emoji
	if active != nil {
		question.Active = *active
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}
