package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"feedback-service/internal/events"
	"feedback-service/internal/model"
	"feedback-service/internal/repository"
)

var (
	ErrIncompleteSubmission = errors.New("submission must answer every active question exactly once")
	ErrInvalidRating        = errors.New("rating must be between 1 and 4")
	ErrUnknownQuestion      = errors.New("response references a question outside the site")
	ErrCanteenMismatch      = errors.New("canteen does not belong to the site")
)

type SubmitFeedbackInput struct {
	SiteID    uuid.UUID
	CanteenID uuid.UUID
	UserID    *uuid.UUID
	Username  *string
	Responses []model.FeedbackResponse
}

type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*model.FeedbackSubmission, error)
	List(ctx context.Context, siteID *uuid.UUID) ([]model.FeedbackSubmission, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	questionRepo repository.QuestionRepository
	canteenRepo  repository.CanteenRepository
	publisher    events.FeedbackPublisher
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	questionRepo repository.QuestionRepository,
	canteenRepo repository.CanteenRepository,
	publisher events.FeedbackPublisher,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		questionRepo: questionRepo,
		canteenRepo:  canteenRepo,
		publisher:    publisher,
	}
}

// Submit persists one atomic form submission. The form is valid only when
// it carries exactly one in-range rating for every active question of the
// site and the canteen belongs to that site. A submission that fails
// validation or persistence is an error to the caller; there is no silent
// success path.
func (s *feedbackService) Submit(ctx context.Context, input SubmitFeedbackInput) (*model.FeedbackSubmission, error) {
	canteen, err := s.canteenRepo.FindByID(ctx, input.CanteenID)
	if err != nil {
		return nil, err
	}
	if canteen == nil || canteen.SiteID != input.SiteID {
		return nil, ErrCanteenMismatch
	}

	questions, err := s.questionRepo.ListActiveBySite(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}

	active := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		active[q.ID] = false
	}

	for _, resp := range input.Responses {
		if !resp.Rating.Valid() {
			return nil, ErrInvalidRating
		}
		seen, ok := active[resp.QuestionID]
		if !ok {
			return nil, ErrUnknownQuestion
		}
		if seen {
			return nil, ErrIncompleteSubmission
		}
		active[resp.QuestionID] = true
	}

	if len(input.Responses) != len(questions) {
		return nil, ErrIncompleteSubmission
	}

	sub := &model.FeedbackSubmission{
		SiteID:    input.SiteID,
		CanteenID: input.CanteenID,
		UserID:    input.UserID,
		Username:  input.Username,
		Responses: input.Responses,
	}

	created, err := s.feedbackRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishFeedbackReceived(created); err != nil {
			// The submission is already durable; the live push is best effort.
			slog.ErrorContext(ctx, "Failed to publish feedback event", slog.String("error", err.Error()))
		}
	}

	return created, nil
}

func (s *feedbackService) List(ctx context.Context, siteID *uuid.UUID) ([]model.FeedbackSubmission, error) {
	if siteID != nil {
		return s.feedbackRepo.ListBySite(ctx, *siteID)
	}
	return s.feedbackRepo.List(ctx)
}
