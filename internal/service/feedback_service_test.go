package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/model"
	"feedback-service/internal/service"
)

type stubFeedbackRepo struct {
	created   []*model.FeedbackSubmission
	createErr error
}

func (s *stubFeedbackRepo) Create(_ context.Context, sub *model.FeedbackSubmission) (*model.FeedbackSubmission, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	sub.ID = uuid.New()
	sub.SubmittedAt = time.Now()
	s.created = append(s.created, sub)
	return sub, nil
}

func (s *stubFeedbackRepo) List(context.Context) ([]model.FeedbackSubmission, error) {
	return nil, nil
}

func (s *stubFeedbackRepo) ListBySite(context.Context, uuid.UUID) ([]model.FeedbackSubmission, error) {
	return nil, nil
}

type stubQuestionRepo struct {
	questions []model.Question
	byID      *model.Question
	updated   *model.Question
}

func (s *stubQuestionRepo) Create(context.Context, *model.Question) (*model.Question, error) {
	return nil, nil
}
func (s *stubQuestionRepo) FindByID(context.Context, uuid.UUID) (*model.Question, error) {
	return s.byID, nil
}
func (s *stubQuestionRepo) ListActiveBySite(context.Context, uuid.UUID) ([]model.Question, error) {
	return s.questions, nil
}
func (s *stubQuestionRepo) ListActive(context.Context) ([]model.Question, error) {
	return s.questions, nil
}
func (s *stubQuestionRepo) Update(_ context.Context, q *model.Question) error {
	s.updated = q
	return nil
}
func (s *stubQuestionRepo) Delete(context.Context, uuid.UUID) error { return nil }

type stubCanteenRepo struct {
	canteen *model.Canteen
}

func (s *stubCanteenRepo) Create(context.Context, *model.Canteen) (*model.Canteen, error) {
	return nil, nil
}
func (s *stubCanteenRepo) FindByID(context.Context, uuid.UUID) (*model.Canteen, error) {
	return s.canteen, nil
}
func (s *stubCanteenRepo) ListBySite(context.Context, uuid.UUID) ([]model.Canteen, error) {
	return nil, nil
}
func (s *stubCanteenRepo) Delete(context.Context, uuid.UUID) error { return nil }

type recordingPublisher struct {
	published []*model.FeedbackSubmission
	err       error
}

func (p *recordingPublisher) PublishFeedbackReceived(sub *model.FeedbackSubmission) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, sub)
	return nil
}

func newSubmitFixture(t *testing.T) (uuid.UUID, uuid.UUID, []model.Question, *model.Canteen) {
	t.Helper()
	siteID := uuid.New()
	canteenID := uuid.New()
	questions := []model.Question{
		{ID: uuid.New(), SiteID: siteID, QuestionText: "How was the food?", Active: true},
		{ID: uuid.New(), SiteID: siteID, QuestionText: "Was the canteen clean?", Active: true},
	}
	canteen := &model.Canteen{ID: canteenID, SiteID: siteID, Name: "Main Hall"}
	return siteID, canteenID, questions, canteen
}

func TestFeedbackService_Submit(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	repo := &stubFeedbackRepo{}
	pub := &recordingPublisher{}
	svc := service.NewFeedbackService(repo, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, pub)

	created, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingExcellent},
			{QuestionID: questions[1].ID, Rating: model.RatingFair},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Len(t, repo.created, 1)
	require.Len(t, pub.published, 1)
}

func TestFeedbackService_Submit_MissingAnswer(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	svc := service.NewFeedbackService(&stubFeedbackRepo{}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingGood},
		},
	})
	require.ErrorIs(t, err, service.ErrIncompleteSubmission)
}

func TestFeedbackService_Submit_DuplicateAnswer(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	svc := service.NewFeedbackService(&stubFeedbackRepo{}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingGood},
			{QuestionID: questions[0].ID, Rating: model.RatingPoor},
		},
	})
	require.ErrorIs(t, err, service.ErrIncompleteSubmission)
}

func TestFeedbackService_Submit_OutOfRangeRating(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	svc := service.NewFeedbackService(&stubFeedbackRepo{}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: 9},
			{QuestionID: questions[1].ID, Rating: model.RatingGood},
		},
	})
	require.ErrorIs(t, err, service.ErrInvalidRating)
}

func TestFeedbackService_Submit_UnknownQuestion(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	svc := service.NewFeedbackService(&stubFeedbackRepo{}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: uuid.New(), Rating: model.RatingGood},
			{QuestionID: questions[1].ID, Rating: model.RatingGood},
		},
	})
	require.ErrorIs(t, err, service.ErrUnknownQuestion)
}

func TestFeedbackService_Submit_CanteenFromOtherSite(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)
	canteen.SiteID = uuid.New()

	svc := service.NewFeedbackService(&stubFeedbackRepo{}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, nil)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingGood},
			{QuestionID: questions[1].ID, Rating: model.RatingGood},
		},
	})
	require.ErrorIs(t, err, service.ErrCanteenMismatch)
}

func TestFeedbackService_Submit_PersistenceFailureSurfaces(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	dbErr := errors.New("connection reset")
	pub := &recordingPublisher{}
	svc := service.NewFeedbackService(&stubFeedbackRepo{createErr: dbErr}, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, pub)

	_, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingGood},
			{QuestionID: questions[1].ID, Rating: model.RatingGood},
		},
	})
	require.ErrorIs(t, err, dbErr)
	require.Empty(t, pub.published)
}

func TestFeedbackService_Submit_PublishFailureDoesNotFailSubmit(t *testing.T) {
	siteID, canteenID, questions, canteen := newSubmitFixture(t)

	repo := &stubFeedbackRepo{}
	pub := &recordingPublisher{err: errors.New("nats down")}
	svc := service.NewFeedbackService(repo, &stubQuestionRepo{questions: questions}, &stubCanteenRepo{canteen: canteen}, pub)

	created, err := svc.Submit(context.Background(), service.SubmitFeedbackInput{
		SiteID:    siteID,
		CanteenID: canteenID,
		Responses: []model.FeedbackResponse{
			{QuestionID: questions[0].ID, Rating: model.RatingGood},
			{QuestionID: questions[1].ID, Rating: model.RatingGood},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Len(t, repo.created, 1)
}
