package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/model"
	"feedback-service/internal/service"
)

func TestQuestionService_Update_PreservesActiveWhenOmitted(t *testing.T) {
	deactivated := &model.Question{
		ID:           uuid.New(),
		SiteID:       uuid.New(),
		QuestionText: "How was the food?",
		Active:       false,
	}
	questionRepo := &stubQuestionRepo{byID: deactivated}
	svc := service.NewQuestionService(questionRepo, &stubSiteRepo{})

	updated, err := svc.Update(context.Background(), deactivated.ID, "How was the meal?", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "How was the meal?", updated.QuestionText)
	require.False(t, updated.Active)
	require.NotNil(t, questionRepo.updated)
	require.False(t, questionRepo.updated.Active)
}

func TestQuestionService_Update_SetsActiveWhenGiven(t *testing.T) {
	deactivated := &model.Question{
		ID:           uuid.New(),
		SiteID:       uuid.New(),
		QuestionText: "How was the food?",
		Active:       false,
	}
	questionRepo := &stubQuestionRepo{byID: deactivated}
	svc := service.NewQuestionService(questionRepo, &stubSiteRepo{})

	active := true
	updated, err := svc.Update(context.Background(), deactivated.ID, "How was the food?", nil, &active)
	require.NoError(t, err)
	require.True(t, updated.Active)
}

func TestQuestionService_Update_NotFound(t *testing.T) {
	svc := service.NewQuestionService(&stubQuestionRepo{}, &stubSiteRepo{})

	_, err := svc.Update(context.Background(), uuid.New(), "text here", nil, nil)
	require.ErrorIs(t, err, service.ErrQuestionNotFound)
}
