package service

import (
	"context"

	"github.com/google/uuid"

	"feedback-service/internal/model"
	"feedback-service/internal/repository"
	"feedback-service/internal/stats"
)

// QuestionStatsRow pairs a question with its histogram for the admin table.
type QuestionStatsRow struct {
	Question model.Question      `json:"question"`
	Stats    stats.QuestionStats `json:"stats"`
}

// StatsSnapshot is the full aggregate pushed to live subscribers.
type StatsSnapshot struct {
	Questions []QuestionStatsRow `json:"questions"`
	Sites     []stats.SiteStats  `json:"sites"`
	ChartRows []stats.ChartRow   `json:"chart_rows"`
	SiteChart []stats.ChartRow   `json:"site_chart"`
}

type StatsService interface {
	QuestionStats(ctx context.Context, siteID *uuid.UUID) ([]QuestionStatsRow, error)
	SiteStats(ctx context.Context) ([]stats.SiteStats, error)
	QuestionChart(ctx context.Context, siteID *uuid.UUID) ([]stats.ChartRow, error)
	SiteChart(ctx context.Context) ([]stats.ChartRow, error)
	Snapshot(ctx context.Context) (*StatsSnapshot, error)
}

type statsService struct {
	feedbackRepo repository.FeedbackRepository
	questionRepo repository.QuestionRepository
	siteRepo     repository.SiteRepository
}

func NewStatsService(
	feedbackRepo repository.FeedbackRepository,
	questionRepo repository.QuestionRepository,
	siteRepo repository.SiteRepository,
) StatsService {
	return &statsService{
		feedbackRepo: feedbackRepo,
		questionRepo: questionRepo,
		siteRepo:     siteRepo,
	}
}

func (s *statsService) load(ctx context.Context, siteID *uuid.UUID) ([]model.Question, []model.FeedbackSubmission, error) {
	var (
		questions []model.Question
		subs      []model.FeedbackSubmission
		err       error
	)

	if siteID != nil {
		questions, err = s.questionRepo.ListActiveBySite(ctx, *siteID)
		if err != nil {
			return nil, nil, err
		}
		subs, err = s.feedbackRepo.ListBySite(ctx, *siteID)
		if err != nil {
			return nil, nil, err
		}
		return questions, subs, nil
	}

	questions, err = s.questionRepo.ListActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	subs, err = s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return questions, subs, nil
}

// QuestionStats computes one histogram per active question. Without a site
// filter the counts are a single weighted pass over all submissions, never
// a mean of per-site averages.
func (s *statsService) QuestionStats(ctx context.Context, siteID *uuid.UUID) ([]QuestionStatsRow, error) {
	questions, subs, err := s.load(ctx, siteID)
	if err != nil {
		return nil, err
	}

	rows := make([]QuestionStatsRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, QuestionStatsRow{
			Question: q,
			Stats:    stats.CalculateQuestionStats(subs, q.ID),
		})
	}
	return rows, nil
}

// SiteStats always spans all submissions regardless of any selected site,
// seeded from the directory so feedback-free sites remain visible.
func (s *statsService) SiteStats(ctx context.Context) ([]stats.SiteStats, error) {
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.CalculateSiteStats(sites, subs), nil
}

func (s *statsService) QuestionChart(ctx context.Context, siteID *uuid.UUID) ([]stats.ChartRow, error) {
	questions, subs, err := s.load(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return stats.QuestionChartRows(questions, subs), nil
}

func (s *statsService) SiteChart(ctx context.Context) ([]stats.ChartRow, error) {
	siteStats, err := s.SiteStats(ctx)
	if err != nil {
		return nil, err
	}
	return stats.SiteChartRows(siteStats), nil
}

func (s *statsService) Snapshot(ctx context.Context) (*StatsSnapshot, error) {
	questionRows, err := s.QuestionStats(ctx, nil)
	if err != nil {
		return nil, err
	}
	siteStats, err := s.SiteStats(ctx)
	if err != nil {
		return nil, err
	}

	questions, subs, err := s.load(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &StatsSnapshot{
		Questions: questionRows,
		Sites:     siteStats,
		ChartRows: stats.QuestionChartRows(questions, subs),
		SiteChart: stats.SiteChartRows(siteStats),
	}, nil
}
