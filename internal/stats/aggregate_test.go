package stats_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"feedback-service/internal/model"
	"feedback-service/internal/stats"
)

func submission(siteID uuid.UUID, responses ...model.FeedbackResponse) model.FeedbackSubmission {
	return model.FeedbackSubmission{
		ID:        uuid.New(),
		SiteID:    siteID,
		CanteenID: uuid.New(),
		Responses: responses,
	}
}

func TestCalculateQuestionStats_TwoSubmissions(t *testing.T) {
	siteID := uuid.New()
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: 4}),
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: 2}),
	}

	s := stats.CalculateQuestionStats(subs, questionID)
	require.Equal(t, 2, s.TotalResponses)
	require.Equal(t, "3.00", s.AvgRating)
	require.Equal(t, map[model.RatingLevel]int{1: 0, 2: 1, 3: 0, 4: 1}, s.Ratings)
}

func TestCalculateQuestionStats_EmptySet(t *testing.T) {
	s := stats.CalculateQuestionStats(nil, uuid.New())
	require.Equal(t, 0, s.TotalResponses)
	require.Equal(t, stats.NoData, s.AvgRating)
	require.Equal(t, map[model.RatingLevel]int{1: 0, 2: 0, 3: 0, 4: 0}, s.Ratings)
}

func TestCalculateQuestionStats_HistogramSumsToTotal(t *testing.T) {
	siteID := uuid.New()
	questionID := uuid.New()

	var subs []model.FeedbackSubmission
	for _, r := range []model.RatingLevel{1, 1, 2, 3, 4, 4, 4} {
		subs = append(subs, submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: r}))
	}

	s := stats.CalculateQuestionStats(subs, questionID)
	sum := 0
	for _, count := range s.Ratings {
		sum += count
	}
	require.Equal(t, s.TotalResponses, sum)
	require.Equal(t, 7, s.TotalResponses)
}

func TestCalculateQuestionStats_SkipsMalformedRecords(t *testing.T) {
	siteID := uuid.New()
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: 9}),
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: 0}),
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: -3}),
		{ID: uuid.New(), SiteID: siteID, Responses: nil},
		submission(siteID, model.FeedbackResponse{QuestionID: questionID, Rating: 3}),
		submission(siteID, model.FeedbackResponse{QuestionID: uuid.New(), Rating: 4}),
	}

	s := stats.CalculateQuestionStats(subs, questionID)
	require.Equal(t, 1, s.TotalResponses)
	require.Equal(t, "3.00", s.AvgRating)
	require.Equal(t, 1, s.Ratings[model.RatingGood])
}

func TestCalculateQuestionStats_AllSitesIsWeighted(t *testing.T) {
	siteA := uuid.New()
	siteB := uuid.New()
	questionID := uuid.New()

	// Site A: 10 respondents rating 4, site B: 2 respondents rating 1.
	// The weighted aggregate is 42/12, not the mean of 4.00 and 1.00.
	var subs []model.FeedbackSubmission
	for i := 0; i < 10; i++ {
		subs = append(subs, submission(siteA, model.FeedbackResponse{QuestionID: questionID, Rating: 4}))
	}
	for i := 0; i < 2; i++ {
		subs = append(subs, submission(siteB, model.FeedbackResponse{QuestionID: questionID, Rating: 1}))
	}

	s := stats.CalculateQuestionStats(subs, questionID)
	require.Equal(t, 12, s.TotalResponses)
	require.Equal(t, "3.50", s.AvgRating)
	require.Equal(t, 10, s.Ratings[model.RatingExcellent])
	require.Equal(t, 2, s.Ratings[model.RatingPoor])
}

func TestFilterBySite(t *testing.T) {
	siteA := uuid.New()
	siteB := uuid.New()
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteA, model.FeedbackResponse{QuestionID: questionID, Rating: 4}),
		submission(siteB, model.FeedbackResponse{QuestionID: questionID, Rating: 1}),
	}

	filtered := stats.FilterBySite(subs, siteA)
	require.Len(t, filtered, 1)
	require.Equal(t, siteA, filtered[0].SiteID)
}

func TestCalculateSiteStats_SeedsEverySite(t *testing.T) {
	siteA := model.Site{ID: uuid.New(), Location: "North Campus"}
	siteB := model.Site{ID: uuid.New(), Location: "South Campus"}
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteA.ID, model.FeedbackResponse{QuestionID: questionID, Rating: 4}),
		submission(siteA.ID, model.FeedbackResponse{QuestionID: questionID, Rating: 2}),
	}

	result := stats.CalculateSiteStats([]model.Site{siteA, siteB}, subs)
	require.Len(t, result, 2)

	require.Equal(t, "North Campus", result[0].Name)
	require.Equal(t, 2, result[0].TotalResponses)
	require.Equal(t, "3.00", result[0].AvgRating)

	// A site with no feedback is still visible, distinguishable from zero.
	require.Equal(t, "South Campus", result[1].Name)
	require.Equal(t, 0, result[1].TotalResponses)
	require.Equal(t, stats.NoData, result[1].AvgRating)
}

func TestCalculateSiteStats_DropsUnknownSites(t *testing.T) {
	siteA := model.Site{ID: uuid.New(), Location: "North Campus"}
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteA.ID, model.FeedbackResponse{QuestionID: questionID, Rating: 3}),
		submission(uuid.New(), model.FeedbackResponse{QuestionID: questionID, Rating: 1}),
	}

	result := stats.CalculateSiteStats([]model.Site{siteA}, subs)
	require.Len(t, result, 1)
	require.Equal(t, 1, result[0].TotalResponses)
	require.Equal(t, "3.00", result[0].AvgRating)
}

func TestQuestionChartRows_OmitsZeroRows(t *testing.T) {
	siteID := uuid.New()
	answered := model.Question{ID: uuid.New(), SiteID: siteID, QuestionText: "How was the food?"}
	unanswered := model.Question{ID: uuid.New(), SiteID: siteID, QuestionText: "How was the service?"}

	subs := []model.FeedbackSubmission{
		submission(siteID, model.FeedbackResponse{QuestionID: answered.ID, Rating: 4}),
		submission(siteID, model.FeedbackResponse{QuestionID: answered.ID, Rating: 4}),
		submission(siteID, model.FeedbackResponse{QuestionID: answered.ID, Rating: 1}),
	}

	rows := stats.QuestionChartRows([]model.Question{answered, unanswered}, subs)
	require.Len(t, rows, 1)
	require.Equal(t, "How was the food?", rows[0].Name)
	require.InDelta(t, 66.7, rows[0].Excellent, 0.001)
	require.InDelta(t, 33.3, rows[0].Poor, 0.001)
	require.Zero(t, rows[0].Good)
	require.Zero(t, rows[0].Fair)
}

func TestQuestionChartRows_PercentagesWithinBounds(t *testing.T) {
	siteID := uuid.New()
	q := model.Question{ID: uuid.New(), SiteID: siteID, QuestionText: "Cleanliness?"}

	var subs []model.FeedbackSubmission
	for _, r := range []model.RatingLevel{1, 2, 2, 3, 3, 3, 4} {
		subs = append(subs, submission(siteID, model.FeedbackResponse{QuestionID: q.ID, Rating: r}))
	}

	rows := stats.QuestionChartRows([]model.Question{q}, subs)
	require.Len(t, rows, 1)
	for _, p := range []float64{rows[0].Excellent, rows[0].Good, rows[0].Fair, rows[0].Poor} {
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 100.0)
	}
	// Independent rounding may drift; the row must still be near 100 total.
	total := rows[0].Excellent + rows[0].Good + rows[0].Fair + rows[0].Poor
	require.InDelta(t, 100.0, total, 0.5)
}

func TestQuestionChartRows_TruncatesLongNames(t *testing.T) {
	siteID := uuid.New()
	long := "How satisfied are you with the variety of vegetarian options available today?"
	q := model.Question{ID: uuid.New(), SiteID: siteID, QuestionText: long}

	subs := []model.FeedbackSubmission{
		submission(siteID, model.FeedbackResponse{QuestionID: q.ID, Rating: 2}),
	}

	rows := stats.QuestionChartRows([]model.Question{q}, subs)
	require.Len(t, rows, 1)
	require.Equal(t, 50, len([]rune(rows[0].Name)))
}

func TestSiteChartRows_OmitsSitesWithoutData(t *testing.T) {
	siteA := model.Site{ID: uuid.New(), Location: "North Campus"}
	siteB := model.Site{ID: uuid.New(), Location: "South Campus"}
	questionID := uuid.New()

	subs := []model.FeedbackSubmission{
		submission(siteA.ID, model.FeedbackResponse{QuestionID: questionID, Rating: 4}),
	}

	rows := stats.SiteChartRows(stats.CalculateSiteStats([]model.Site{siteA, siteB}, subs))
	require.Len(t, rows, 1)
	require.Equal(t, "North Campus", rows[0].Name)
	require.Equal(t, 100.0, rows[0].Excellent)
}
