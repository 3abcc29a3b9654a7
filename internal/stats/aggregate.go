package stats

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"feedback-service/internal/model"
)

// NoData is the average shown when a question or site has zero responses.
// It is deliberately distinct from a numeric zero average.
const NoData = "N/A"

const chartNameLimit = 50

// QuestionStats is the per-question rating histogram.
type QuestionStats struct {
	QuestionID     uuid.UUID                 `json:"question_id"`
	Ratings        map[model.RatingLevel]int `json:"ratings"`
	TotalResponses int                       `json:"total_responses"`
	AvgRating      string                    `json:"avg_rating"`
}

// SiteStats is the per-site rating histogram. Sites are seeded from the
// directory, so a site with no feedback still appears with AvgRating NoData.
type SiteStats struct {
	SiteID         uuid.UUID                 `json:"site_id"`
	Name           string                    `json:"name"`
	Ratings        map[model.RatingLevel]int `json:"ratings"`
	TotalResponses int                       `json:"total_responses"`
	AvgRating      string                    `json:"avg_rating"`
}

// ChartRow is one percentage-normalized stacked-bar row. Percentages are
// of the row's own total, each rounded to one decimal and clamped to
// [0,100]; after independent rounding they need not sum to exactly 100.
type ChartRow struct {
	Name      string  `json:"name"`
	Excellent float64 `json:"Excellent"`
	Good      float64 `json:"Good"`
	Fair      float64 `json:"Fair"`
	Poor      float64 `json:"Poor"`
}

func emptyRatings() map[model.RatingLevel]int {
	return map[model.RatingLevel]int{
		model.RatingPoor:      0,
		model.RatingFair:      0,
		model.RatingGood:      0,
		model.RatingExcellent: 0,
	}
}

func formatAverage(sum, count int) string {
	if count == 0 {
		return NoData
	}
	return fmt.Sprintf("%.2f", float64(sum)/float64(count))
}

// FilterBySite keeps only submissions belonging to the given site.
func FilterBySite(subs []model.FeedbackSubmission, siteID uuid.UUID) []model.FeedbackSubmission {
	filtered := make([]model.FeedbackSubmission, 0, len(subs))
	for _, sub := range subs {
		if sub.SiteID == siteID {
			filtered = append(filtered, sub)
		}
	}
	return filtered
}

// CalculateQuestionStats reduces the submissions into the rating histogram
// of one question. Malformed records are skipped per-record: a submission
// with no responses contributes nothing, an out-of-range rating is ignored
// without affecting valid ratings in the same batch.
func CalculateQuestionStats(subs []model.FeedbackSubmission, questionID uuid.UUID) QuestionStats {
	ratings := emptyRatings()
	totalResponses := 0
	totalRating := 0

	for _, sub := range subs {
		for _, resp := range sub.Responses {
			if resp.QuestionID != questionID || !resp.Rating.Valid() {
				continue
			}
			ratings[resp.Rating]++
			totalResponses++
			totalRating += int(resp.Rating)
		}
	}

	return QuestionStats{
		QuestionID:     questionID,
		Ratings:        ratings,
		TotalResponses: totalResponses,
		AvgRating:      formatAverage(totalRating, totalResponses),
	}
}

// CalculateSiteStats groups the same reduction by site across all
// submissions. Every directory site gets an entry, in directory order;
// submissions referencing an unknown site are dropped.
func CalculateSiteStats(sites []model.Site, subs []model.FeedbackSubmission) []SiteStats {
	index := make(map[uuid.UUID]int, len(sites))
	result := make([]SiteStats, 0, len(sites))
	for _, site := range sites {
		index[site.ID] = len(result)
		result = append(result, SiteStats{
			SiteID:         site.ID,
			Name:           site.Location,
			Ratings:        emptyRatings(),
			TotalResponses: 0,
			AvgRating:      NoData,
		})
	}

	for _, sub := range subs {
		i, ok := index[sub.SiteID]
		if !ok {
			continue
		}
		for _, resp := range sub.Responses {
			if !resp.Rating.Valid() {
				continue
			}
			result[i].Ratings[resp.Rating]++
			result[i].TotalResponses++
		}
	}

	for i := range result {
		sum := 0
		for level, count := range result[i].Ratings {
			sum += int(level) * count
		}
		result[i].AvgRating = formatAverage(sum, result[i].TotalResponses)
	}

	return result
}

// percentage rounds count/total to one decimal percent, clamped to [0,100].
func percentage(count, total int) float64 {
	if total < 1 {
		total = 1
	}
	p := math.Round(float64(count)/float64(total)*1000) / 10
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > chartNameLimit {
		return string(runes[:chartNameLimit])
	}
	return name
}

func chartRow(name string, ratings map[model.RatingLevel]int, total int) (ChartRow, bool) {
	any := false
	for _, count := range ratings {
		if count > 0 {
			any = true
			break
		}
	}
	// A row with no data is omitted, never rendered as an empty bar.
	if !any {
		return ChartRow{}, false
	}
	return ChartRow{
		Name:      truncateName(name),
		Excellent: percentage(ratings[model.RatingExcellent], total),
		Good:      percentage(ratings[model.RatingGood], total),
		Fair:      percentage(ratings[model.RatingFair], total),
		Poor:      percentage(ratings[model.RatingPoor], total),
	}, true
}

// QuestionChartRows shapes per-question stats into chart rows. The counts
// come from one weighted pass over the submissions, so an "all sites" view
// is a weighted aggregate, not a mean of per-site averages.
func QuestionChartRows(questions []model.Question, subs []model.FeedbackSubmission) []ChartRow {
	rows := make([]ChartRow, 0, len(questions))
	for _, q := range questions {
		if q.QuestionText == "" {
			continue
		}
		s := CalculateQuestionStats(subs, q.ID)
		if row, ok := chartRow(q.QuestionText, s.Ratings, s.TotalResponses); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// SiteChartRows shapes per-site stats into chart rows.
func SiteChartRows(siteStats []SiteStats) []ChartRow {
	rows := make([]ChartRow, 0, len(siteStats))
	for _, s := range siteStats {
		if s.Name == "" {
			continue
		}
		if row, ok := chartRow(s.Name, s.Ratings, s.TotalResponses); ok {
			rows = append(rows, row)
		}
	}
	return rows
}
