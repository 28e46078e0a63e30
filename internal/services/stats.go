package services

import (
	"math"
	"sort"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// AllClasses is the class filter value that keeps every result.
const AllClasses = "All"

// ResultStats summarizes a set of results on the 0..10 scale.
type ResultStats struct {
	Total     int     `json:"total"`
	Average   float64 `json:"average"`
	Highest   int     `json:"highest"`
	Lowest    int     `json:"lowest"`
	PassCount int     `json:"passCount"`
	PassRate  int     `json:"passRate"`
}

// ComputeResultStats returns zeros for an empty set. Average keeps one
// decimal and PassRate is a whole percentage.
func ComputeResultStats(results []*models.StudentResult) ResultStats {
	if len(results) == 0 {
		return ResultStats{}
	}

	stats := ResultStats{
		Total:   len(results),
		Highest: results[0].Score,
		Lowest:  results[0].Score,
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
		if r.Score > stats.Highest {
			stats.Highest = r.Score
		}
		if r.Score < stats.Lowest {
			stats.Lowest = r.Score
		}
		if r.Passed() {
			stats.PassCount++
		}
	}

	stats.Average = math.Round(float64(sum)/float64(stats.Total)*10) / 10
	stats.PassRate = int(math.Round(float64(stats.PassCount) / float64(stats.Total) * 100))
	return stats
}

// ScoreBucket counts results whose score falls in [Min, Max].
type ScoreBucket struct {
	Range string `json:"range"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Count int    `json:"count"`
}

// ScoreDistribution buckets results into 0-2, 3-4, 5-6, 7-8 and 9-10.
func ScoreDistribution(results []*models.StudentResult) []ScoreBucket {
	buckets := []ScoreBucket{
		{Range: "0-2", Min: 0, Max: 2},
		{Range: "3-4", Min: 3, Max: 4},
		{Range: "5-6", Min: 5, Max: 6},
		{Range: "7-8", Min: 7, Max: 8},
		{Range: "9-10", Min: 9, Max: 10},
	}
	for _, r := range results {
		for i := range buckets {
			if r.Score >= buckets[i].Min && r.Score <= buckets[i].Max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// FilterByClass keeps results of one class. An empty filter or AllClasses
// keeps everything.
func FilterByClass(results []*models.StudentResult, class string) []*models.StudentResult {
	class = strings.TrimSpace(class)
	if class == "" || class == AllClasses {
		return results
	}
	filtered := make([]*models.StudentResult, 0, len(results))
	for _, r := range results {
		if strings.EqualFold(strings.TrimSpace(r.StudentClass), class) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// AvailableClasses returns the distinct classes in results, sorted.
func AvailableClasses(results []*models.StudentResult) []string {
	seen := make(map[string]struct{})
	classes := make([]string, 0)
	for _, r := range results {
		if _, ok := seen[r.StudentClass]; ok {
			continue
		}
		seen[r.StudentClass] = struct{}{}
		classes = append(classes, r.StudentClass)
	}
	sort.Strings(classes)
	return classes
}

type SortField string

const (
	SortByScore       SortField = "score"
	SortBySubmittedAt SortField = "submittedAt"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortResults sorts in place. Unknown fields sort by submission time and
// unknown orders are descending.
func SortResults(results []*models.StudentResult, field SortField, order SortOrder) {
	less := func(a, b *models.StudentResult) bool {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	if field == SortByScore {
		less = func(a, b *models.StudentResult) bool { return a.Score < b.Score }
	}

	sort.SliceStable(results, func(i, j int) bool {
		if order == SortAsc {
			return less(results[i], results[j])
		}
		return less(results[j], results[i])
	})
}
