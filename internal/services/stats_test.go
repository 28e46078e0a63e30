package services

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func resultsWithScores(scores ...int) []*models.StudentResult {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	results := make([]*models.StudentResult, len(scores))
	for i, score := range scores {
		results[i] = &models.StudentResult{
			ID:          string(rune('a' + i)),
			Score:       score,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return results
}

func TestComputeResultStats(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   ResultStats
	}{
		{"empty", nil, ResultStats{}},
		{"single fail", []int{3}, ResultStats{Total: 1, Average: 3, Highest: 3, Lowest: 3}},
		{"average rounds to one decimal", []int{10, 8, 4, 5}, ResultStats{Total: 4, Average: 6.8, Highest: 10, Lowest: 4, PassCount: 3, PassRate: 75}},
		{"pass rate rounds", []int{3, 4, 5}, ResultStats{Total: 3, Average: 4, Highest: 5, Lowest: 3, PassCount: 1, PassRate: 33}},
		{"all pass", []int{5, 5}, ResultStats{Total: 2, Average: 5, Highest: 5, Lowest: 5, PassCount: 2, PassRate: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeResultStats(resultsWithScores(tt.scores...)))
		})
	}
}

func TestScoreDistribution(t *testing.T) {
	buckets := ScoreDistribution(resultsWithScores(0, 2, 3, 5, 6, 6, 8, 9, 10, 10))

	counts := map[string]int{}
	for _, b := range buckets {
		counts[b.Range] = b.Count
	}
	assert.Equal(t, map[string]int{"0-2": 2, "3-4": 1, "5-6": 3, "7-8": 1, "9-10": 3}, counts)
	assert.Equal(t, "0-2", buckets[0].Range)
	assert.Equal(t, "9-10", buckets[4].Range)
}

func TestFilterByClass(t *testing.T) {
	results := []*models.StudentResult{
		{ID: "1", StudentClass: "3A1"},
		{ID: "2", StudentClass: "3A2"},
		{ID: "3", StudentClass: "3a1 "},
	}

	assert.Len(t, FilterByClass(results, AllClasses), 3)
	assert.Len(t, FilterByClass(results, ""), 3)

	filtered := FilterByClass(results, "3A1")
	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	assert.Equal(t, []string{"3A1", "3A2", "3a1 "}, AvailableClasses(results))
}

func TestSortResults(t *testing.T) {
	ids := func(results []*models.StudentResult) string {
		s := ""
		for _, r := range results {
			s += r.ID
		}
		return s
	}

	results := resultsWithScores(5, 9, 2)

	SortResults(results, SortByScore, SortDesc)
	assert.Equal(t, "bac", ids(results))

	SortResults(results, SortByScore, SortAsc)
	assert.Equal(t, "cab", ids(results))

	SortResults(results, SortBySubmittedAt, SortAsc)
	assert.Equal(t, "abc", ids(results))

	// unknown order falls back to newest first
	SortResults(results, SortBySubmittedAt, "")
	assert.Equal(t, "cba", ids(results))
}
