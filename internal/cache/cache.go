package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes every key matching a glob such as "quizzes:*"
	DeletePattern(ctx context.Context, pattern string) error
}

const (
	QuizzesTTL  = 5 * time.Minute
	TeachersTTL = 30 * time.Minute
	ResultsTTL  = time.Minute
)

const (
	quizzesPrefix  = "quizzes:"
	teachersPrefix = "teachers:"
	resultsPrefix  = "results:"
)

// Key builders

func QuizListKey() string { return quizzesPrefix + "all" }

func QuizKey(id string) string { return quizzesPrefix + "id:" + id }

func TeacherListKey() string { return teachersPrefix + "all" }

func ResultListKey() string { return resultsPrefix + "all" }

func ResultsByQuizKey(quizID string) string {
	return fmt.Sprintf("%squiz:%s", resultsPrefix, quizID)
}

// Invalidation patterns

func QuizzesPattern() string { return quizzesPrefix + "*" }
func ResultsPattern() string { return resultsPrefix + "*" }
