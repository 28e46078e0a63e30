package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatermillPublisher_RoutesAndTagsMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 4}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := pubSub.Subscribe(ctx, "results")
	require.NoError(t, err)
	quizzes, err := pubSub.Subscribe(ctx, "quizzes")
	require.NoError(t, err)

	publisher := NewWatermillEventPublisher(pubSub, PublisherConfig{
		QuizTopic:   "quizzes",
		ResultTopic: "results",
		Logger:      discardLogger(),
	})

	submitted := NewResultSubmittedEvent(ResultSubmittedEvent{ResultID: "r1", QuizID: "quiz-1", Score: 8, Passed: true})
	require.NoError(t, publisher.Publish(ctx, submitted))

	created := NewQuizChangedEvent(EventQuizCreated, QuizChangedEvent{QuizID: "quiz-1", QuestionCount: 3})
	require.NoError(t, publisher.Publish(ctx, created))

	select {
	case msg := <-results:
		msg.Ack()
		assert.Equal(t, submitted.ID, msg.UUID)
		assert.Equal(t, string(EventResultSubmitted), msg.Metadata.Get("event_type"))
		assert.Equal(t, "quiz-service", msg.Metadata.Get("source"))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		data := decoded["data"].(map[string]interface{})
		assert.Equal(t, "r1", data["result_id"])
		assert.Equal(t, float64(8), data["score"])
	case <-ctx.Done():
		t.Fatal("no message on results topic")
	}

	select {
	case msg := <-quizzes:
		msg.Ack()
		assert.Equal(t, string(EventQuizCreated), msg.Metadata.Get("event_type"))
	case <-ctx.Done():
		t.Fatal("no message on quizzes topic")
	}
}

func TestTopicFor(t *testing.T) {
	p := NewWatermillEventPublisher(nil, PublisherConfig{QuizTopic: "q", ResultTopic: "r"})
	assert.Equal(t, "r", p.TopicFor(EventResultSubmitted))
	assert.Equal(t, "q", p.TopicFor(EventQuizCreated))
	assert.Equal(t, "q", p.TopicFor(EventQuizDeleted))
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(discardLogger())

	require.NoError(t, mock.Publish(context.Background(), NewQuizChangedEvent(EventQuizDeleted, QuizChangedEvent{QuizID: "x"})))
	events := mock.GetPublishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventQuizDeleted, events[0].Type)
	assert.NotEmpty(t, events[0].ID)
	assert.Equal(t, "1.0", events[0].Version)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
	assert.NoError(t, mock.Close())
}
