package stats

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

func TestStatsService_RecordAnswerAccumulates(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	for _, correct := range []bool{true, true, true, false} {
		_, err := service.RecordAnswer(ctx, "user-1", "Ethics", correct)
		require.NoError(t, err)
	}

	got, err := service.GetStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StatsMap{"Ethics": {Total: 4, Correct: 3, Incorrect: 1}}, got)
}

func TestStatsService_RecordAnswerReturnsFullMapping(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	_, err := service.RecordAnswer(ctx, "user-1", "Ethics", true)
	require.NoError(t, err)
	updated, err := service.RecordAnswer(ctx, "user-1", "  Audit ", false)
	require.NoError(t, err)

	assert.Equal(t, StatsMap{
		"Ethics": {Total: 1, Correct: 1},
		"Audit":  {Total: 1, Incorrect: 1},
	}, updated)
}

func TestStatsService_CountersStayConsistent(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.RecordAnswer(ctx, "user-1", "Law", i%5 == 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := service.GetStats(ctx, "user-1")
	require.NoError(t, err)
	law := got["Law"]
	assert.Equal(t, n, law.Total)
	assert.Equal(t, 10, law.Correct)
	assert.Equal(t, law.Total, law.Correct+law.Incorrect)
}

func TestStatsService_UsersAreIsolated(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	_, err := service.RecordAnswer(ctx, "user-1", "Ethics", true)
	require.NoError(t, err)
	_, err = service.RecordAnswer(ctx, "user-2", "Ethics", false)
	require.NoError(t, err)
	require.NoError(t, service.ResetStats(ctx, "user-2"))

	one, err := service.GetStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, StatsMap{"Ethics": {Total: 1, Correct: 1}}, one)

	two, err := service.GetStats(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, two)
}

func TestStatsService_ResetIsIdempotent(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	require.NoError(t, service.ResetStats(ctx, "user-1"))

	_, err := service.RecordAnswer(ctx, "user-1", "Ethics", true)
	require.NoError(t, err)
	require.NoError(t, service.ResetStats(ctx, "user-1"))
	require.NoError(t, service.ResetStats(ctx, "user-1"))

	got, err := service.GetStats(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStatsService_Validation(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	_, err := service.RecordAnswer(ctx, "user-1", "   ", true)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = service.RecordAnswer(ctx, "user-1", strings.Repeat("x", 201), true)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))

	_, err = service.GetStats(ctx, "")
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))

	_, err = service.RecordAnswer(ctx, "", "Ethics", true)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))

	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(service.ResetStats(ctx, "")))
}

func TestStatsService_StoreFailures(t *testing.T) {
	mockRepo := &MockStatsRepository{}
	service := NewStatsService(mockRepo, nil)
	ctx := context.Background()
	boom := errors.New("db down")

	mockRepo.On("FetchUserStats", mock.Anything, "user-1").Return(nil, boom)
	mockRepo.On("IncrementTopic", mock.Anything, "user-1", "Ethics", true).Return(boom)
	mockRepo.On("DeleteUserStats", mock.Anything, "user-1").Return(boom)

	_, err := service.GetStats(ctx, "user-1")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))

	_, err = service.RecordAnswer(ctx, "user-1", "Ethics", true)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, service.ResetStats(ctx, "user-1"), boom)
	mockRepo.AssertExpectations(t)
}

func TestStatsService_PublishesUpdates(t *testing.T) {
	notifier := &MockNotifier{}
	service := NewStatsService(NewMemoryStatsRepository(), notifier)
	ctx := context.Background()

	notifier.On("PublishStats", mock.Anything, StatsUpdate{
		UserID: "user-1",
		Stats:  StatsMap{"Ethics": {Total: 1, Correct: 1}},
	}).Return(nil).Once()
	notifier.On("PublishStats", mock.Anything, StatsUpdate{
		UserID: "user-1",
		Stats:  StatsMap{},
	}).Return(errors.New("redis down")).Once()

	_, err := service.RecordAnswer(ctx, "user-1", "Ethics", true)
	require.NoError(t, err)
	require.NoError(t, service.ResetStats(ctx, "user-1"))
	notifier.AssertExpectations(t)
}

func TestStatsService_GetDashboard(t *testing.T) {
	service := NewStatsService(NewMemoryStatsRepository(), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.RecordAnswer(ctx, "user-1", "Audit", i == 0)
		require.NoError(t, err)
	}

	d, err := service.GetDashboard(ctx, "user-1", []string{"Ethics", "Audit"})
	require.NoError(t, err)
	assert.Len(t, d.Cards, 2)
	assert.Equal(t, "Ethics", d.Cards[0].Topic)
	require.Len(t, d.WeakTopics, 1)
	assert.Equal(t, TopicCard{Topic: "Audit", Total: 5, Correct: 1, Incorrect: 4, Percentage: 20, Badge: BadgeNeedsWork}, d.WeakTopics[0])
}
