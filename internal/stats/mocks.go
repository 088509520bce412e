package stats

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) FetchUserStats(ctx context.Context, userID string) ([]UserStat, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]UserStat)
	return rows, args.Error(1)
}

func (m *MockStatsRepository) IncrementTopic(ctx context.Context, userID, topic string, correct bool) error {
	args := m.Called(ctx, userID, topic, correct)
	return args.Error(0)
}

func (m *MockStatsRepository) DeleteUserStats(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishStats(ctx context.Context, update StatsUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}
