package stats

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

const maxTopicLength = 200

type StatsService struct {
	repo     StatsRepository
	notifier Notifier
}

// NewStatsService builds the service. notifier may be nil.
func NewStatsService(repo StatsRepository, notifier Notifier) *StatsService {
	return &StatsService{repo: repo, notifier: notifier}
}

func (s *StatsService) GetStats(ctx context.Context, userID string) (StatsMap, error) {
	if userID == "" {
		return nil, apperrors.Authentication("authentication required")
	}

	rows, err := s.repo.FetchUserStats(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("error fetching user stats", err)
	}
	return Fold(rows), nil
}

// RecordAnswer counts one answer for topic and returns the user's full
// updated mapping.
func (s *StatsService) RecordAnswer(ctx context.Context, userID, topic string, correct bool) (StatsMap, error) {
	if userID == "" {
		return nil, apperrors.Authentication("authentication required")
	}
	topic, err := normalizeTopic(topic)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementTopic(ctx, userID, topic, correct); err != nil {
		return nil, apperrors.Internal("error updating user stats", err)
	}

	updated, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userID, updated)
	return updated, nil
}

// ResetStats deletes every row of the user. Resetting an empty history
// succeeds.
func (s *StatsService) ResetStats(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.Authentication("authentication required")
	}
	if err := s.repo.DeleteUserStats(ctx, userID); err != nil {
		return apperrors.Internal("error resetting user stats", err)
	}
	s.publish(ctx, userID, StatsMap{})
	return nil
}

func (s *StatsService) GetDashboard(ctx context.Context, userID string, topics []string) (*Dashboard, error) {
	current, err := s.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	dashboard := BuildDashboard(current, topics)
	return &dashboard, nil
}

func (s *StatsService) publish(ctx context.Context, userID string, current StatsMap) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishStats(ctx, StatsUpdate{UserID: userID, Stats: current}); err != nil {
		log.Printf("Error publishing stats update for user %s: %v", userID, err)
	}
}

func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", apperrors.Validation("topic is required")
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		return "", apperrors.Validation("topic must not exceed 200 characters")
	}
	return topic, nil
}
