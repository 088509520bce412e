package stats

import (
	"context"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	FetchUserStats(ctx context.Context, userID string) ([]UserStat, error)
	// IncrementTopic creates the (user, topic) row if needed and bumps its
	// counters atomically.
	IncrementTopic(ctx context.Context, userID, topic string, correct bool) error
	DeleteUserStats(ctx context.Context, userID string) error
}

type GormStatsRepository struct {
	db *gorm.DB
}

func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func (r *GormStatsRepository) FetchUserStats(ctx context.Context, userID string) ([]UserStat, error) {
	var rows []UserStat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("topic").
		Find(&rows).Error
	return rows, err
}

// IncrementTopic relies on INSERT ... ON CONFLICT so two concurrent answers
// for the same topic cannot overwrite each other.
func (r *GormStatsRepository) IncrementTopic(ctx context.Context, userID, topic string, correct bool) error {
	row := UserStat{UserID: userID, Topic: topic, Total: 1}
	if correct {
		row.Correct = 1
	} else {
		row.Incorrect = 1
	}

	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "topic"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total":     gorm.Expr("user_stats.total + excluded.total"),
				"correct":   gorm.Expr("user_stats.correct + excluded.correct"),
				"incorrect": gorm.Expr("user_stats.incorrect + excluded.incorrect"),
			}),
		}).
		Create(&row).Error
}

func (r *GormStatsRepository) DeleteUserStats(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&UserStat{}).Error
}

// MemoryStatsRepository keeps counters in process memory. Used in dev mode
// and tests.
type MemoryStatsRepository struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]map[string]*UserStat
}

func NewMemoryStatsRepository() *MemoryStatsRepository {
	return &MemoryStatsRepository{rows: make(map[string]map[string]*UserStat)}
}

func (r *MemoryStatsRepository) FetchUserStats(_ context.Context, userID string) ([]UserStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics := r.rows[userID]
	out := make([]UserStat, 0, len(topics))
	for _, row := range topics {
		out = append(out, *row)
	}
	return out, nil
}

func (r *MemoryStatsRepository) IncrementTopic(_ context.Context, userID, topic string, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	topics, ok := r.rows[userID]
	if !ok {
		topics = make(map[string]*UserStat)
		r.rows[userID] = topics
	}
	row, ok := topics[topic]
	if !ok {
		r.nextID++
		row = &UserStat{ID: r.nextID, UserID: userID, Topic: topic}
		topics[topic] = row
	}

	row.Total++
	if correct {
		row.Correct++
	} else {
		row.Incorrect++
	}
	return nil
}

func (r *MemoryStatsRepository) DeleteUserStats(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, userID)
	return nil
}
