package preference

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

type PreferenceRepository interface {
	GetCurrentSubject(ctx context.Context, userID string) (string, error)
	SetCurrentSubject(ctx context.Context, userID, subject string) error
}

type RedisPreferenceRepository struct {
	db *redis.Client
}

func NewRedisPreferenceRepository(db *redis.Client) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{db: db}
}

func subjectKey(userID string) string {
	return fmt.Sprintf("preference:%s:currentSubject", userID)
}

// GetCurrentSubject returns "" when the user never picked a subject.
func (r *RedisPreferenceRepository) GetCurrentSubject(ctx context.Context, userID string) (string, error) {
	val, err := r.db.Get(ctx, subjectKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisPreferenceRepository) SetCurrentSubject(ctx context.Context, userID, subject string) error {
	return r.db.Set(ctx, subjectKey(userID), subject, 0).Err()
}

type MemoryPreferenceRepository struct {
	mu       sync.RWMutex
	subjects map[string]string
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{subjects: make(map[string]string)}
}

func (r *MemoryPreferenceRepository) GetCurrentSubject(_ context.Context, userID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.subjects[userID], nil
}

func (r *MemoryPreferenceRepository) SetCurrentSubject(_ context.Context, userID, subject string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects[userID] = subject
	return nil
}
