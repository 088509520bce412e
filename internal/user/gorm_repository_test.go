package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	created, err := repo.CreateUser(ctx, "lee@example.com", "hunter22")
	require.NoError(t, err)
	assert.Len(t, created.ID, 36)

	_, err = repo.CreateUser(ctx, "lee@example.com", "other123")
	assert.ErrorIs(t, err, ErrUserExists)

	found, err := repo.ValidateUser(ctx, "lee@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.ValidateUser(ctx, "lee@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	byID, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "lee@example.com", byID.Email)

	_, err = repo.GetUser(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
