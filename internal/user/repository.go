package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	CreateUser(ctx context.Context, email, password string) (*User, error)
	ValidateUser(ctx context.Context, email, password string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(ctx context.Context, email, password string) (*User, error) {
	var exists User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&exists)
	if result.Error == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	newUser := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
	}

	if err := r.db.WithContext(ctx).Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return &newUser, nil
}

func (r *GormUserRepository) ValidateUser(ctx context.Context, email, password string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if result.Error != nil {
		return nil, result.Error
	}
	if err := checkPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func (r *GormUserRepository) GetUser(ctx context.Context, id string) (*User, error) {
	var u User
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &u, nil
}

// MemoryUserRepository keeps users in process memory. Used in dev mode and tests.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, email, password string) (*User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, ErrUserExists
	}
	u := &User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u

	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) ValidateUser(_ context.Context, email, password string) (*User, error) {
	r.mu.RLock()
	u, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := checkPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) GetUser(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
