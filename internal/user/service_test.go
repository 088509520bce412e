package user

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

func newTestService() (*UserService, *MockUserRepository, *TokenIssuer) {
	mockRepo := &MockUserRepository{}
	tokens := NewTokenIssuer("test-secret")
	return NewUserService(mockRepo, tokens), mockRepo, tokens
}

func TestUserService_Register(t *testing.T) {
	service, mockRepo, tokens := newTestService()

	created := &User{ID: "u-1", Email: "ana@example.com"}
	mockRepo.On("CreateUser", mock.Anything, "ana@example.com", "secret1").Return(created, nil)

	resp, err := service.Register(context.Background(), Credentials{Email: "  Ana@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, PublicUser{ID: "u-1", Email: "ana@example.com"}, resp.User)

	userID, err := tokens.ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_Conflict(t *testing.T) {
	service, mockRepo, _ := newTestService()
	mockRepo.On("CreateUser", mock.Anything, "ana@example.com", "secret1").Return(nil, ErrUserExists)

	_, err := service.Register(context.Background(), Credentials{Email: "ana@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	mockRepo.AssertExpectations(t)
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"missing email", Credentials{Password: "secret1"}},
		{"missing password", Credentials{Email: "a@b.c"}},
		{"bad email", Credentials{Email: "nobody", Password: "secret1"}},
		{"short password", Credentials{Email: "a@b.c", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo, _ := newTestService()
			_, err := service.Register(context.Background(), tt.creds)
			assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
			mockRepo.AssertNotCalled(t, "CreateUser")
		})
	}
}

func TestUserService_Register_StoreFailure(t *testing.T) {
	service, mockRepo, _ := newTestService()
	mockRepo.On("CreateUser", mock.Anything, "a@b.c", "secret1").Return(nil, errors.New("db down"))

	_, err := service.Register(context.Background(), Credentials{Email: "a@b.c", Password: "secret1"})
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
}

func TestUserService_Login(t *testing.T) {
	service, mockRepo, _ := newTestService()

	found := &User{ID: "u-2", Email: "foo@example.com"}
	mockRepo.On("ValidateUser", mock.Anything, "foo@example.com", "bar123").Return(found, nil)

	resp, err := service.Login(context.Background(), Credentials{Email: "foo@example.com", Password: "bar123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u-2", resp.User.ID)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Login_BadCredentials(t *testing.T) {
	service, mockRepo, _ := newTestService()
	mockRepo.On("ValidateUser", mock.Anything, "foo@example.com", "wrong1").Return(nil, ErrInvalidCredentials)

	_, err := service.Login(context.Background(), Credentials{Email: "foo@example.com", Password: "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser(t *testing.T) {
	service, mockRepo, _ := newTestService()
	mockRepo.On("GetUser", mock.Anything, "u-3").Return(&User{ID: "u-3", Email: "c@d.e"}, nil)
	mockRepo.On("GetUser", mock.Anything, "missing").Return(nil, ErrUserNotFound)

	u, err := service.GetUser(context.Background(), "u-3")
	require.NoError(t, err)
	assert.Equal(t, "c@d.e", u.Email)

	_, err = service.GetUser(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, apperrors.StatusOf(err))
}
