package user

import (
	"context"
	"errors"
	"strings"

	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

const minPasswordLength = 6

type UserService struct {
	repo   UserRepository
	tokens *TokenIssuer
}

func NewUserService(repo UserRepository, tokens *TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (u *UserService) Register(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	email := normalizeEmail(creds.Email)
	if err := validateCredentials(email, creds.Password); err != nil {
		return nil, err
	}
	if len(creds.Password) < minPasswordLength {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	created, err := u.repo.CreateUser(ctx, email, creds.Password)
	if errors.Is(err, ErrUserExists) {
		return nil, apperrors.Conflict("email already registered")
	}
	if err != nil {
		return nil, apperrors.Internal("error creating user", err)
	}

	return u.authResponse(created)
}

func (u *UserService) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	email := normalizeEmail(creds.Email)
	if err := validateCredentials(email, creds.Password); err != nil {
		return nil, err
	}

	found, err := u.repo.ValidateUser(ctx, email, creds.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return nil, apperrors.Authentication("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.Internal("error validating user", err)
	}

	return u.authResponse(found)
}

func (u *UserService) GetUser(ctx context.Context, id string) (*PublicUser, error) {
	found, err := u.repo.GetUser(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("error fetching user", err)
	}
	public := found.Public()
	return &public, nil
}

func (u *UserService) authResponse(found *User) (*AuthResponse, error) {
	token, err := u.tokens.GenerateJWT(found.ID)
	if err != nil {
		return nil, apperrors.Internal("error creating jwt token", err)
	}
	return &AuthResponse{Token: token, User: found.Public()}, nil
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return apperrors.Validation("email and password are required")
	}
	if !strings.Contains(email, "@") {
		return apperrors.Validation("invalid email")
	}
	return nil
}
