package preference

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) GetCurrentSubject(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockPreferenceRepository) SetCurrentSubject(ctx context.Context, userID, subject string) error {
	args := m.Called(ctx, userID, subject)
	return args.Error(0)
}
