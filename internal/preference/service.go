package preference

import (
	"context"
	"strings"

	"github.com/thesrcielos/exambuddy/internal/apperrors"
)

type PreferenceService struct {
	repo PreferenceRepository
}

func NewPreferenceService(repo PreferenceRepository) *PreferenceService {
	return &PreferenceService{repo: repo}
}

func (s *PreferenceService) GetPreference(ctx context.Context, userID string) (*UserPreference, error) {
	if userID == "" {
		return nil, apperrors.Authentication("authentication required")
	}
	subject, err := s.repo.GetCurrentSubject(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("error fetching preference", err)
	}
	return &UserPreference{CurrentSubject: subject}, nil
}

func (s *PreferenceService) UpdatePreference(ctx context.Context, userID string, req UpdateRequest) (*UserPreference, error) {
	if userID == "" {
		return nil, apperrors.Authentication("authentication required")
	}
	if req.CurrentSubject == nil || strings.TrimSpace(*req.CurrentSubject) == "" {
		return nil, apperrors.Validation("currentSubject is required")
	}

	subject := strings.TrimSpace(*req.CurrentSubject)
	if err := s.repo.SetCurrentSubject(ctx, userID, subject); err != nil {
		return nil, apperrors.Internal("error saving preference", err)
	}
	return &UserPreference{CurrentSubject: subject}, nil
}
