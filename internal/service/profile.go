package service

import (
	"errors"
	"fmt"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/model"
	"github.com/vidstream/vidstream/internal/repository"
	"github.com/vidstream/vidstream/internal/validation"
)

// ProfileService serves the two aggregation read views. It only consumes
// repository results; query syntax lives behind ProfileRepository.
type ProfileService struct {
	profileRepository repository.ProfileRepository
}

func NewProfileService(profileRepository repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepository: profileRepository}
}

// ChannelProfile resolves a channel view for username as seen by requesterID.
func (s *ProfileService) ChannelProfile(username, requesterID string) (*model.ChannelProfile, error) {
	username = validation.NormalizeUsername(username)
	if username == "" {
		return nil, apperr.NotFound("channel not found")
	}

	profile, err := s.profileRepository.ChannelProfile(username, requesterID)
	if err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			return nil, apperr.NotFound("channel does not exist")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to load channel profile: %w", err))
	}

	return profile, nil
}

// WatchHistory resolves the authenticated user's history in watch order.
func (s *ProfileService) WatchHistory(userID string) ([]model.WatchEntry, error) {
	entries, err := s.profileRepository.WatchHistory(userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to load watch history: %w", err))
	}
	return entries, nil
}
