package service

import (
	"fmt"

	"flock/internal/config"
	"flock/internal/models"
	"flock/internal/validation"
)

// StreamService derives playback metadata for videos hosted on the external
// stream CDN. Purely deterministic, no network I/O.
type StreamService struct {
	libraryID string
}

func NewStreamService(cfg *config.Config) *StreamService {
	libraryID := ""
	if cfg != nil {
		libraryID = cfg.StreamLibraryID
	}
	return &StreamService{libraryID: libraryID}
}

// PlaybackURL validates the video id and returns the HLS playlist URL for it.
func (s *StreamService) PlaybackURL(videoID string) (string, error) {
	if err := validation.ValidateStreamVideoID(videoID); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if s.libraryID == "" {
		return "", models.NewValidationError("Stream library is not configured")
	}
	return fmt.Sprintf("https://vz-%s.b-cdn.net/%s/playlist.m3u8", s.libraryID, videoID), nil
}
