package service

import (
	"testing"

	"flock/internal/config"
	"flock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaybackURL(t *testing.T) {
	t.Parallel()
	svc := NewStreamService(&config.Config{StreamLibraryID: "12345"})

	url, err := svc.PlaybackURL("9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f")
	require.NoError(t, err)
	assert.Equal(t, "https://vz-12345.b-cdn.net/9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f/playlist.m3u8", url)
}

func TestPlaybackURLInvalidID(t *testing.T) {
	t.Parallel()
	svc := NewStreamService(&config.Config{StreamLibraryID: "12345"})

	for _, id := range []string{"", "not-a-uuid", "9f1c2d3e4a5b6c7d8e9f0a1b2c3d4e5f"} {
		_, err := svc.PlaybackURL(id)
		require.Error(t, err, id)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code, id)
	}
}

func TestPlaybackURLUnconfiguredLibrary(t *testing.T) {
	t.Parallel()
	svc := NewStreamService(&config.Config{})

	_, err := svc.PlaybackURL("9f1c2d3e-4a5b-6c7d-8e9f-0a1b2c3d4e5f")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}
