package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flock/internal/config"
	"flock/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMediaService(t *testing.T) *MediaService {
	t.Helper()
	return NewMediaService(&config.Config{
		MediaUploadDir:       t.TempDir(),
		MediaMaxUploadSizeMB: 1,
	})
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestMediaUploadRejectsEmptyAndOversize(t *testing.T) {
	t.Parallel()
	svc := newTestMediaService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadMediaInput{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)

	huge := make([]byte, 2*1024*1024)
	_, err = svc.Upload(ctx, UploadMediaInput{UserID: 1, Content: huge})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestMediaUploadRejectsNonMediaPayload(t *testing.T) {
	t.Parallel()
	svc := newTestMediaService(t)

	_, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID:      1,
		Filename:    "notes.txt",
		ContentType: "text/plain",
		Content:     []byte("just some text, definitely not media"),
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestMediaUploadStoresImage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := NewMediaService(&config.Config{MediaUploadDir: dir, MediaMaxUploadSizeMB: 1})

	desc, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID:      7,
		Filename:    "pic.png",
		ContentType: "image/png",
		Content:     smallPNG(t),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaKindImage, desc.Kind)
	require.True(t, strings.HasPrefix(desc.URL, "/media/i/"))

	hash := strings.TrimSuffix(strings.TrimPrefix(desc.URL, "/media/i/"), "/master.jpg")
	for _, name := range []string{"master.jpg", "master.webp"} {
		_, statErr := os.Stat(filepath.Join(dir, "images", hash, name))
		assert.NoError(t, statErr, name)
	}

	resolved, err := svc.ResolveImagePath(hash)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "images", hash, "master.jpg"), resolved)
}

func TestMediaUploadStoresVideoVerbatim(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	svc := NewMediaService(&config.Config{MediaUploadDir: dir, MediaMaxUploadSizeMB: 1})

	payload := []byte{0x00, 0x00, 0x00, 0x18, 0x66, 0x74, 0x79, 0x70, 0x01, 0x02, 0x03}
	desc, err := svc.Upload(context.Background(), UploadMediaInput{
		UserID:      7,
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
		Content:     payload,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaKindVideo, desc.Kind)
	require.True(t, strings.HasPrefix(desc.URL, "/media/v/"))
	assert.True(t, strings.HasSuffix(desc.URL, ".mp4"))

	rel := strings.TrimPrefix(desc.URL, "/media/v/")
	stored, err := os.ReadFile(filepath.Join(dir, "videos", rel))
	require.NoError(t, err)
	assert.Equal(t, payload, stored)
}

func TestResolveImagePathRejectsTraversal(t *testing.T) {
	t.Parallel()
	svc := newTestMediaService(t)

	for _, hash := range []string{"../etc/passwd", "ABCDEF", "", strings.Repeat("g", 64)} {
		_, err := svc.ResolveImagePath(hash)
		require.Error(t, err, hash)
		assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code, hash)
	}
}
