package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"flock/internal/config"
	"flock/internal/models"
	"flock/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMediaUploadDir       = "/tmp/flock/uploads"
	DefaultMediaMaxUploadSizeMB = 15
	ImageMaxDimension           = 2048
	JPEGQuality                 = 82
	WebPQuality                 = 70
)

// MediaDescriptor is what a successful upload hands back to the caller.
type MediaDescriptor struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

type UploadMediaInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

// MediaService stores image and video payloads under content-hash paths.
// Images are decoded and re-encoded (JPEG master plus a WebP variant),
// videos are stored verbatim.
type MediaService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

func NewMediaService(cfg *config.Config) *MediaService {
	uploadDir := DefaultMediaUploadDir
	maxUploadSizeMB := DefaultMediaMaxUploadSizeMB

	if cfg != nil {
		if cfg.MediaUploadDir != "" {
			uploadDir = cfg.MediaUploadDir
		}
		if cfg.MediaMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MediaMaxUploadSizeMB
		}
	}

	return &MediaService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload validates and stores the payload, returning its public descriptor.
func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*MediaDescriptor, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		observability.MediaUploads.WithLabelValues("unknown", "rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	kind := mediaKindForMIME(detectedType)
	if kind == "" {
		// Sniffing tops out at 512 bytes, so fall back to the declared type
		// for container formats it cannot identify.
		kind = mediaKindForMIME(in.ContentType)
	}

	switch kind {
	case models.MediaKindImage:
		desc, err := s.storeImage(in)
		result := "ok"
		if err != nil {
			result = "rejected"
		}
		observability.MediaUploads.WithLabelValues(models.MediaKindImage, result).Inc()
		return desc, err
	case models.MediaKindVideo:
		desc, err := s.storeVideo(in)
		result := "ok"
		if err != nil {
			result = "rejected"
		}
		observability.MediaUploads.WithLabelValues(models.MediaKindVideo, result).Inc()
		return desc, err
	default:
		observability.MediaUploads.WithLabelValues("unknown", "rejected").Inc()
		return nil, models.NewValidationError("Only image and video uploads are allowed")
	}
}

func (s *MediaService) storeImage(in UploadMediaInput) (*MediaDescriptor, error) {
	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedImageFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, ImageMaxDimension, ImageMaxDimension)

	encodedJPG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	encodedWebP, err := encodeWebP(master, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	hash := contentHash(in.UserID, encodedJPG)
	jpgRel := filepath.ToSlash(filepath.Join("images", hash, "master.jpg"))
	webpRel := filepath.ToSlash(filepath.Join("images", hash, "master.webp"))

	if err := writeBytesToFile(filepath.Join(s.uploadDir, jpgRel), encodedJPG); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := writeBytesToFile(filepath.Join(s.uploadDir, webpRel), encodedWebP); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, jpgRel))
		return nil, models.NewInternalError(err)
	}

	return &MediaDescriptor{
		URL:  "/media/i/" + hash + "/master.jpg",
		Kind: models.MediaKindImage,
	}, nil
}

func (s *MediaService) storeVideo(in UploadMediaInput) (*MediaDescriptor, error) {
	hash := contentHash(in.UserID, in.Content)
	ext := extensionForVideo(in.ContentType, in.Filename)
	rel := filepath.ToSlash(filepath.Join("videos", hash+ext))

	if err := writeBytesToFile(filepath.Join(s.uploadDir, rel), in.Content); err != nil {
		return nil, models.NewInternalError(err)
	}

	return &MediaDescriptor{
		URL:  "/media/v/" + hash + ext,
		Kind: models.MediaKindVideo,
	}, nil
}

// ResolveImagePath maps a hash back to the master image on disk, refusing
// anything that is not strictly lowercase hex to block path traversal.
func (s *MediaService) ResolveImagePath(hash string) (string, error) {
	if !isValidMediaHash(hash) {
		return "", models.NewValidationError("Invalid media hash")
	}
	fullPath := filepath.Join(s.uploadDir, "images", hash, "master.jpg")
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return "", models.NewNotFoundError("Media", hash)
		}
		return "", models.NewInternalError(err)
	}
	return fullPath, nil
}

func isValidMediaHash(hash string) bool {
	if len(hash) != 64 {
		return false
	}
	for _, c := range hash {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func mediaKindForMIME(contentType string) string {
	ct := normalizeContentType(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return models.MediaKindImage
	case strings.HasPrefix(ct, "video/"):
		return models.MediaKindVideo
	default:
		return ""
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isSupportedImageFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func extensionForVideo(contentType, filename string) string {
	switch normalizeContentType(contentType) {
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	return ".mp4"
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func contentHash(userID uint, content []byte) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%d:", userID)
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
