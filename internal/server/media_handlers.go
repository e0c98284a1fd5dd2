package server

import (
	"io"
	"mime/multipart"
	"strings"

	"flock/internal/models"
	"flock/internal/service"

	"github.com/gofiber/fiber/v2"
)

// readUpload pulls the named multipart file into memory for the media service.
func readUpload(c *fiber.Ctx, field string) (*multipart.FileHeader, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil, models.NewValidationError("No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, nil, models.NewValidationError("Unable to read uploaded file")
	}
	return file, content, nil
}

// UploadPostMedia handles POST /api/posts/media
// @Summary Upload post media
// @Description Upload an image or video to attach to a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Success 200 {object} service.MediaDescriptor
// @Failure 400 {object} models.ErrorResponse
// @Router /posts/media [post]
func (s *Server) UploadPostMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, content, err := readUpload(c, "file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	desc, err := s.mediaService.Upload(c.UserContext(), service.UploadMediaInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(desc)
}

// UploadAvatar handles POST /api/users/me/avatar
// Stores the image and points the caller's profile at it in one request.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, content, err := readUpload(c, "avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	desc, err := s.mediaService.Upload(c.UserContext(), service.UploadMediaInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if desc.Kind != models.MediaKindImage {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Avatar must be an image"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		CallerID: userID,
		UserID:   userID,
		Avatar:   desc.URL,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"avatar": desc.URL,
		"user":   user,
	})
}

// ServeImage handles GET /api/media/i/:hash/master.jpg
func (s *Server) ServeImage(c *fiber.Ctx) error {
	hash := strings.TrimSpace(c.Params("hash"))

	path, err := s.mediaService.ResolveImagePath(hash)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	c.Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.SendFile(path)
}
