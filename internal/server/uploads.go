package server

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"bloxmarket/internal/models"
	"bloxmarket/internal/observability"
	"bloxmarket/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// maxUploadBytes caps individual upload size at 8 MiB.
const maxUploadBytes = 8 << 20

// storeUpload validates and writes a multipart file under
// <upload_dir>/<category>/ with a generated filename, and returns the public
// path ("/uploads/<category>/<name>").
func (s *Server) storeUpload(c *fiber.Ctx, file *multipart.FileHeader, category string) (string, error) {
	if file.Size > maxUploadBytes {
		return "", models.NewValidationError("File too large (max 8 MiB)")
	}
	if err := validation.ValidateUploadFilename(file.Filename); err != nil {
		return "", models.NewValidationError(err.Error())
	}

	dir := filepath.Join(s.config.UploadDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.UploadsStored.WithLabelValues(category).Inc()
	return "/uploads/" + category + "/" + name, nil
}
