package controller

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"collabsphere_backend/internals/configs"
	helper "collabsphere_backend/internals/helpers"
)

type FileController struct{}

func NewFileController() *FileController {
	return &FileController{}
}

// POST /api/files/upload
// Stores the file under UPLOAD_DIR with a generated name so uploads never
// collide or traverse paths.
func (ctl *FileController) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Missing file field")
	}

	dir := configs.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "internal", "Could not prepare upload directory")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.New().String() + ext
	if err := c.SaveFile(fileHeader, filepath.Join(dir, name)); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "internal", "Could not store file")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "File uploaded successfully", fiber.Map{
		"file_name": name,
		"file_url":  "/api/files/" + name,
		"size":      fileHeader.Size,
	})
}

// GET /api/files/:name
func (ctl *FileController) Download(c *fiber.Ctx) error {
	name := c.Params("name")
	// stored names are uuid + extension, anything else is rejected
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid file name")
	}
	path := filepath.Join(configs.UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		return helper.Error(c, fiber.StatusNotFound, helper.KindNotFound, "File not found")
	}
	return c.SendFile(path)
}
