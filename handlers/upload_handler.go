package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio-blog-api/helper"
	"portfolio-blog-api/models"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHandler struct {
	uploadsDir string
	baseURL    string
	Helper     *helper.HTTPHelper
}

// NewUploadHandler stores images under uploadsDir. baseURL, when set,
// prefixes the returned URL; otherwise the URL is derived from the request.
func NewUploadHandler(uploadsDir, baseURL string, h *helper.HTTPHelper) *UploadHandler {
	return &UploadHandler{uploadsDir: uploadsDir, baseURL: baseURL, Helper: h}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		h.Helper.SendBadRequest(c, "Image file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		h.Helper.SendBadRequest(c, "Unsupported image type")
		return
	}

	filename := uuid.NewString() + ext
	dest := filepath.Join(h.uploadsDir, filename)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		h.Helper.SendServiceError(c, models.ErrorInternalServer{Message: "Error uploading image", Err: err})
		return
	}

	base := h.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}

	c.JSON(http.StatusOK, gin.H{"url": base + "/uploads/" + filename})
}
