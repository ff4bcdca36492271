package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps profile picture and resume uploads at 10 MB.
const maxUploadBytes = 10 * 1024 * 1024

// UploadHandler stores profile pictures and resumes on local disk and hands
// back a stable retrieval URL. Replaced assets are not cleaned up; the old
// URL is simply overwritten on the profile.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Upload handles POST /upload
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if len(fileBytes) > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 10MB."})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Resumes are PDFs; reject corrupt ones before persisting so a broken
	// upload never ends up linked from a profile.
	if ext == ".pdf" {
		if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF file"})
			return
		}
		if _, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Could not read this PDF. It may be corrupted.",
			})
			return
		}
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		log.Error().Err(err).Msg("Failed to create uploads directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	filename := fmt.Sprintf("%s_%d%s", userID, time.Now().UnixMilli(), ext)
	path := filepath.Join(h.dir, filename)

	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		log.Error().Err(err).Msg("Failed to write uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	log.Info().
		Str("filename", header.Filename).
		Int("bytes", len(fileBytes)).
		Str("path", path).
		Msg("File uploaded")

	c.JSON(http.StatusOK, gin.H{
		"url":      "/uploads/" + filename,
		"filename": header.Filename,
	})
}
