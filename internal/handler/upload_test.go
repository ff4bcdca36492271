package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/careertrack-api/internal/handler"
	"github.com/yourusername/careertrack-api/internal/middleware"
)

func newUploadRouter(dir, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewUploadHandler(dir)

	r := gin.New()
	if uid != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyUserID, uid)
			c.Next()
		})
	}
	r.POST("/upload", h.Upload)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload(t *testing.T) {
	t.Run("rejects requests without identity", func(t *testing.T) {
		r := newUploadRouter(t.TempDir(), "")
		body, contentType := multipartBody(t, "file", "photo.png", []byte("png-bytes"))

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires a file part", func(t *testing.T) {
		r := newUploadRouter(t.TempDir(), "user-1")
		w := doJSON(t, r, http.MethodPost, "/upload", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No file uploaded")
	})

	t.Run("stores the file under a user-scoped name", func(t *testing.T) {
		dir := t.TempDir()
		r := newUploadRouter(dir, "user-1")
		body, contentType := multipartBody(t, "file", "photo.png", []byte("png-bytes"))

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"filename":"photo.png"`)
		assert.Contains(t, w.Body.String(), `/uploads/user-1_`)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))

		stored, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), stored)
	})

	t.Run("rejects a file that claims to be a PDF but is not", func(t *testing.T) {
		dir := t.TempDir()
		r := newUploadRouter(dir, "user-1")
		body, contentType := multipartBody(t, "file", "resume.pdf", []byte("just some text"))

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid PDF file")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "a rejected upload must not leave a file behind")
	})

	t.Run("rejects a PDF the parser cannot read", func(t *testing.T) {
		r := newUploadRouter(t.TempDir(), "user-1")
		body, contentType := multipartBody(t, "file", "resume.pdf", []byte("%PDF-1.4 truncated garbage"))

		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
