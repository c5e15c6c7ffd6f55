package httpserver

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/santanu-atta03/Ovara/internal/config"
	"github.com/santanu-atta03/Ovara/internal/domain"
)

const maxUploadBytes = 50 << 20

// mediaKind maps a detected MIME type onto a message kind.
func mediaKind(mime string) string {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.MessageImage
	case strings.HasPrefix(mime, "video/"):
		return domain.MessageVideo
	case strings.HasPrefix(mime, "audio/"):
		return domain.MessageAudio
	default:
		return domain.MessageFile
	}
}

// UploadRoutes returns a sub-router mounted at /api/uploads.
func UploadRoutes(cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "failed to parse multipart form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "missing file")
			return
		}
		defer file.Close()

		// Sniff the content rather than trusting the client's extension.
		mt, err := mimetype.DetectReader(file)
		if err != nil {
			respondError(w, http.StatusBadRequest, "could not read file")
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			respondError(w, http.StatusInternalServerError, "could not rewind file")
			return
		}

		ext := mt.Extension()
		if ext == "" {
			ext = filepath.Ext(header.Filename)
		}
		filename := uuid.NewString() + ext
		destPath := filepath.Join(cfg.UploadDir, filename)

		out, err := os.Create(destPath)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "could not create file")
			return
		}
		defer out.Close()

		if _, err := io.Copy(out, file); err != nil {
			respondError(w, http.StatusInternalServerError, "could not save file")
			return
		}

		respondData(w, http.StatusCreated, map[string]any{
			"media_url":  "/api/uploads/" + filename,
			"media_type": mt.String(),
			"kind":       mediaKind(mt.String()),
			"filename":   filename,
		})
	})

	r.Get("/{filename}", func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" {
			respondError(w, http.StatusBadRequest, "missing filename")
			return
		}
		// Reject anything resembling a path traversal.
		if filepath.Base(filename) != filename {
			respondError(w, http.StatusBadRequest, "invalid filename")
			return
		}
		http.ServeFile(w, r, filepath.Join(cfg.UploadDir, filename))
	})

	return r
}
