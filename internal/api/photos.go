package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minsukim/tripdeck/internal/apperr"
)

// ListPhotos handles GET /api/photos.
func (h *Handler) ListPhotos(w http.ResponseWriter, _ *http.Request) {
	names, err := h.photos.List()
	if err != nil {
		slog.Error("list photos failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]PhotoItem, 0, len(names))
	for _, name := range names {
		items = append(items, PhotoItem{Name: name, URL: "/photos/" + name})
	}
	writeJSON(w, http.StatusOK, PhotosResponse{Photos: items})
}

// UploadPhoto handles POST /api/photos with a multipart "photo" part.
// Re-uploading an existing filename overwrites the stored photo.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("photo file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read photo"))
		return
	}
	if err := h.photos.Save(header.Filename, data); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if h.broker != nil {
		h.broker.PublishChange("photos")
	}
	writeJSON(w, http.StatusCreated, PhotoUploadResponse{
		Name: header.Filename,
		Size: int64(len(data)),
		URL:  "/photos/" + header.Filename,
	})
}

// ServePhoto handles GET /photos/{name}, streaming a stored photo.
func (h *Handler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	path, err := h.photos.Path(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		}
		return
	}
	http.ServeFile(w, r, path)
}
