//go:generate mockgen -source=images.go -destination=mock_images.go -package=handlers

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// GalleryImporter picks an image from the gallery and stores a copy.
type GalleryImporter interface {
	FromGallery(ctx context.Context, name string) (string, error)
}

// CameraImporter takes a photo and stores a copy.
type CameraImporter interface {
	FromCamera(ctx context.Context) (string, error)
}

// GalleryRequest names the gallery file to import
// swagger:model GalleryRequest
type GalleryRequest struct {
	// File name inside the gallery directory
	// default: beach.jpg
	Name string `json:"name"`
}

// ImageResponse carries the stored image path; empty when nothing was picked
// swagger:model ImageResponse
type ImageResponse struct {
	ImageURI string `json:"imageUri"`
}

// NewGalleryImageHandler returns an HTTP handler importing a gallery image.
// @Summary Import gallery image
// @Tags images
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.GalleryRequest true "Gallery file"
// @Success 200 {object} handlers.ImageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Router /images/gallery [post]
func NewGalleryImageHandler(svc GalleryImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GalleryRequest
		// An empty body means the picker was cancelled.
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
			return
		}

		uri, err := svc.FromGallery(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ImageResponse{ImageURI: uri})
	}
}

// NewCameraImageHandler returns an HTTP handler importing the latest camera photo.
// @Summary Import camera photo
// @Tags images
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ImageResponse
// @Failure 401 "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Permission denied"
// @Router /images/camera [post]
func NewCameraImageHandler(svc CameraImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uri, err := svc.FromCamera(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ImageResponse{ImageURI: uri})
	}
}
