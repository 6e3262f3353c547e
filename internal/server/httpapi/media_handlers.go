package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dsemenov/pressroom/internal/server/models"
)

type mediaRequest struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	FileSize     int64  `json:"fileSize"`
	Dimensions   string `json:"dimensions"`
	UploadedBy   string `json:"uploadedBy"`
}

func (req *mediaRequest) toModel() *models.Media {
	return &models.Media{
		Type:         models.MediaType(req.Type),
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		FileSize:     req.FileSize,
		Dimensions:   req.Dimensions,
		UploadedBy:   req.UploadedBy,
	}
}

type mediaResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	FileSize     int64     `json:"fileSize,omitempty"`
	Dimensions   string    `json:"dimensions,omitempty"`
	UploadedBy   string    `json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newMediaResponse(m *models.Media) *mediaResponse {
	return &mediaResponse{
		ID:           m.ID,
		Type:         string(m.Type),
		Title:        m.Title,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		FileSize:     m.FileSize,
		Dimensions:   m.Dimensions,
		UploadedBy:   m.UploadedBy,
		CreatedAt:    m.CreatedAt,
	}
}

func (s *Server) listMedia(w http.ResponseWriter, r *http.Request) {
	typeFilter := models.MediaType(r.URL.Query().Get("type"))

	items, err := s.media.List(r.Context(), typeFilter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]*mediaResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newMediaResponse(item))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.media.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newMediaResponse(item))
}

func (s *Server) createMedia(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	item, err := s.media.Create(r.Context(), req.toModel())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newMediaResponse(item))
}

func (s *Server) deleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.media.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Media deleted"})
}

type uploadURLResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// mediaUploadURL hands the admin UI a presigned PUT target so the file
// itself never travels through this server.
func (s *Server) mediaUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.uploads.GetPresignedPutURL(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, UploadURL: url})
}
