package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dsemenov/pressroom/internal/common"
	"github.com/dsemenov/pressroom/internal/server/models"
)

// contentRequest is the flat wire shape the admin UI sends. The body
// field is named "content" on the wire for historical reasons.
type contentRequest struct {
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Slug     string   `json:"slug"`
	Author   string   `json:"author"`
	Featured bool     `json:"featured"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Position string   `json:"position"`
	Company  string   `json:"company"`
	Tags     []string `json:"tags"`
}

// toModel builds the tagged domain shape; fields belonging to another
// type are dropped here, so a page payload smuggling a category never
// reaches storage.
func (req *contentRequest) toModel() *models.Content {
	c := &models.Content{
		Type:   models.ContentType(req.Type),
		Title:  req.Title,
		Body:   req.Content,
		Slug:   req.Slug,
		Author: req.Author,
		Tags:   req.Tags,
	}

	switch c.Type {
	case models.ContentTypeBlog:
		c.Blog = &models.BlogFields{
			Category: req.Category,
			Featured: req.Featured,
			Image:    req.Image,
		}
	case models.ContentTypeTestimonial:
		c.Testimonial = &models.TestimonialFields{
			Position: req.Position,
			Company:  req.Company,
		}
	}

	return c
}

type contentResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Slug      string    `json:"slug"`
	Author    string    `json:"author"`
	Featured  bool      `json:"featured"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	Position  string    `json:"position,omitempty"`
	Company   string    `json:"company,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newContentResponse(c *models.Content) *contentResponse {
	resp := &contentResponse{
		ID:        c.ID,
		Type:      string(c.Type),
		Title:     c.Title,
		Content:   c.Body,
		Slug:      c.Slug,
		Author:    c.Author,
		Tags:      c.Tags,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if c.Blog != nil {
		resp.Featured = c.Blog.Featured
		resp.Image = c.Blog.Image
		resp.Category = c.Blog.Category
	}
	if c.Testimonial != nil {
		resp.Position = c.Testimonial.Position
		resp.Company = c.Testimonial.Company
	}
	return resp
}

// idParam parses the {id} route parameter. A non-numeric id behaves like
// a missing record.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	typeFilter := models.ContentType(r.URL.Query().Get("type"))

	items, err := s.content.List(r.Context(), typeFilter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := make([]*contentResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newContentResponse(item))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.content.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newContentResponse(item))
}

func (s *Server) createContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	item, err := s.content.Create(r.Context(), req.toModel())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, newContentResponse(item))
}

func (s *Server) updateContent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return
	}

	item, err := s.content.Update(r.Context(), id, req.toModel())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newContentResponse(item))
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.content.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Content deleted"})
}
