// Package models defines the server-side domain types persisted by the
// repositories.
package models

import "time"

// ContentType discriminates the kinds of records sharing the content table.
type ContentType string

const (
	ContentTypePage        ContentType = "page"
	ContentTypeBlog        ContentType = "blog"
	ContentTypeTestimonial ContentType = "testimonial"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePage, ContentTypeBlog, ContentTypeTestimonial:
		return true
	}
	return false
}

// BlogFields are the attributes meaningful only for blog posts.
type BlogFields struct {
	Category string
	Featured bool
	Image    string
}

// TestimonialFields are the attributes meaningful only for testimonials.
type TestimonialFields struct {
	Position string
	Company  string
}

// Content is a page, blog post or testimonial. The storage layer keeps one
// flat row per record; here the type-specific attributes live behind the
// section matching Type, so a page can never carry a category and a
// testimonial can never carry a featured flag.
type Content struct {
	ID        int64
	Type      ContentType
	Title     string
	Body      string
	Slug      string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Tags is owned by the record regardless of type; the editing UI only
	// offers it for blog posts, the store does not care.
	Tags []string

	// Exactly the section matching Type is non-nil.
	Blog        *BlogFields
	Testimonial *TestimonialFields
}
