package models

import "time"

// MediaType discriminates media asset kinds.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeDocument MediaType = "document"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeDocument:
		return true
	}
	return false
}

// Media is an uploaded asset reference. It has no child relations and no
// update operation; records are created and deleted whole.
type Media struct {
	ID           int64
	Type         MediaType
	Title        string
	URL          string
	ThumbnailURL string
	FileSize     int64
	Dimensions   string
	UploadedBy   string
	CreatedAt    time.Time
}
