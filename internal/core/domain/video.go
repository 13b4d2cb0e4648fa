package domain

import "time"

// VideoStatus is the publication state of a video entry.
type VideoStatus string

const (
	VideoDraft     VideoStatus = "draft"
	VideoPublished VideoStatus = "published"
	VideoArchived  VideoStatus = "archived"
)

// Video is a catalogue entry. File storage and transcoding live elsewhere;
// this service only tracks metadata.
type Video struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags,omitempty"`
	Status      VideoStatus `json:"status"`
	OwnerID     string      `json:"owner_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
