package models

import "time"

// Tag labels leads for segmentation. The add_tag action only links existing
// tags; it never creates them.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
