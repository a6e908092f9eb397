package models

import "time"

// Profile represents a career identity: a named persona bundling a bio,
// a skill list and supporting documents. Identity is the ID; Name is
// user-facing and not required to be unique.
type Profile struct {
	ID        string     `json:"id" validate:"required"`
	Name      string     `json:"name" validate:"required"`
	Bio       string     `json:"bio"`
	Skills    []string   `json:"skills"`
	Documents []Document `json:"documents"`
}

// Document is a text file attached to exactly one profile.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	UploadDate time.Time `json:"upload_date"`
}
