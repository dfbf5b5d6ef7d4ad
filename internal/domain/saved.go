package domain

import "time"

// SavedResume is a named, frozen snapshot of resume content bound to a template.
type SavedResume struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	TemplateID string     `json:"templateId"`
	CreatedAt  time.Time  `json:"createdAt"`
	Data       ResumeData `json:"data"`
}

// SavedResumeUpdate carries the fields that may change after a save.
// Nil fields are left untouched.
type SavedResumeUpdate struct {
	Name       *string `json:"name,omitempty"`
	TemplateID *string `json:"templateId,omitempty"`
}
