package model

import (
	"encoding/json"
	"fmt"

	"resume-builder/internal/domain"
)

// Request payloads shared by the HTTP API and the CLI. They are checked
// against the embedded schemas before decoding.

// ResumeRequest is the body of render, export and save calls.
type ResumeRequest struct {
	TemplateID string            `json:"templateId,omitempty"`
	Name       string            `json:"name,omitempty"`
	FileName   string            `json:"fileName,omitempty"`
	Data       domain.ResumeData `json:"data"`
}

// UpdateRequest is the body of a saved-resume patch.
type UpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	TemplateID *string `json:"templateId,omitempty"`
}

func (u UpdateRequest) Update() domain.SavedResumeUpdate {
	return domain.SavedResumeUpdate{Name: u.Name, TemplateID: u.TemplateID}
}

// DecodeRequest validates and decodes a ResumeRequest.
func DecodeRequest(raw []byte) (ResumeRequest, error) {
	var req ResumeRequest
	if err := ValidateRequest(raw); err != nil {
		return req, err
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return req, nil
}

// DecodeUpdate validates and decodes an UpdateRequest.
func DecodeUpdate(raw []byte) (UpdateRequest, error) {
	var req UpdateRequest
	if err := ValidateUpdate(raw); err != nil {
		return req, err
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return req, nil
}

// DecodeResume validates and decodes a bare ResumeData document.
func DecodeResume(raw []byte) (domain.ResumeData, error) {
	var data domain.ResumeData
	if err := ValidateResume(raw); err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return data, nil
}

// DecodeSavedList validates and decodes the persisted saved-resume list.
func DecodeSavedList(raw []byte) ([]domain.SavedResume, error) {
	if err := ValidateSavedList(raw); err != nil {
		return nil, err
	}
	var list []domain.SavedResume
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return list, nil
}
