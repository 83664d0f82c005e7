// Package domain holds DTOs and ports for scope documents
package domain

import (
	"encoding/json"

	"scopegen/internal/core/scopedoc"
)

// Status is the editorial state of a scope document
type Status string

// Statuses
const (
	StatusDraft     Status = "draft"
	StatusGenerated Status = "generated"
	StatusFinal     Status = "final"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusGenerated, StatusFinal:
		return true
	}
	return false
}

// Record is one stored scope document version
type Record struct {
	ID            string             `json:"id" example:"0b9e4c1a-2f0e-4d7a-8f1e-6a5b4c3d2e1f"`
	IntakeID      string             `json:"intakeId" example:"6f1c7a0e-3f7e-4d8c-9c55-0f1e2d3c4b5a"`
	Status        Status             `json:"status" example:"generated"`
	Version       int                `json:"version" example:"1"`
	GeneratedJSON scopedoc.Document  `json:"generatedJson"`
	EditedJSON    *scopedoc.Document `json:"editedJson"`
	ExportCount   int                `json:"exportCount" example:"0"`
	CreatedAt     string             `json:"createdAt" example:"2026-03-04T10:30:00.000Z"`
	UpdatedAt     string             `json:"updatedAt" example:"2026-03-04T10:30:00.000Z"`
}

// GenerateInput names the intake to generate from
type GenerateInput struct {
	IntakeID string `json:"intakeId" validate:"required,uuid" example:"6f1c7a0e-3f7e-4d8c-9c55-0f1e2d3c4b5a"`
}

// PatchInput edits a scope document. An absent editedJson leaves the edit
// alone and a null one clears it. Saving an edit without a status moves the
// document back to draft.
type PatchInput struct {
	EditedJSON json.RawMessage `json:"editedJson,omitempty" swaggertype:"object"`
	Status     *string         `json:"status,omitempty" validate:"omitempty,oneof=draft generated final" example:"final"`
}

// ListOutput lists an intake's versions, newest first
type ListOutput struct {
	IntakeID string   `json:"intakeId"`
	Items    []Record `json:"items"`
}
