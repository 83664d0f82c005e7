// Package domain holds DTOs and ports for intake storage
package domain

import "scopegen/internal/core/intake"

// Record is a stored intake as rendered to clients
type Record struct {
	ID          string        `json:"id" example:"6f1c7a0e-3f7e-4d8c-9c55-0f1e2d3c4b5a"`
	ProjectName string        `json:"projectName" example:"Client Portal"`
	Intake      intake.Intake `json:"intake"`
	CreatedAt   string        `json:"createdAt" example:"2026-03-04T10:30:00.000Z"`
	UpdatedAt   string        `json:"updatedAt" example:"2026-03-04T10:30:00.000Z"`
}

// ListOutput is the paged intake listing
type ListOutput struct {
	Items []Record `json:"items"`
	Limit int      `json:"limit"`
}
