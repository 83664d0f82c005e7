package domain

import (
	"context"

	"github.com/google/uuid"

	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
)

// Generator turns an intake into a scope document
type Generator interface {
	GenerateScopeFromIntake(ctx context.Context, in intake.Intake) (scopedoc.Document, error)
}

// ServicePort is the scope document surface, every call is scoped to owner
type ServicePort interface {
	Generate(ctx context.Context, owner string, intakeID uuid.UUID) (Record, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (Record, error)
	ListForIntake(ctx context.Context, owner string, intakeID uuid.UUID) (ListOutput, error)
	Patch(ctx context.Context, owner string, id uuid.UUID, in PatchInput) (Record, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}
