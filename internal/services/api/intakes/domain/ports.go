package domain

import (
	"context"

	"github.com/google/uuid"
)

// ServicePort is the intake CRUD surface, every call is scoped to owner
type ServicePort interface {
	Create(ctx context.Context, owner string, raw map[string]any) (Record, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (Record, error)
	List(ctx context.Context, owner string, limit int) (ListOutput, error)
	Update(ctx context.Context, owner string, id uuid.UUID, patch map[string]any) (Record, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// ReaderPort is what other modules need to load an intake
type ReaderPort interface {
	Get(ctx context.Context, owner string, id uuid.UUID) (Record, error)
}
