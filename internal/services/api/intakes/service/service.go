// Package service contains intake workflows
package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"scopegen/internal/core/intake"
	"scopegen/internal/core/jsonv"
	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/net/http/bind"
	ptime "scopegen/internal/platform/time"
	"scopegen/internal/services/api/intakes/domain"
	"scopegen/internal/services/api/intakes/repo"
)

// Listing bounds
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Service defines the service contract for intakes
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	newID  func() uuid.UUID
}

// New creates a new intakes service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("intakes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("intakes.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, newID: uuid.New}
}

// Create validates raw and stores the canonical intake
func (s *Svc) Create(ctx context.Context, owner string, raw map[string]any) (domain.Record, error) {
	in, data, err := canonical(raw)
	if err != nil {
		return domain.Record{}, err
	}
	row, err := s.Repo.Insert(ctx, owner, s.newID(), in.ProjectName, data)
	if err != nil {
		return domain.Record{}, err
	}
	return toRecord(row)
}

// Get loads one intake owned by owner
func (s *Svc) Get(ctx context.Context, owner string, id uuid.UUID) (domain.Record, error) {
	row, err := s.Repo.Get(ctx, owner, id)
	if err != nil {
		return domain.Record{}, err
	}
	return toRecord(row)
}

// List returns owner's intakes newest first
func (s *Svc) List(ctx context.Context, owner string, limit int) (domain.ListOutput, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	rows, err := s.Repo.List(ctx, owner, limit)
	if err != nil {
		return domain.ListOutput{}, err
	}
	out := domain.ListOutput{Items: make([]domain.Record, 0, len(rows)), Limit: limit}
	for _, r := range rows {
		rec, err := toRecord(r)
		if err != nil {
			return domain.ListOutput{}, err
		}
		out.Items = append(out.Items, rec)
	}
	return out, nil
}

// Update merge-patches the stored intake and re-validates the whole result
func (s *Svc) Update(ctx context.Context, owner string, id uuid.UUID, patch map[string]any) (domain.Record, error) {
	var row repo.Row
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		cur, err := r.Get(ctx, owner, id)
		if err != nil {
			return err
		}
		var base map[string]any
		if err := json.Unmarshal(cur.Data, &base); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeDB, "intake %s: stored data is not an object", id)
		}
		merged, _ := jsonv.MergePatch(base, patch).(map[string]any)
		in, data, err := canonical(merged)
		if err != nil {
			return err
		}
		row, err = r.Update(ctx, owner, id, in.ProjectName, data)
		return err
	})
	if err != nil {
		return domain.Record{}, err
	}
	return toRecord(row)
}

// Delete removes an intake; its scope documents go with it
func (s *Svc) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	return s.Repo.Delete(ctx, owner, id)
}

// canonical parses raw into an Intake and its stored JSON form
func canonical(raw map[string]any) (intake.Intake, []byte, error) {
	in, err := intake.Parse(raw)
	if err != nil {
		return intake.Intake{}, nil, Invalid(err)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return intake.Intake{}, nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode intake")
	}
	return in, data, nil
}

// Invalid maps an intake validation error to a coded validation error carrying every issue
func Invalid(err error) error {
	var ve *intake.ValidationError
	if errors.As(err, &ve) {
		return perr.WithOp(bind.ValidationError(ve.Issues), "intake")
	}
	return err
}

func toRecord(r repo.Row) (domain.Record, error) {
	var in intake.Intake
	if err := json.Unmarshal(r.Data, &in); err != nil {
		return domain.Record{}, perr.Wrapf(err, perr.ErrorCodeDB, "intake %s: decode stored data", r.ID)
	}
	return domain.Record{
		ID:          r.ID,
		ProjectName: r.ProjectName,
		Intake:      in,
		CreatedAt:   ptime.RFC3339(r.CreatedAt),
		UpdatedAt:   ptime.RFC3339(r.UpdatedAt),
	}, nil
}
