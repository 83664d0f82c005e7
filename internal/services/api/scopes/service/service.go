// Package service contains scope document workflows
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/core/generate"
	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/logger"
	ptime "scopegen/internal/platform/time"
	intakesdom "scopegen/internal/services/api/intakes/domain"
	"scopegen/internal/services/api/scopes/domain"
	"scopegen/internal/services/api/scopes/repo"
	teldom "scopegen/internal/services/telemetry/domain"
)

// Service defines the service contract for scope documents
type Service interface{ domain.ServicePort }

// Config names the generator for telemetry
type Config struct {
	Provider string
	Model    string
}

// Svc implements Service
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	intakes  intakesdom.ReaderPort
	gen      domain.Generator
	recorder teldom.RecorderPort
	cfg      Config
	log      logger.Logger

	newID func() uuid.UUID
	now   func() time.Time
}

// New creates a scope document service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[repo.Repo],
	intakes intakesdom.ReaderPort,
	gen domain.Generator,
	recorder teldom.RecorderPort,
	cfg Config,
) *Svc {
	if db == nil {
		panic("scopes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("scopes.Service requires a non nil Repo binder")
	}
	if intakes == nil {
		panic("scopes.Service requires an intake reader")
	}
	if gen == nil {
		panic("scopes.Service requires a generator")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		intakes:  intakes,
		gen:      gen,
		recorder: recorder,
		cfg:      cfg,
		log:      *logger.Named("scopes"),
		newID:    uuid.New,
		now:      time.Now,
	}
}

// Generate runs the pipeline for one stored intake and stores the result as its next version
func (s *Svc) Generate(ctx context.Context, owner string, intakeID uuid.UUID) (domain.Record, error) {
	rec, err := s.intakes.Get(ctx, owner, intakeID)
	if err != nil {
		return domain.Record{}, err
	}
	// stored intakes are re-checked; the option sets may have moved since they were saved
	raw, err := json.Marshal(rec.Intake)
	if err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode intake")
	}
	in, err := intake.ParseJSON(raw)
	if err != nil {
		return domain.Record{}, MapError(err)
	}

	doc, err := s.run(ctx, owner, intakeID, in)
	if err != nil {
		return domain.Record{}, MapError(err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode scope document")
	}
	var row repo.Row
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.LockIntake(ctx, intakeID); err != nil {
			return err
		}
		row, err = r.InsertNext(ctx, owner, s.newID(), intakeID, data)
		return err
	})
	if err != nil {
		return domain.Record{}, err
	}
	s.log.Info().Str("intake_id", intakeID.String()).Str("scope_id", row.ID).Int("version", row.Version).
		Msg("scope document stored")
	return toRecord(row)
}

// run invokes the orchestrator, logging and recording the outcome
func (s *Svc) run(ctx context.Context, owner string, intakeID uuid.UUID, in intake.Intake) (scopedoc.Document, error) {
	tr := teldom.NewTracker(s.now)
	s.log.Info().Str("intake_id", intakeID.String()).Str("provider", s.cfg.Provider).Msg("generation started")

	doc, err := s.gen.GenerateScopeFromIntake(generate.ContextWithObserver(ctx, tr.Observe), in)

	run := tr.Finish(teldom.Run{
		Owner:    owner,
		IntakeID: intakeID.String(),
		Provider: s.cfg.Provider,
		Model:    s.cfg.Model,
	}, err)
	if s.recorder != nil {
		s.recorder.Record(ctx, run)
	}

	ev := s.log.Info()
	if err != nil {
		ev = s.log.Warn().Err(err).Str("error_kind", run.ErrorKind).Int("violations", run.Violations)
	}
	ev.Str("run_id", run.ID.String()).
		Str("intake_id", intakeID.String()).
		Str("outcome", string(run.Outcome)).
		Int("backend_calls", run.BackendCalls).
		Strs("retry_reasons", run.RetryReasons).
		Int64("latency_ms", run.LatencyMs).
		Msg("generation finished")
	return doc, err
}

// Get loads one scope document
func (s *Svc) Get(ctx context.Context, owner string, id uuid.UUID) (domain.Record, error) {
	row, err := s.Repo.Get(ctx, owner, id)
	if err != nil {
		return domain.Record{}, err
	}
	return toRecord(row)
}

// ListForIntake lists an intake's versions, newest first
func (s *Svc) ListForIntake(ctx context.Context, owner string, intakeID uuid.UUID) (domain.ListOutput, error) {
	if _, err := s.intakes.Get(ctx, owner, intakeID); err != nil {
		return domain.ListOutput{}, err
	}
	rows, err := s.Repo.ListByIntake(ctx, owner, intakeID)
	if err != nil {
		return domain.ListOutput{}, err
	}
	out := domain.ListOutput{IntakeID: intakeID.String(), Items: make([]domain.Record, 0, len(rows))}
	for _, r := range rows {
		rec, err := toRecord(r)
		if err != nil {
			return domain.ListOutput{}, err
		}
		out.Items = append(out.Items, rec)
	}
	return out, nil
}

// Patch stores an edited variant beside the generated document and/or moves its status
func (s *Svc) Patch(ctx context.Context, owner string, id uuid.UUID, in domain.PatchInput) (domain.Record, error) {
	editSent := len(in.EditedJSON) > 0
	if !editSent && in.Status == nil {
		return domain.Record{}, perr.InvalidArgf("nothing to update: send editedJson and/or status")
	}

	var edited []byte
	clearEdit := editSent && bytes.Equal(bytes.TrimSpace(in.EditedJSON), []byte("null"))
	if editSent && !clearEdit {
		doc, vs := scopedoc.ValidateJSON(in.EditedJSON)
		if len(vs) > 0 {
			return domain.Record{}, invalidDocument(vs)
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return domain.Record{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode edited document")
		}
		edited = b
	}

	var row repo.Row
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		cur, err := r.Get(ctx, owner, id)
		if err != nil {
			return err
		}
		status := domain.Status(cur.Status)
		switch {
		case in.Status != nil:
			status = domain.Status(*in.Status)
		case editSent:
			status = domain.StatusDraft
		}
		if !status.Valid() {
			return perr.WithField(perr.InvalidArgf("unknown status %q", status), "status")
		}
		if !editSent {
			edited = cur.Edited
		}
		row, err = r.SaveEdit(ctx, owner, id, edited, string(status))
		return err
	})
	if err != nil {
		return domain.Record{}, err
	}
	return toRecord(row)
}

// Delete removes one scope document version
func (s *Svc) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	return s.Repo.Delete(ctx, owner, id)
}

func toRecord(r repo.Row) (domain.Record, error) {
	out := domain.Record{
		ID:          r.ID,
		IntakeID:    r.IntakeID,
		Status:      domain.Status(r.Status),
		Version:     r.Version,
		ExportCount: r.ExportCount,
		CreatedAt:   ptime.RFC3339(r.CreatedAt),
		UpdatedAt:   ptime.RFC3339(r.UpdatedAt),
	}
	if err := json.Unmarshal(r.Generated, &out.GeneratedJSON); err != nil {
		return domain.Record{}, perr.Wrapf(err, perr.ErrorCodeDB, "scope document %s: decode generated", r.ID)
	}
	if r.Edited != nil {
		var doc scopedoc.Document
		if err := json.Unmarshal(r.Edited, &doc); err != nil {
			return domain.Record{}, perr.Wrapf(err, perr.ErrorCodeDB, "scope document %s: decode edit", r.ID)
		}
		out.EditedJSON = &doc
	}
	return out, nil
}
