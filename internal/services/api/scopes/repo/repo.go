// Package repo provides postgres access for scope documents
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/store"
)

// Schema creates the scope_docs table; it depends on intakes
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS scope_docs (
		id             uuid PRIMARY KEY,
		user_id        text NOT NULL,
		intake_id      uuid NOT NULL REFERENCES intakes (id) ON DELETE CASCADE,
		status         text NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'generated', 'final')),
		version        integer NOT NULL CHECK (version >= 1),
		generated_json jsonb NOT NULL,
		edited_json    jsonb,
		export_count   integer NOT NULL DEFAULT 0,
		created_at     timestamptz NOT NULL DEFAULT now(),
		updated_at     timestamptz NOT NULL DEFAULT now(),
		UNIQUE (intake_id, version)
	)`,
	`CREATE INDEX IF NOT EXISTS scope_docs_user_intake_idx ON scope_docs (user_id, intake_id, version DESC)`,
}

// Repo is the scope document persistence surface
type Repo interface {
	// LockIntake serializes version assignment for one intake until the transaction ends
	LockIntake(ctx context.Context, intakeID uuid.UUID) error
	// InsertNext stores generated as the intake's next version
	InsertNext(ctx context.Context, userID string, id, intakeID uuid.UUID, generated []byte) (Row, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (Row, error)
	ListByIntake(ctx context.Context, userID string, intakeID uuid.UUID) ([]Row, error)
	// SaveEdit replaces the edited variant (nil clears it) and the status
	SaveEdit(ctx context.Context, userID string, id uuid.UUID, edited []byte, status string) (Row, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// Row is one scope_docs row; Edited is nil when no edit is stored
type Row struct {
	ID          string
	UserID      string
	IntakeID    string
	Status      string
	Version     int
	Generated   []byte
	Edited      []byte
	ExportCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type (
	// PG implements Repo on Postgres
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id::text, user_id, intake_id::text, status, version,
	generated_json::text, edited_json::text, export_count, created_at, updated_at`

func scanRow(r store.Row) (Row, error) {
	var (
		out       Row
		generated string
		edited    *string
	)
	if err := r.Scan(
		&out.ID, &out.UserID, &out.IntakeID, &out.Status, &out.Version,
		&generated, &edited, &out.ExportCount, &out.CreatedAt, &out.UpdatedAt,
	); err != nil {
		return Row{}, err
	}
	out.Generated = []byte(generated)
	if edited != nil {
		out.Edited = []byte(*edited)
	}
	return out, nil
}

func notFound(err error, id uuid.UUID) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("scope document %s not found", id)
	}
	return err
}

// LockTimeout bounds how long a transaction waits on the version lock or row locks
func LockTimeout(d time.Duration) repokit.BeginHook {
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := store.Exec(ctx, q, stmt)
		return err
	}
}

func (r *queries) LockIntake(ctx context.Context, intakeID uuid.UUID) error {
	_, err := store.Exec(ctx, r.q, `SELECT pg_advisory_xact_lock(hashtext($1))`, intakeID.String())
	return err
}

func (r *queries) InsertNext(ctx context.Context, userID string, id, intakeID uuid.UUID, generated []byte) (Row, error) {
	const sql = `
		INSERT INTO scope_docs (id, user_id, intake_id, status, version, generated_json)
		SELECT $1::uuid, $2, $3::uuid, 'generated', COALESCE(MAX(version), 0) + 1, $4::jsonb
		  FROM scope_docs
		 WHERE intake_id = $3::uuid
		RETURNING ` + cols
	return store.One(ctx, r.q, scanRow, sql, id.String(), userID, intakeID.String(), string(generated))
}

func (r *queries) Get(ctx context.Context, userID string, id uuid.UUID) (Row, error) {
	const sql = `SELECT ` + cols + ` FROM scope_docs WHERE id = $1::uuid AND user_id = $2`
	row, err := store.One(ctx, r.q, scanRow, sql, id.String(), userID)
	return row, notFound(err, id)
}

func (r *queries) ListByIntake(ctx context.Context, userID string, intakeID uuid.UUID) ([]Row, error) {
	const sql = `SELECT ` + cols + ` FROM scope_docs
		WHERE intake_id = $1::uuid AND user_id = $2
		ORDER BY version DESC`
	return store.Many(ctx, r.q, scanRow, sql, intakeID.String(), userID)
}

func (r *queries) SaveEdit(ctx context.Context, userID string, id uuid.UUID, edited []byte, status string) (Row, error) {
	const sql = `
		UPDATE scope_docs
		   SET edited_json = $3::jsonb, status = $4, updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2
		RETURNING ` + cols
	var arg any
	if edited != nil {
		arg = string(edited)
	}
	row, err := store.One(ctx, r.q, scanRow, sql, id.String(), userID, arg, status)
	return row, notFound(err, id)
}

func (r *queries) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM scope_docs WHERE id = $1::uuid AND user_id = $2`, id.String(), userID)
	return notFound(err, id)
}
