// Package repo provides postgres access for intakes
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/store"
)

// Schema creates the intakes table, one statement per entry
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS intakes (
		id           uuid PRIMARY KEY,
		user_id      text NOT NULL,
		project_name text NOT NULL,
		data         jsonb NOT NULL,
		created_at   timestamptz NOT NULL DEFAULT now(),
		updated_at   timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS intakes_user_created_idx ON intakes (user_id, created_at DESC)`,
}

// Repo is the intake persistence surface
type Repo interface {
	Insert(ctx context.Context, userID string, id uuid.UUID, projectName string, data []byte) (Row, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (Row, error)
	List(ctx context.Context, userID string, limit int) ([]Row, error)
	Update(ctx context.Context, userID string, id uuid.UUID, projectName string, data []byte) (Row, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// Row is one intakes row; Data is the canonical intake JSON
type Row struct {
	ID          string
	UserID      string
	ProjectName string
	Data        []byte
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

const cols = `id::text, user_id, project_name, data::text, created_at, updated_at`

func scanRow(r store.Row) (Row, error) {
	var (
		out  Row
		data string
	)
	if err := r.Scan(&out.ID, &out.UserID, &out.ProjectName, &data, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return Row{}, err
	}
	out.Data = []byte(data)
	return out, nil
}

func notFound(err error, id uuid.UUID) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("intake %s not found", id)
	}
	return err
}

func (r *queries) Insert(ctx context.Context, userID string, id uuid.UUID, projectName string, data []byte) (Row, error) {
	const sql = `
		INSERT INTO intakes (id, user_id, project_name, data)
		VALUES ($1::uuid, $2, $3, $4::jsonb)
		RETURNING ` + cols
	return store.One(ctx, r.q, scanRow, sql, id.String(), userID, projectName, string(data))
}

func (r *queries) Get(ctx context.Context, userID string, id uuid.UUID) (Row, error) {
	const sql = `SELECT ` + cols + ` FROM intakes WHERE id = $1::uuid AND user_id = $2`
	row, err := store.One(ctx, r.q, scanRow, sql, id.String(), userID)
	return row, notFound(err, id)
}

func (r *queries) List(ctx context.Context, userID string, limit int) ([]Row, error) {
	const sql = `SELECT ` + cols + ` FROM intakes WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2`
	return store.Many(ctx, r.q, scanRow, sql, userID, limit)
}

func (r *queries) Update(ctx context.Context, userID string, id uuid.UUID, projectName string, data []byte) (Row, error) {
	const sql = `
		UPDATE intakes
		   SET project_name = $3, data = $4::jsonb, updated_at = now()
		 WHERE id = $1::uuid AND user_id = $2
		RETURNING ` + cols
	row, err := store.One(ctx, r.q, scanRow, sql, id.String(), userID, projectName, string(data))
	return row, notFound(err, id)
}

func (r *queries) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM intakes WHERE id = $1::uuid AND user_id = $2`, id.String(), userID)
	return notFound(err, id)
}
