package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/validate"
	"scopegen/internal/services/api/intakes/repo"
)

// memRepo is an in-memory repo.Repo
type memRepo struct {
	mu   sync.Mutex
	rows map[string]repo.Row
	tick time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]repo.Row{}, tick: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) next() time.Time {
	m.tick = m.tick.Add(time.Second)
	return m.tick
}

func (m *memRepo) Insert(_ context.Context, userID string, id uuid.UUID, name string, data []byte) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.next()
	r := repo.Row{ID: id.String(), UserID: userID, ProjectName: name, Data: data, CreatedAt: now, UpdatedAt: now}
	m.rows[r.ID] = r
	return r, nil
}

func (m *memRepo) Get(_ context.Context, userID string, id uuid.UUID) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return repo.Row{}, perr.NotFoundf("intake %s not found", id)
	}
	return r, nil
}

func (m *memRepo) List(_ context.Context, userID string, limit int) ([]repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repo.Row
	for _, r := range m.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, userID string, id uuid.UUID, name string, data []byte) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return repo.Row{}, perr.NotFoundf("intake %s not found", id)
	}
	r.ProjectName, r.Data, r.UpdatedAt = name, data, m.next()
	m.rows[r.ID] = r
	return r, nil
}

func (m *memRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return perr.NotFoundf("intake %s not found", id)
	}
	delete(m.rows, r.ID)
	return nil
}

// inlineTx runs Tx bodies directly
type inlineTx struct{}

func (inlineTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (inlineTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (inlineTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (t inlineTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error   { return fn(t) }

func newSvc(t *testing.T) (*Svc, *memRepo) {
	t.Helper()
	mem := newMemRepo()
	s := New(inlineTx{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem }))
	return s, mem
}

func validRaw() map[string]any {
	return map[string]any{
		"projectName": "  Client   Portal ",
		"industry":    "eCommerce",
		"projectType": "Web app (SaaS)",
		"primaryGoal": "Get leads",
		"deadline":    "1–2 months",
		"budgetRange": "$10k–$25k",
		"features":    []any{"Login", "Dashboard"},
	}
}

func TestCreate_StoresCanonicalIntake(t *testing.T) {
	s, mem := newSvc(t)
	rec, err := s.Create(context.Background(), "u1", validRaw())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ProjectName != "Client Portal" || rec.Intake.ProjectName != "Client Portal" {
		t.Fatalf("project name not canonical: %+v", rec)
	}
	if rec.Intake.OutputPrefs.ProposalStyle != "Friendly" {
		t.Fatalf("defaults not applied: %+v", rec.Intake.OutputPrefs)
	}
	if rec.Intake.Roles == nil || len(rec.Intake.Roles) != 0 {
		t.Fatalf("absent lists should be empty, got %#v", rec.Intake.Roles)
	}
	if rec.CreatedAt == "" || len(mem.rows) != 1 {
		t.Fatalf("row not stored: %+v", rec)
	}
}

func TestCreate_InvalidCarriesEveryIssue(t *testing.T) {
	s, mem := newSvc(t)
	raw := validRaw()
	raw["projectName"] = "x"
	raw["industry"] = "Mining"
	_, err := s.Create(context.Background(), "u1", raw)
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	e, _ := perr.As(err)
	issues := e.Details().(map[string]any)["issues"].([]validate.Issue)
	if len(issues) != 2 {
		t.Fatalf("issues = %+v", issues)
	}
	if len(mem.rows) != 0 {
		t.Fatalf("invalid intake must not be stored")
	}
}

func TestGetListDelete_AreOwnerScoped(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()
	a, _ := s.Create(ctx, "u1", validRaw())
	b, _ := s.Create(ctx, "u1", validRaw())
	if _, err := s.Create(ctx, "u2", validRaw()); err != nil {
		t.Fatalf("Create u2: %v", err)
	}

	idA := uuid.MustParse(a.ID)
	if _, err := s.Get(ctx, "u2", idA); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("other owner Get should be not found, got %v", err)
	}

	list, err := s.List(ctx, "u1", 0)
	if err != nil || len(list.Items) != 2 || list.Limit != DefaultLimit {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if list.Items[0].ID != b.ID {
		t.Fatalf("list should be newest first: %+v", list.Items)
	}

	if err := s.Delete(ctx, "u2", idA); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("other owner Delete should be not found, got %v", err)
	}
	if err := s.Delete(ctx, "u1", idA); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "u1", idA); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("deleted intake still readable: %v", err)
	}
}

func TestUpdate_MergesAndRevalidates(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()
	raw := validRaw()
	raw["clientEmail"] = "ops@example.com"
	rec, _ := s.Create(ctx, "u1", raw)
	id := uuid.MustParse(rec.ID)

	got, err := s.Update(ctx, "u1", id, map[string]any{
		"projectName": "Renamed Portal",
		"clientEmail": nil,
		"outputPrefs": map[string]any{"includePricing": false},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ProjectName != "Renamed Portal" || got.Intake.ClientEmail != "" {
		t.Fatalf("patch not applied: %+v", got.Intake)
	}
	if got.Intake.OutputPrefs.IncludePricing || !got.Intake.OutputPrefs.IncludeTimeline {
		t.Fatalf("nested merge wrong: %+v", got.Intake.OutputPrefs)
	}
	if len(got.Intake.Features) != 2 {
		t.Fatalf("untouched fields lost: %+v", got.Intake.Features)
	}

	_, err = s.Update(ctx, "u1", id, map[string]any{"deadline": nil})
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("removing a required field should fail validation, got %v", err)
	}
	after, _ := s.Get(ctx, "u1", id)
	if after.Intake.Deadline == "" {
		t.Fatalf("failed update must not change the stored intake")
	}
}

func TestNew_PanicsOnNilDeps(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New(nil, nil)
}
