package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"scopegen/internal/adapters/llm"
	"scopegen/internal/core/generate"
	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
	"scopegen/internal/modkit/repokit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/testkit"
	intakesdom "scopegen/internal/services/api/intakes/domain"
	"scopegen/internal/services/api/scopes/domain"
	"scopegen/internal/services/api/scopes/repo"
	teldom "scopegen/internal/services/telemetry/domain"
)

// memRepo is an in-memory repo.Repo
type memRepo struct {
	mu     sync.Mutex
	rows   map[string]repo.Row
	locks  int
	insert error
	tick   time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]repo.Row{}, tick: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memRepo) next() time.Time {
	m.tick = m.tick.Add(time.Second)
	return m.tick
}

func (m *memRepo) LockIntake(context.Context, uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks++
	return nil
}

func (m *memRepo) InsertNext(_ context.Context, userID string, id, intakeID uuid.UUID, generated []byte) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insert != nil {
		return repo.Row{}, m.insert
	}
	v := 0
	for _, r := range m.rows {
		if r.IntakeID == intakeID.String() && r.Version > v {
			v = r.Version
		}
	}
	now := m.next()
	r := repo.Row{
		ID: id.String(), UserID: userID, IntakeID: intakeID.String(), Status: "generated",
		Version: v + 1, Generated: generated, CreatedAt: now, UpdatedAt: now,
	}
	m.rows[r.ID] = r
	return r, nil
}

func (m *memRepo) Get(_ context.Context, userID string, id uuid.UUID) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return repo.Row{}, perr.NotFoundf("scope document %s not found", id)
	}
	return r, nil
}

func (m *memRepo) ListByIntake(_ context.Context, userID string, intakeID uuid.UUID) ([]repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repo.Row
	for _, r := range m.rows {
		if r.UserID == userID && r.IntakeID == intakeID.String() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (m *memRepo) SaveEdit(_ context.Context, userID string, id uuid.UUID, edited []byte, status string) (repo.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return repo.Row{}, perr.NotFoundf("scope document %s not found", id)
	}
	r.Edited, r.Status, r.UpdatedAt = edited, status, m.next()
	m.rows[r.ID] = r
	return r, nil
}

func (m *memRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id.String()]
	if !ok || r.UserID != userID {
		return perr.NotFoundf("scope document %s not found", id)
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

// intakeReader serves intakes owned by one user
type intakeReader struct {
	owner string
	items map[uuid.UUID]intakesdom.Record
}

func (r intakeReader) Get(_ context.Context, owner string, id uuid.UUID) (intakesdom.Record, error) {
	rec, ok := r.items[id]
	if !ok || owner != r.owner {
		return intakesdom.Record{}, perr.NotFoundf("intake %s not found", id)
	}
	return rec, nil
}

// recorder collects runs
type recorder struct {
	mu   sync.Mutex
	runs []teldom.Run
}

func (r *recorder) Record(_ context.Context, run teldom.Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
}

type fixture struct {
	svc      *Svc
	mem      *memRepo
	stub     *llm.Stub
	rec      *recorder
	intakeID uuid.UUID
}

const owner = "user-1"

func validIntake(t *testing.T) intake.Intake {
	t.Helper()
	in, err := intake.Parse(map[string]any{
		"projectName": "Client Portal",
		"industry":    "eCommerce",
		"projectType": "Web app (SaaS)",
		"primaryGoal": "Get leads",
		"deadline":    "1–2 months",
		"budgetRange": "$10k–$25k",
		"features":    []any{"Login", "Dashboard"},
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}
	return in
}

func newFixture(t *testing.T, replies ...generate.Completion) fixture {
	t.Helper()
	id := uuid.New()
	reader := intakeReader{owner: owner, items: map[uuid.UUID]intakesdom.Record{
		id: {ID: id.String(), ProjectName: "Client Portal", Intake: validIntake(t)},
	}}
	mem := newMemRepo()
	stub := llm.NewStub(replies...)
	rec := &recorder{}
	s := New(inlineTx{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem }),
		reader, generate.New(stub), rec, Config{Provider: "stub", Model: "scripted"})
	return fixture{svc: s, mem: mem, stub: stub, rec: rec, intakeID: id}
}

func TestGenerate_StoresVersionsInOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Generate(ctx, owner, f.intakeID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := f.svc.Generate(ctx, owner, f.intakeID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first.Version != 1 || second.Version != 2 {
		t.Fatalf("versions = %d, %d", first.Version, second.Version)
	}
	if first.Status != domain.StatusGenerated || first.EditedJSON != nil {
		t.Fatalf("unexpected record %+v", first)
	}
	if first.GeneratedJSON.ProjectTitle != scopedoc.Template().ProjectTitle {
		t.Fatalf("generated = %q", first.GeneratedJSON.ProjectTitle)
	}
	if f.mem.locks != 2 {
		t.Fatalf("intake lock taken %d times", f.mem.locks)
	}

	list, err := f.svc.ListForIntake(ctx, owner, f.intakeID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 2 || list.Items[0].Version != 2 || list.IntakeID != f.intakeID.String() {
		t.Fatalf("list = %+v", list)
	}
}

func TestGenerate_RecordsTelemetryForEveryRun(t *testing.T) {
	bad := generate.Completion{Text: `{"projectTitle": ""}`, Reason: generate.ReasonComplete}
	f := newFixture(t, bad)

	_, err := f.svc.Generate(context.Background(), owner, f.intakeID)
	if perr.CodeOf(err) != perr.ErrorCodeGeneration {
		t.Fatalf("code = %v (%v)", perr.CodeOf(err), err)
	}
	if len(f.mem.rows) != 0 {
		t.Fatalf("failed run stored a document")
	}
	if len(f.rec.runs) != 1 {
		t.Fatalf("runs = %d", len(f.rec.runs))
	}
	run := f.rec.runs[0]
	if run.Outcome != teldom.OutcomeFailed || run.ErrorKind != teldom.KindSchemaValidation {
		t.Fatalf("run = %+v", run)
	}
	if run.BackendCalls != 2 || run.Violations == 0 {
		t.Fatalf("calls = %d violations = %d", run.BackendCalls, run.Violations)
	}
	if run.Owner != owner || run.IntakeID != f.intakeID.String() || run.Provider != "stub" || run.Model != "scripted" {
		t.Fatalf("run identity = %+v", run)
	}
}

func TestGenerate_SchemaFailureCarriesViolations(t *testing.T) {
	f := newFixture(t, generate.Completion{Text: `{}`, Reason: generate.ReasonComplete})
	_, err := f.svc.Generate(context.Background(), owner, f.intakeID)
	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected *perr.Error, got %T", err)
	}
	details, _ := e.Details().(map[string]any)
	vs, _ := details["violations"].([]scopedoc.Violation)
	if len(vs) == 0 || details["attempts"] != 2 {
		t.Fatalf("details = %#v", e.Details())
	}
}

func TestGenerate_UnknownIntakeIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Generate(context.Background(), owner, uuid.New())
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
	_, err = f.svc.Generate(context.Background(), "someone-else", f.intakeID)
	if perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("foreign owner code = %v", perr.CodeOf(err))
	}
	if f.stub.Calls() != 0 || len(f.rec.runs) != 0 {
		t.Fatalf("backend reached for a missing intake")
	}
}

func TestGenerate_StoreFailureSurfaces(t *testing.T) {
	f := newFixture(t)
	f.mem.insert = perr.DBf("boom")
	_, err := f.svc.Generate(context.Background(), owner, f.intakeID)
	if perr.CodeOf(err) != perr.ErrorCodeDB {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
	if len(f.rec.runs) != 1 || f.rec.runs[0].Outcome != teldom.OutcomeSucceeded {
		t.Fatalf("runs = %+v", f.rec.runs)
	}
}

func TestPatch_EditKeepsGeneratedAndMovesToDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec, err := f.svc.Generate(ctx, owner, f.intakeID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id := uuid.MustParse(rec.ID)

	edit := scopedoc.Template()
	edit.ProjectTitle = "Edited Portal"
	raw, _ := json.Marshal(edit)

	got, err := f.svc.Patch(ctx, owner, id, domain.PatchInput{EditedJSON: raw})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if got.Status != domain.StatusDraft {
		t.Fatalf("status = %q", got.Status)
	}
	if got.EditedJSON == nil || got.EditedJSON.ProjectTitle != "Edited Portal" {
		t.Fatalf("edit = %+v", got.EditedJSON)
	}
	if got.GeneratedJSON.ProjectTitle != scopedoc.Template().ProjectTitle {
		t.Fatalf("generated document changed")
	}

	final := "final"
	got, err = f.svc.Patch(ctx, owner, id, domain.PatchInput{Status: &final})
	if err != nil {
		t.Fatalf("status patch: %v", err)
	}
	if got.Status != domain.StatusFinal || got.EditedJSON == nil {
		t.Fatalf("status-only patch dropped the edit: %+v", got)
	}

	got, err = f.svc.Patch(ctx, owner, id, domain.PatchInput{EditedJSON: json.RawMessage("null"), Status: &final})
	if err != nil {
		t.Fatalf("clear patch: %v", err)
	}
	if got.EditedJSON != nil || got.Status != domain.StatusFinal {
		t.Fatalf("edit not cleared: %+v", got)
	}
}

func TestPatch_InvalidEditIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec, _ := f.svc.Generate(ctx, owner, f.intakeID)

	_, err := f.svc.Patch(ctx, owner, uuid.MustParse(rec.ID), domain.PatchInput{EditedJSON: json.RawMessage(`{"projectTitle":"x"}`)})
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "editedJson" {
		t.Fatalf("err = %v", err)
	}
	testkit.MustContain(t, e.Error(), "not a valid scope document")

	stored, _ := f.svc.Get(ctx, owner, uuid.MustParse(rec.ID))
	if stored.EditedJSON != nil || stored.Status != domain.StatusGenerated {
		t.Fatalf("rejected edit was stored: %+v", stored)
	}
}

func TestPatch_EmptyAndUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Patch(ctx, owner, uuid.New(), domain.PatchInput{}); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("empty patch code = %v", perr.CodeOf(err))
	}
	draft := "draft"
	if _, err := f.svc.Patch(ctx, owner, uuid.New(), domain.PatchInput{Status: &draft}); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("missing doc code = %v", perr.CodeOf(err))
	}
}

func TestDelete_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rec, _ := f.svc.Generate(ctx, owner, f.intakeID)
	id := uuid.MustParse(rec.ID)

	if err := f.svc.Delete(ctx, "someone-else", id); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("foreign delete code = %v", perr.CodeOf(err))
	}
	if err := f.svc.Delete(ctx, owner, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, owner, id); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("get after delete code = %v", perr.CodeOf(err))
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"configuration", &generate.ConfigurationError{Err: errors.New("no key")}, perr.ErrorCodeConfiguration},
		{"empty", &generate.EmptyResponseError{Attempts: 2, Reason: generate.ReasonLength}, perr.ErrorCodeGeneration},
		{"malformed", &generate.MalformedOutputError{Attempts: 1, Err: errors.New("eof")}, perr.ErrorCodeGeneration},
		{"schema", &generate.SchemaValidationError{Attempts: 2}, perr.ErrorCodeGeneration},
		{"intake", &intake.ValidationError{}, perr.ErrorCodeValidation},
		{"passthrough", perr.DBf("x"), perr.ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := perr.CodeOf(MapError(tc.err)); got != tc.code {
				t.Fatalf("code = %v, want %v", got, tc.code)
			}
		})
	}
	if MapError(nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestNew_PanicsOnMissingCollaborators(t *testing.T) {
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return newMemRepo() })
	gen := generate.New(llm.NewStub())
	reader := intakeReader{}
	testkit.MustPanic(t, func() { New(nil, b, reader, gen, nil, Config{}) })
	testkit.MustPanic(t, func() { New(inlineTx{}, nil, reader, gen, nil, Config{}) })
	testkit.MustPanic(t, func() { New(inlineTx{}, b, nil, gen, nil, Config{}) })
	testkit.MustPanic(t, func() { New(inlineTx{}, b, reader, nil, nil, Config{}) })
}
