// Package http provides http transport for intakes
package http

import (
	stdhttp "net/http"

	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/platform/net/http/bind"
	svc "scopegen/internal/services/api/intakes/service"
)

// maxIntakeBytes bounds a single intake body
const maxIntakeBytes = 1 << 20

// Register mounts intake endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Patch(r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

func body(r *stdhttp.Request) (map[string]any, error) {
	return bind.ParseJSON[map[string]any](r, bind.JSONOptions{MaxBytes: maxIntakeBytes})
}

// swagger:route POST /intakes Intakes intakeCreate
// @Summary Create an intake
// @Description Validates the questionnaire and stores its canonical form. Every invalid field is reported in data.issues.
// @Tags Intakes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body intake.Intake true "Intake"
// @Success 201 {object} domain.Record "created"
// @Failure 400 {object} httpkit.Envelope "invalid intake"
// @Router /intakes [post]
func (h *handlers) create(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	raw, err := body(r)
	if err != nil {
		return nil, err
	}
	rec, err := h.svc.Create(r.Context(), owner, raw)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rec), nil
}

// swagger:route GET /intakes Intakes intakeList
// @Summary List intakes, newest first
// @Tags Intakes
// @Produce json
// @Security BearerAuth
// @Param limit query int false "page size (1-200)"
// @Success 200 {object} domain.ListOutput "ok"
// @Router /intakes [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), owner, httpkit.QueryInt(r, "limit", svc.DefaultLimit))
}

// swagger:route GET /intakes/{id} Intakes intakeGet
// @Summary Get an intake
// @Tags Intakes
// @Produce json
// @Security BearerAuth
// @Param id path string true "intake id"
// @Success 200 {object} domain.Record "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /intakes/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), owner, id)
}

// swagger:route PATCH /intakes/{id} Intakes intakeUpdate
// @Summary Merge-patch an intake
// @Description The patched intake is validated as a whole; null members remove optional fields.
// @Tags Intakes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "intake id"
// @Param payload body object true "merge patch"
// @Success 200 {object} domain.Record "ok"
// @Failure 400 {object} httpkit.Envelope "invalid intake"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /intakes/{id} [patch]
func (h *handlers) update(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	patch, err := body(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Update(r.Context(), owner, id, patch)
}

// swagger:route DELETE /intakes/{id} Intakes intakeDelete
// @Summary Delete an intake and its scope documents
// @Tags Intakes
// @Security BearerAuth
// @Param id path string true "intake id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /intakes/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), owner, id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
