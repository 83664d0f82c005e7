// Package http provides http transport for scope documents
package http

import (
	stdhttp "net/http"

	"github.com/google/uuid"

	"scopegen/internal/modkit/httpkit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/net/http/bind"
	"scopegen/internal/services/api/scopes/domain"
	svc "scopegen/internal/services/api/scopes/service"
)

// maxEditBytes bounds an edited document body
const maxEditBytes = 1 << 20

// Register mounts the /scopes endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/generate", h.generateBody)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Patch(r, "/{id}", h.patch)
	httpkit.Delete(r, "/{id}", h.delete)
}

// RegisterIntakeRoutes mounts the scope endpoints that live under /intakes
func RegisterIntakeRoutes(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/{id}/generate", h.generatePath)
	httpkit.Get(r, "/{id}/scopes", h.listForIntake)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /intakes/{id}/generate Scopes scopeGenerateForIntake
// @Summary Generate the next scope document version for an intake
// @Description Runs the generation pipeline and stores the result as version max+1.
// @Tags Scopes
// @Produce json
// @Security BearerAuth
// @Param id path string true "intake id"
// @Success 201 {object} domain.Record "created"
// @Failure 404 {object} httpkit.Envelope "intake not found"
// @Failure 502 {object} httpkit.Envelope "backend output unusable"
// @Failure 503 {object} httpkit.Envelope "generator not configured"
// @Router /intakes/{id}/generate [post]
func (h *handlers) generatePath(r *stdhttp.Request) (any, error) {
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.generate(r, id)
}

// swagger:route POST /scopes/generate Scopes scopeGenerate
// @Summary Generate a scope document from a stored intake
// @Tags Scopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.GenerateInput true "intake reference"
// @Success 201 {object} domain.Record "created"
// @Failure 400 {object} httpkit.Envelope "invalid request"
// @Failure 404 {object} httpkit.Envelope "intake not found"
// @Failure 502 {object} httpkit.Envelope "backend output unusable"
// @Failure 503 {object} httpkit.Envelope "generator not configured"
// @Router /scopes/generate [post]
func (h *handlers) generateBody(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.GenerateInput](r)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(in.IntakeID)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("intakeId must be a uuid"), "intakeId")
	}
	return h.generate(r, id)
}

func (h *handlers) generate(r *stdhttp.Request, intakeID uuid.UUID) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	rec, err := h.svc.Generate(r.Context(), owner, intakeID)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(rec), nil
}

// swagger:route GET /intakes/{id}/scopes Scopes scopeListForIntake
// @Summary List an intake's scope documents, newest version first
// @Tags Scopes
// @Produce json
// @Security BearerAuth
// @Param id path string true "intake id"
// @Success 200 {object} domain.ListOutput "ok"
// @Failure 404 {object} httpkit.Envelope "intake not found"
// @Router /intakes/{id}/scopes [get]
func (h *handlers) listForIntake(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.ListForIntake(r.Context(), owner, id)
}

// swagger:route GET /scopes/{id} Scopes scopeGet
// @Summary Get a scope document
// @Tags Scopes
// @Produce json
// @Security BearerAuth
// @Param id path string true "scope document id"
// @Success 200 {object} domain.Record "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /scopes/{id} [get]
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

// swagger:route PATCH /scopes/{id} Scopes scopePatch
// @Summary Save an edited variant and/or change status
// @Description editedJson is validated against the scope document schema and stored beside the generated document. Saving an edit without a status moves the document to draft.
// @Tags Scopes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "scope document id"
// @Param payload body domain.PatchInput true "edit"
// @Success 200 {object} domain.Record "ok"
// @Failure 400 {object} httpkit.Envelope "invalid document"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /scopes/{id} [patch]
func (h *handlers) patch(r *stdhttp.Request) (any, error) {
	owner, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	id, err := httpkit.UUIDParam(r, "id")
	if err != nil {
		return nil, err
	}
	in, err := bind.ParseJSON[domain.PatchInput](r, bind.JSONOptions{MaxBytes: maxEditBytes, DisallowUnknown: true})
	if err != nil {
		return nil, err
	}
	return h.svc.Patch(r.Context(), owner, id, in)
}

// swagger:route DELETE /scopes/{id} Scopes scopeDelete
// @Summary Delete one scope document version
// @Tags Scopes
// @Security BearerAuth
// @Param id path string true "scope document id"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /scopes/{id} [delete]
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
