package service

import (
	"errors"

	"scopegen/internal/core/generate"
	"scopegen/internal/core/intake"
	"scopegen/internal/core/scopedoc"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/net/http/bind"
)

// MapError turns core errors into coded errors; anything else passes through
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var (
		iv    *intake.ValidationError
		cfg   *generate.ConfigurationError
		empty *generate.EmptyResponseError
		mal   *generate.MalformedOutputError
		sch   *generate.SchemaValidationError
	)
	switch {
	case errors.As(err, &iv):
		return perr.WithOp(bind.ValidationError(iv.Issues), "intake")
	case errors.As(err, &cfg):
		return perr.WithOp(perr.Wrap(cfg, perr.ErrorCodeConfiguration, cfg.Error()), "generate")
	case errors.As(err, &empty):
		return perr.WithDetails(perr.WithOp(perr.Wrap(empty, perr.ErrorCodeGeneration, empty.Error()), "generate"),
			map[string]any{"attempts": empty.Attempts, "completion": string(empty.Reason)})
	case errors.As(err, &mal):
		return perr.WithDetails(perr.WithOp(perr.Wrap(mal, perr.ErrorCodeGeneration, mal.Error()), "generate"),
			map[string]any{"attempts": mal.Attempts})
	case errors.As(err, &sch):
		return perr.WithDetails(perr.WithOp(perr.Wrap(sch, perr.ErrorCodeGeneration, sch.Error()), "generate"),
			map[string]any{"attempts": sch.Attempts, "violations": sch.Violations})
	}
	return err
}

// invalidDocument reports an edited document that fails the schema
func invalidDocument(vs []scopedoc.Violation) error {
	msg := "editedJson is not a valid scope document"
	if len(vs) > 0 {
		msg += ": " + vs[0].String()
	}
	err := perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), "editedJson")
	return perr.WithDetails(err, map[string]any{"violations": vs})
}
