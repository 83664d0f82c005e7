// Package validate owns the process-wide validator and its english messages
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Issue is one failed constraint, addressed by its json path
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type engine struct {
	v     *validator.Validate
	trans ut.Translator

	mu    sync.Mutex
	enums map[string]struct{}
}

var shared = sync.OnceValue(func() *engine {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	e := &engine{v: v, trans: trans, enums: map[string]struct{}{}}
	e.message("min", "{0} must be at least {1}")
	e.message("max", "{0} must be at most {1}")
	e.message("gte", "{0} must be {1} or greater")
	return e
})

// jsonName reports fields by their json key, or the Go name when there is none
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// message overrides the translation for tag; {0} is the field, {1} the param
func (e *engine) message(tag, text string) {
	_ = e.v.RegisterTranslation(tag, e.trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// RegisterEnum makes tag accept exactly the strings in allowed.
// Unlike oneof, values may contain spaces. The first registration of a tag wins.
func RegisterEnum(tag string, allowed []string) {
	e := shared()
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, done := e.enums[tag]; done {
		return
	}
	e.enums[tag] = struct{}{}

	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	_ = e.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && set[fl.Field().String()]
	})
	e.message(tag, "{0} is not one of the allowed values ["+strings.Join(allowed, ", ")+"]")
}

// Struct returns every failed constraint on v, nil when v is valid
func Struct(v any) []Issue {
	e := shared()
	err := e.v.Struct(v)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return []Issue{{Rule: "internal", Message: err.Error()}}
	}
	out := make([]Issue, len(fes))
	for i, fe := range fes {
		out[i] = Issue{Field: path(fe), Rule: fe.Tag(), Message: fe.Translate(e.trans)}
	}
	return out
}

// path drops the root type from the namespace, e.g. "timeline[0].durationWeeks"
func path(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}
	return rest
}

// Summary joins issues into one line for error strings and logs
func Summary(issues []Issue) string {
	if len(issues) < 2 {
		if len(issues) == 1 {
			return issues[0].Message
		}
		return ""
	}
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.Message
	}
	return fmt.Sprintf("%d problems: %s", len(issues), strings.Join(msgs, "; "))
}
