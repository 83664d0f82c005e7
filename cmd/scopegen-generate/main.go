// Command scopegen-generate runs the generation pipeline on one intake file
// and prints the scope document to stdout.
//
//	scopegen-generate -intake intake.json [-provider stub|openai|gemini] [-model name]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scopegen/internal/adapters/llm"
	"scopegen/internal/core/generate"
	"scopegen/internal/core/intake"
	"scopegen/internal/core/version"
	"scopegen/internal/platform/config"
	"scopegen/internal/platform/logger"
)

// exit codes
const (
	exitOK         = 0
	exitGeneration = 1
	exitUsage      = 2
	exitConfig     = 3
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.New().Prefix("GENERATOR_"), os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, cfg config.Conf, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scopegen-generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		intakePath = fs.String("intake", "", "intake JSON file, - for stdin")
		provider   = fs.String("provider", "", "override GENERATOR_PROVIDER (stub, openai, gemini)")
		model      = fs.String("model", "", "override GENERATOR_MODEL")
		timeout    = fs.Duration("timeout", 5*time.Minute, "overall deadline")
		compact    = fs.Bool("compact", false, "print the document on one line")
		showVer    = fs.Bool("version", false, "print build info and exit")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *showVer {
		_ = json.NewEncoder(stdout).Encode(version.For("scopegen-generate"))
		return exitOK
	}
	if *intakePath == "" {
		_, _ = fmt.Fprintln(stderr, "-intake is required")
		fs.Usage()
		return exitUsage
	}

	l := logger.Named("generate")

	raw, err := readIntake(*intakePath, stdin)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "read intake: %v\n", err)
		return exitUsage
	}
	in, err := intake.ParseJSON(raw)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			for _, is := range ve.Issues {
				_, _ = fmt.Fprintf(stderr, "  %s: %s\n", is.Field, is.Message)
			}
		}
		return exitUsage
	}

	settings := llm.FromConfig(cfg).WithProvider(llm.Provider(*provider), *model)
	backend, err := llm.New(ctx, settings)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "backend: %v\n", err)
		return exitConfig
	}

	opts := append(settings.Options(), generate.WithObserver(func(t generate.Transition) {
		l.Debug().
			Str("from", t.From.String()).
			Str("to", t.To.String()).
			Int("attempt", t.Attempt).
			Str("reason", t.Reason.String()).
			Msg("transition")
	}))
	gen := generate.New(backend, opts...)

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	start := time.Now()
	doc, err := gen.GenerateScopeFromIntake(ctx, in)
	l.Info().
		Str("provider", string(settings.Provider)).
		Str("model", settings.Model).
		Dur("elapsed", time.Since(start)).
		Bool("ok", err == nil).
		Msg("generation finished")
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		var sv *generate.SchemaValidationError
		if errors.As(err, &sv) {
			for _, v := range sv.Violations {
				_, _ = fmt.Fprintf(stderr, "  %s\n", v)
			}
		}
		var ce *generate.ConfigurationError
		if errors.As(err, &ce) {
			return exitConfig
		}
		return exitGeneration
	}

	enc := json.NewEncoder(stdout)
	if !*compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		_, _ = fmt.Fprintf(stderr, "write: %v\n", err)
		return exitGeneration
	}
	return exitOK
}

func readIntake(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(io.LimitReader(stdin, 1<<20))
	}
	return os.ReadFile(path)
}
