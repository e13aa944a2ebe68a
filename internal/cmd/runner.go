package cmd

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/logging"
	"kotlinlex/internal/logging/logfields"
	"kotlinlex/internal/metrics"
	"kotlinlex/internal/option"
	"kotlinlex/internal/report"
	"kotlinlex/internal/workspace"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "cmd")

// ErrDiagnosticsReported is returned by the lex command when
// fail-on-diagnostics is set and at least one diagnostic was reported.
var ErrDiagnosticsReported = errors.New("lexical analysis reported diagnostics")

// RunLexPhase tokenizes all files in parallel, at most ws.Options.Workers at
// a time. Each file is analysed by exactly one worker; cancellation stops
// new files from being started.
func RunLexPhase(ctx context.Context, ws *workspace.Workspace) error {
	files := ws.GetAllFiles()
	log.WithFields(logrus.Fields{
		logfields.Files:   len(files),
		logfields.Workers: ws.Options.Workers,
	}).Debug("Lexing files")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ws.Options.Workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			metrics.FilesInFlight.Inc()
			defer metrics.FilesInFlight.Dec()

			ws.LexFile(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "lex phase interrupted")
	}
	return nil
}

// runLex drives one invocation of the lex command: discovery, the parallel
// lex phase, then the report and optional metrics on out.
func runLex(ctx context.Context, cfg *option.Config, paths []string, out io.Writer) error {
	start := time.Now()

	pipeline := workspace.NewPipeline(cfg)
	pipeline.Lex = RunLexPhase
	if err := pipeline.Run(ctx, paths); err != nil {
		return err
	}

	ws := pipeline.Workspace
	files := make([]report.File, 0, len(ws.FileOrder))
	for _, f := range ws.GetAllFiles() {
		files = append(files, report.File{
			Path:   f.Path,
			Result: f.Result,
			Source: f.Content,
		})
	}

	err := report.Write(out, files, report.Options{
		Format:     cfg.Output,
		ShowTokens: cfg.ShowTokens,
		Emitter:    diagnostics.NewEmitterWithWriter(out),
	})
	if err != nil {
		return err
	}

	if cfg.Metrics {
		if err := metrics.Dump(out); err != nil {
			return err
		}
	}
	ws.SetPhase(workspace.PhaseComplete)

	log.WithFields(logrus.Fields{
		logfields.Files:       len(files),
		logfields.Diagnostics: ws.Diagnostics.Len(),
		logfields.Duration:    time.Since(start),
	}).Debug("Run complete")

	if cfg.FailOnDiagnostics && ws.Diagnostics.Len() > 0 {
		return ErrDiagnosticsReported
	}
	return nil
}
