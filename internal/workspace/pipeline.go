package workspace

import (
	"context"
	"errors"

	"kotlinlex/internal/option"
)

// ErrNoSourceFiles is returned when discovery finds nothing to analyse.
var ErrNoSourceFiles = errors.New("no Kotlin source files found")

// LexPhase tokenizes every registered file of a workspace.
type LexPhase func(ctx context.Context, ws *Workspace) error

// Pipeline runs the phases of one invocation:
//
//	[Discovery] -> Lex -> [Reporting, done by the caller]
type Pipeline struct {
	Workspace *Workspace

	// Lex is the lex phase implementation. It defaults to RunLexPhase; the
	// CLI swaps in a parallel one.
	Lex LexPhase
}

// NewPipeline creates a pipeline over a fresh workspace.
func NewPipeline(options *option.Config) *Pipeline {
	return &Pipeline{
		Workspace: New(options),
		Lex:       RunLexPhase,
	}
}

// Run discovers the files under paths and lexes them. Lexical problems are
// never returned as errors; they are in the workspace's diagnostic bag and
// on each file's result. Errors are operational only (unreadable input,
// cancellation).
func (p *Pipeline) Run(ctx context.Context, paths []string) error {
	ws := p.Workspace

	ws.SetPhase(PhaseDiscovery)
	if err := ws.Discover(ctx, paths); err != nil {
		return err
	}
	if len(ws.GetAllFiles()) == 0 {
		return ErrNoSourceFiles
	}

	ws.SetPhase(PhaseLexing)
	lex := p.Lex
	if lex == nil {
		lex = RunLexPhase
	}
	if err := lex(ctx, ws); err != nil {
		return err
	}

	ws.SetPhase(PhaseReporting)
	return nil
}

// RunLexPhase tokenizes all registered files in order. Cancellation is
// checked between files; a file, once started, is analysed to the end.
func RunLexPhase(ctx context.Context, ws *Workspace) error {
	for _, file := range ws.GetAllFiles() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ws.LexFile(file)
	}
	return nil
}
