// Package workspace holds the state shared by every phase of one kotlinlex
// run: the registry of source files, the merged options and the diagnostic
// bag all phases report to.
//
// Phases are stateless workers. They receive the Workspace and operate on
// the SourceFile values registered in it; each SourceFile carries its own
// analysis result.
package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/frontend/lexer"
	"kotlinlex/internal/logging"
	"kotlinlex/internal/logging/logfields"
	"kotlinlex/internal/metrics"
	"kotlinlex/internal/option"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "workspace")

// Phase tracks how far the run has progressed. All files move through the
// phases together.
type Phase int

const (
	PhaseInitial   Phase = iota // Not started
	PhaseDiscovery              // Collecting source files
	PhaseLexing                 // Tokenizing source files
	PhaseReporting              // Rendering results
	PhaseComplete               // Run finished
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseDiscovery:
		return "discovery"
	case PhaseLexing:
		return "lexing"
	case PhaseReporting:
		return "reporting"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Workspace is the central hub for the state of one run.
//
// Thread safety: the file registry and the phase are guarded by mu, the
// diagnostic bag has its own lock. A SourceFile is only ever written by the
// single worker that lexes it.
type Workspace struct {
	// Diagnostics collects the diagnostics of every file
	Diagnostics *diagnostics.DiagnosticBag

	// Files maps the cleaned file path to its SourceFile
	Files map[string]*SourceFile

	// FileOrder keeps the order files were added, for deterministic output
	FileOrder []string

	Options *option.Config

	currentPhase Phase
	mu           sync.RWMutex
}

// SourceFile is one file and its analysis.
type SourceFile struct {
	Path    string
	Content string

	// Result is nil until the file has been lexed
	Result *lexer.AnalysisResult
}

// New creates a workspace. A nil options falls back to the defaults.
func New(options *option.Config) *Workspace {
	if options == nil {
		def := option.DefaultConfig
		options = &def
	}

	return &Workspace{
		Diagnostics:  diagnostics.NewDiagnosticBag(),
		Files:        make(map[string]*SourceFile),
		FileOrder:    make([]string, 0),
		Options:      options,
		currentPhase: PhaseInitial,
	}
}

// AddFile registers a source file. Registering the same path twice returns
// the file registered first.
func (ws *Workspace) AddFile(path string, content string) *SourceFile {
	path = filepath.Clean(path)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if existing, ok := ws.Files[path]; ok {
		return existing
	}

	file := &SourceFile{
		Path:    path,
		Content: content,
	}
	ws.Files[path] = file
	ws.FileOrder = append(ws.FileOrder, path)

	return file
}

// GetFile retrieves a source file by path, or nil if it was never added.
func (ws *Workspace) GetFile(path string) *SourceFile {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.Files[filepath.Clean(path)]
}

// GetAllFiles returns all registered files in the order they were added.
func (ws *Workspace) GetAllFiles() []*SourceFile {
	ws.mu.RLock()
	defer ws.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ws.FileOrder))
	for _, path := range ws.FileOrder {
		files = append(files, ws.Files[path])
	}
	return files
}

// Phase returns the phase the run is in.
func (ws *Workspace) Phase() Phase {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.currentPhase
}

// SetPhase moves the run to p.
func (ws *Workspace) SetPhase(p Phase) {
	ws.mu.Lock()
	ws.currentPhase = p
	ws.mu.Unlock()
	log.WithField(logfields.Phase, p).Debug("Entering phase")
}

// HasErrors returns true if any file reported an error diagnostic.
func (ws *Workspace) HasErrors() bool {
	return ws.Diagnostics.HasErrors()
}

// Discover registers the files named by paths. Directories are walked
// recursively for files with one of the configured extensions, skipping
// hidden directories; files named explicitly are always taken. Files are
// read in parallel and registered in walk order.
func (ws *Workspace) Discover(ctx context.Context, paths []string) error {
	var candidates []string
	for _, root := range paths {
		found, err := ws.collect(root)
		if err != nil {
			return err
		}
		candidates = append(candidates, found...)
	}

	contents := make([]string, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ws.Options.Workers)
	for i, path := range candidates {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "unable to read %s", path)
			}
			contents[i] = string(content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range candidates {
		ws.AddFile(path, contents[i])
		log.WithFields(logrus.Fields{
			logfields.File:  path,
			logfields.Bytes: len(contents[i]),
		}).Debug("Registered source file")
	}

	log.WithField(logfields.Files, len(ws.FileOrder)).Debug("Discovery complete")
	return nil
}

func (ws *Workspace) collect(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to access %s", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if ws.Options.HasExtension(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to walk %s", root)
	}
	return found, nil
}

// LexFile analyses one file, stores the result on it and reports its
// diagnostics to the workspace. This is the lex phase worker; it is safe to
// run for different files concurrently.
func (ws *Workspace) LexFile(file *SourceFile) {
	scanner := lexer.New(lexer.WithFilePath(file.Path))
	result := scanner.Analyze(file.Content)

	file.Result = result
	ws.Diagnostics.AddAll(result.Diagnostics)
	metrics.ObserveResult(result)

	log.WithFields(logrus.Fields{
		logfields.File:        file.Path,
		logfields.Tokens:      result.Statistics.TotalTokens,
		logfields.Diagnostics: len(result.Diagnostics),
	}).Debug("Tokenized file")
}
