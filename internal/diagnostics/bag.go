package diagnostics

import (
	"fmt"
	"io"
	"sync"
)

// DiagnosticBag collects diagnostics from every analysed file. It is safe
// for concurrent use by the parallel lex phase.
type DiagnosticBag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
}

// NewDiagnosticBag creates an empty diagnostic bag
func NewDiagnosticBag() *DiagnosticBag {
	return &DiagnosticBag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (db *DiagnosticBag) Add(diag *Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.addLocked(diag)
}

// AddAll adds a batch of diagnostics, keeping their order contiguous
func (db *DiagnosticBag) AddAll(diags []*Diagnostic) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, d := range diags {
		db.addLocked(d)
	}
}

func (db *DiagnosticBag) addLocked(diag *Diagnostic) {
	db.diagnostics = append(db.diagnostics, diag)

	if diag.Severity == Error {
		db.errorCount++
	}
}

// HasErrors returns true if there are any errors
func (db *DiagnosticBag) HasErrors() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount > 0
}

// ErrorCount returns the number of errors
func (db *DiagnosticBag) ErrorCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.errorCount
}

// Len returns the number of diagnostics of any severity
func (db *DiagnosticBag) Len() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.diagnostics)
}

// Diagnostics returns a snapshot of all diagnostics
func (db *DiagnosticBag) Diagnostics() []*Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]*Diagnostic, len(db.diagnostics))
	copy(out, db.diagnostics)
	return out
}

// EmitAllToWriter renders all diagnostics and a summary line to w
func (db *DiagnosticBag) EmitAllToWriter(w io.Writer, emitter *Emitter) {
	if emitter == nil {
		emitter = NewEmitterWithWriter(w)
	}

	db.mu.Lock()
	diagnostics := make([]*Diagnostic, len(db.diagnostics))
	copy(diagnostics, db.diagnostics)
	errorCount := db.errorCount
	db.mu.Unlock()

	for _, diag := range diagnostics {
		emitter.Emit(diag.FilePath, diag)
	}

	if errorCount > 0 {
		fmt.Fprintf(w, "\nLexical analysis failed with %d error(s)\n", errorCount)
	}
}
